package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-boost/pkg/level"
	"github.com/opd-ai/go-boost/pkg/physics"
	"github.com/opd-ai/go-boost/pkg/vehicle"
	"github.com/opd-ai/go-boost/pkg/world"
)

var (
	styleDefault  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleTerrain  = styleDefault.Foreground(tcell.ColorGray)
	styleLaunch   = styleDefault.Foreground(tcell.ColorAqua)
	styleFinish   = styleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleRocket   = styleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleFlame    = styleDefault.Foreground(tcell.ColorOrange)
	styleDeath    = styleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleSuccess  = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus   = styleDefault.Foreground(tcell.ColorSilver)
	styleDebugOff = styleDefault.Foreground(tcell.ColorHotPink)
)

type cell struct {
	r     rune
	style tcell.Style
}

// TerminalRenderer provides a simple ASCII-based rendering for terminals.
// World Y grows upwards; screen rows grow downwards.
type TerminalRenderer struct {
	screen    tcell.Screen
	width     int
	height    int
	buffer    [][]cell
	status    string
	statusSty tcell.Style
	scale     float64
	centerPos mgl64.Vec2
	emitters  vehicle.Emitters
}

// NewTerminalRenderer creates a new terminal renderer with the specified
// dimensions. scale is world units per character cell. screen may be nil, in
// which case Present does nothing and the buffer can be read with Row.
func NewTerminalRenderer(screen tcell.Screen, width, height int, scale float64) *TerminalRenderer {
	if scale <= 0 {
		scale = 1
	}
	buffer := make([][]cell, height)
	for i := range buffer {
		buffer[i] = make([]cell, width)
	}

	return &TerminalRenderer{
		screen:   screen,
		width:    width,
		height:   height,
		buffer:   buffer,
		scale:    scale,
		emitters: vehicle.DefaultConfig().Emitters,
	}
}

// SetCenter sets the world position shown in the middle of the view
func (r *TerminalRenderer) SetCenter(pos mgl64.Vec2) {
	r.centerPos = pos
}

// SetEmitters sets which emitter IDs are drawn as engine flame, debris and
// celebration.
func (r *TerminalRenderer) SetEmitters(e vehicle.Emitters) {
	r.emitters = e
}

// FitBounds centres the view on b and picks the smallest scale that shows
// all of it. Character cells are roughly twice as tall as wide.
func (r *TerminalRenderer) FitBounds(b physics.Rect) {
	r.centerPos = b.Center
	sx := b.Width / float64(r.width)
	sy := b.Height / float64(r.height) / 2
	r.scale = math.Max(sx, sy)
	if r.scale <= 0 {
		r.scale = 1
	}
}

// worldToScreen converts world coordinates to screen coordinates
func (r *TerminalRenderer) worldToScreen(pos mgl64.Vec2) (int, int) {
	screenX := (pos.X()-r.centerPos.X())/r.scale + float64(r.width)/2
	screenY := float64(r.height)/2 - (pos.Y()-r.centerPos.Y())/(2*r.scale)
	return int(math.Floor(screenX)), int(math.Floor(screenY))
}

func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = cell{r: ch, style: style}
	}
}

// Clear implements Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = cell{r: ' ', style: styleDefault}
		}
	}
	r.status = ""
}

// RenderObstacle implements Renderer
func (r *TerminalRenderer) RenderObstacle(o level.Obstacle) {
	ch, style := '#', styleTerrain
	switch o.Tag {
	case level.TagLaunchPad:
		ch, style = '_', styleLaunch
	case level.TagFinish:
		ch, style = '=', styleFinish
	}

	rect := o.Rect()
	x0, y1 := r.worldToScreen(rect.Min())
	x1, y0 := r.worldToScreen(rect.Max())
	// thin obstacles still get one cell
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.set(x, y, ch, style)
		}
	}
}

// RenderVehicle implements Renderer
func (r *TerminalRenderer) RenderVehicle(v world.VehicleView) {
	x, y := r.worldToScreen(v.Position)
	up := mgl64.Vec2{-math.Sin(v.Heading), math.Cos(v.Heading)}

	for _, e := range v.Emitters {
		switch e {
		case r.emitters.Engine:
			fx, fy := r.worldToScreen(v.Position.Sub(up.Mul(2 * r.scale)))
			r.set(fx, fy, '*', styleFlame)
		case r.emitters.Failure:
			for _, d := range [][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
				r.set(x+d[0], y+d[1], 'x', styleDeath)
			}
		case r.emitters.Success:
			for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}} {
				r.set(x+d[0], y+d[1], '+', styleSuccess)
			}
		}
	}

	style := styleRocket
	if v.State == vehicle.Dying {
		style = styleDeath
	}
	r.set(x, y, headingGlyph(v.Heading), style)
}

// headingGlyph picks the character closest to the nose direction.
// Heading is radians counter-clockwise from straight up.
func headingGlyph(heading float64) rune {
	glyphs := []rune{'^', '\\', '<', '/', 'v', '\\', '>', '/'}
	octant := int(math.Round(heading/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return glyphs[octant]
}

// RenderStatus implements Renderer
func (r *TerminalRenderer) RenderStatus(s world.Status) {
	r.status = fmt.Sprintf("Level %d/%d %s | %s | t=%.1fs",
		s.LevelIndex+1, s.LevelCount, s.LevelName, s.State, s.Elapsed)
	if s.Pending != nil {
		r.status += fmt.Sprintf(" | loading %s level in %.1fs", s.Pending.Target, s.Pending.Delay)
	}
	r.statusSty = styleStatus
	if s.Debug && !s.CollisionsEnabled {
		r.status += " | collisions off"
		r.statusSty = styleDebugOff
	}
}

// Row returns the characters of buffer row y. The status line is not part
// of the buffer.
func (r *TerminalRenderer) Row(y int) string {
	if y < 0 || y >= r.height {
		return ""
	}
	runes := make([]rune, r.width)
	for x, c := range r.buffer[y] {
		runes[x] = c.r
	}
	return string(runes)
}

// Status returns the last status line
func (r *TerminalRenderer) Status() string {
	return r.status
}

// Present implements Renderer. Row 0 of the screen holds the status line and
// the buffer is drawn below it.
func (r *TerminalRenderer) Present() {
	if r.screen == nil {
		return
	}
	r.screen.Clear()
	drawText(r.screen, 0, 0, r.status, r.statusSty)
	for y, row := range r.buffer {
		for x, c := range row {
			r.screen.SetContent(x, y+1, c.r, nil, c.style)
		}
	}
	r.screen.Show()
}

// drawText puts a string on the screen starting at x, y
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, style)
	}
}
