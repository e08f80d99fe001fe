// pkg/render/engo/hud.go
package engo

import (
	"context"
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-boost/pkg/logging"
	"github.com/opd-ai/go-boost/pkg/vehicle"
	"github.com/opd-ai/go-boost/pkg/world"
)

// HUD layout in pixels
const (
	hudMargin      = 10
	hudStripHeight = 6
	hudPipSize     = 12
	hudPipGap      = 4
	hudBarHeight   = 8
)

var (
	hudAlive      = color.RGBA{60, 160, 220, 255}
	hudDying      = color.RGBA{200, 60, 40, 255}
	hudTranscend  = color.RGBA{60, 220, 90, 255}
	hudPipOff     = color.RGBA{80, 80, 80, 255}
	hudPipOn      = color.RGBA{255, 255, 255, 255}
	hudCollisions = color.RGBA{255, 200, 0, 255}
)

// HUDSystem draws the status without text: a strip coloured by vehicle
// state, one pip per level with the current one lit, a countdown bar while a
// level load is pending and a warning block while collisions are off.
// Status changes are logged as a text line.
type HUDSystem struct {
	sink   SpriteSink
	logger *logging.Logger
	ctx    context.Context

	strip      *sprite
	pips       []*sprite
	bar        *sprite
	collisions *sprite

	viewWidth float32

	status       world.Status
	line         string
	pending      vehicle.PendingTransition
	pendingSince float64
	hasPending   bool
}

// NewHUDSystem creates a HUD for a view viewWidth pixels wide
func NewHUDSystem(ctx context.Context, sink SpriteSink, viewWidth float32, logger *logging.Logger) *HUDSystem {
	if logger == nil {
		logger = logging.NewLogger()
	}
	hud := &HUDSystem{
		sink:      sink,
		logger:    logger,
		ctx:       ctx,
		viewWidth: viewWidth,
	}
	hud.strip = hud.newRect(hudAlive)
	hud.bar = hud.newRect(hudTranscend)
	hud.bar.Hidden = true
	hud.collisions = hud.newRect(hudCollisions)
	hud.collisions.Hidden = true
	return hud
}

func (hud *HUDSystem) newRect(c color.Color) *sprite {
	s := newSprite(hud.sink, common.Rectangle{}, c)
	s.SetZIndex(zHUD)
	return s
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update lays out the HUD for the last status
func (hud *HUDSystem) Update(dt float32) {
	s := hud.status

	hud.strip.Position.X = 0
	hud.strip.Position.Y = 0
	hud.strip.Width = hud.viewWidth
	hud.strip.Height = hudStripHeight
	hud.strip.Color = stateColor(s.State)

	hud.layoutPips(s)
	hud.layoutBar(s)

	hud.collisions.Hidden = !(s.Debug && !s.CollisionsEnabled)
	hud.collisions.Position.X = hud.viewWidth - hudMargin - hudPipSize
	hud.collisions.Position.Y = hudStripHeight + hudMargin
	hud.collisions.Width = hudPipSize
	hud.collisions.Height = hudPipSize
}

func (hud *HUDSystem) layoutPips(s world.Status) {
	for len(hud.pips) < s.LevelCount {
		hud.pips = append(hud.pips, hud.newRect(hudPipOff))
	}
	for i, pip := range hud.pips {
		pip.Hidden = i >= s.LevelCount
		pip.Position.X = float32(hudMargin + i*(hudPipSize+hudPipGap))
		pip.Position.Y = hudStripHeight + hudMargin
		pip.Width = hudPipSize
		pip.Height = hudPipSize
		pip.Color = hudPipOff
		if i == s.LevelIndex {
			pip.Color = hudPipOn
		}
	}
}

// layoutBar shrinks the countdown bar from full width to nothing over the
// pending delay.
func (hud *HUDSystem) layoutBar(s world.Status) {
	if s.Pending == nil || s.Pending.Delay <= 0 {
		hud.bar.Hidden = true
		return
	}
	remaining := 1 - (s.Elapsed-hud.pendingSince)/s.Pending.Delay
	if remaining < 0 {
		remaining = 0
	}
	hud.bar.Hidden = false
	hud.bar.Color = hudTranscend
	if s.Pending.Target == vehicle.FirstLevel {
		hud.bar.Color = hudDying
	}
	hud.bar.Position.X = hudMargin
	hud.bar.Position.Y = hudStripHeight + 2*hudMargin + hudPipSize
	hud.bar.Width = float32(remaining) * (hud.viewWidth - 2*hudMargin)
	hud.bar.Height = hudBarHeight
}

// SetStatus records the status to draw and logs it when its text changes
func (hud *HUDSystem) SetStatus(s world.Status) {
	if s.Pending != nil && (!hud.hasPending || *s.Pending != hud.pending) {
		hud.pendingSince = s.Elapsed
		hud.pending = *s.Pending
	}
	hud.hasPending = s.Pending != nil
	hud.status = s

	line := StatusText(s)
	if line != hud.line {
		hud.line = line
		hud.logger.Info(hud.ctx, "Status changed", "status", line)
	}
}

// Line returns the current status text
func (hud *HUDSystem) Line() string {
	return hud.line
}

// BarFraction returns how much of the countdown bar is left, or -1 when no
// load is pending.
func (hud *HUDSystem) BarFraction() float32 {
	if hud.bar.Hidden {
		return -1
	}
	return hud.bar.Width / (hud.viewWidth - 2*hudMargin)
}

// StatusText formats the status the way the window HUD groups it
func StatusText(s world.Status) string {
	text := fmt.Sprintf("level %d/%d %q: %s", s.LevelIndex+1, s.LevelCount, s.LevelName, s.State)
	if s.Pending != nil {
		text += fmt.Sprintf(", loading %s level", s.Pending.Target)
	}
	if s.Debug && !s.CollisionsEnabled {
		text += ", collisions off"
	}
	return text
}

func stateColor(s vehicle.State) color.Color {
	switch s {
	case vehicle.Dying:
		return hudDying
	case vehicle.Transcending:
		return hudTranscend
	default:
		return hudAlive
	}
}
