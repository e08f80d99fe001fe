// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-boost/pkg/level"
	"github.com/opd-ai/go-boost/pkg/vehicle"
	"github.com/opd-ai/go-boost/pkg/world"
)

// SpriteSink receives render entities. *common.RenderSystem implements it.
type SpriteSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// sprite is a drawable ecs entity
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

func newSprite(sink SpriteSink, drawable common.Drawable, c color.Color) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.Drawable = drawable
	s.Color = c
	sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

var (
	colorTerrain  = color.RGBA{110, 90, 70, 255}
	colorLaunch   = color.RGBA{60, 160, 220, 255}
	colorFinish   = color.RGBA{60, 220, 90, 255}
	colorRocket   = color.RGBA{235, 235, 235, 255}
	colorWreck    = color.RGBA{200, 60, 40, 255}
	colorBackdrop = color.RGBA{255, 255, 255, 255}
)

// Z layers
const (
	zBackdrop = iota
	zObstacles
	zParticles
	zVehicle
	zHUD
)

// LevelRenderer implements render.Renderer by keeping a pool of engo
// entities in step with each snapshot. Obstacles carry no identity, so the
// n-th obstacle drawn in a frame reuses the n-th pooled entity; unused ones
// are hidden in Present.
type LevelRenderer struct {
	sink   SpriteSink
	camera *CameraSystem
	assets *AssetManager

	obstacles []*sprite
	drawn     int
	rocket    *sprite
	backdrop  *sprite

	last world.Status
}

// NewLevelRenderer creates a renderer adding its entities to sink
func NewLevelRenderer(sink SpriteSink, camera *CameraSystem, assets *AssetManager) *LevelRenderer {
	if assets == nil {
		assets = NewAssetManager()
	}
	return &LevelRenderer{
		sink:   sink,
		camera: camera,
		assets: assets,
	}
}

// Clear implements render.Renderer
func (r *LevelRenderer) Clear() {
	r.drawn = 0
	if r.backdrop == nil {
		if d := r.assets.Drawable(SpriteBackdrop); d != nil {
			r.backdrop = newSprite(r.sink, d, colorBackdrop)
			r.backdrop.SetZIndex(zBackdrop)
			r.backdrop.Width = float32(r.camera.viewWidth)
			r.backdrop.Height = float32(r.camera.viewHeight)
		}
	}
}

// RenderObstacle implements render.Renderer
func (r *LevelRenderer) RenderObstacle(o level.Obstacle) {
	if r.drawn == len(r.obstacles) {
		s := newSprite(r.sink, common.Rectangle{}, colorTerrain)
		s.SetZIndex(zObstacles)
		r.obstacles = append(r.obstacles, s)
	}
	s := r.obstacles[r.drawn]
	r.drawn++

	switch o.Tag {
	case level.TagLaunchPad:
		s.Color = colorLaunch
	case level.TagFinish:
		s.Color = colorFinish
	default:
		s.Color = colorTerrain
	}

	rect := o.Rect()
	// top-left corner in screen space
	s.Position = r.camera.WorldToScreen(mgl64.Vec2{rect.Min().X(), rect.Max().Y()})
	scale := float32(r.camera.Scale())
	s.Width = float32(o.Width) * scale
	s.Height = float32(o.Height) * scale
	s.Hidden = false
}

// RenderVehicle implements render.Renderer
func (r *LevelRenderer) RenderVehicle(v world.VehicleView) {
	if r.rocket == nil {
		var d common.Drawable = common.Triangle{}
		if tex := r.assets.Drawable(SpriteRocket); tex != nil {
			d = tex
		}
		r.rocket = newSprite(r.sink, d, colorRocket)
		r.rocket.SetZIndex(zVehicle)
	}

	size := float32(2 * v.Radius * r.camera.Scale())
	r.rocket.Width = size
	r.rocket.Height = size
	// engo rotates clockwise in degrees, heading is counter-clockwise radians
	r.rocket.Rotation = float32(-mgl64.RadToDeg(v.Heading))
	r.rocket.SetCenter(r.camera.WorldToScreen(v.Position))

	r.rocket.Color = colorRocket
	if v.State == vehicle.Dying {
		r.rocket.Color = colorWreck
	}
}

// RenderStatus implements render.Renderer. The HUD system draws the status;
// the renderer only keeps the latest copy.
func (r *LevelRenderer) RenderStatus(s world.Status) {
	r.last = s
}

// Present implements render.Renderer
func (r *LevelRenderer) Present() {
	for _, s := range r.obstacles[r.drawn:] {
		s.Hidden = true
	}
}

// Status returns the status passed to the last RenderStatus
func (r *LevelRenderer) Status() world.Status {
	return r.last
}

// VisibleObstacles returns the number of obstacle entities drawn last frame
func (r *LevelRenderer) VisibleObstacles() int {
	return r.drawn
}

// RocketPosition returns the rocket's screen centre
func (r *LevelRenderer) RocketPosition() (engo.Point, bool) {
	if r.rocket == nil {
		return engo.Point{}, false
	}
	return r.rocket.Center(), true
}
