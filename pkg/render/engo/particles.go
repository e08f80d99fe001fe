// pkg/render/engo/particles.go
package engo

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-boost/pkg/vehicle"
)

// emitterStyle controls how an emitter sprays
type emitterStyle struct {
	sprite   Sprite
	color    color.RGBA
	rate     float64 // particles per second
	speed    float64 // world units per second
	spread   float64 // radians either side of the direction
	lifetime float64 // seconds
	size     float64 // world units
	exhaust  bool    // spray backwards from the nose instead of all around
}

type particle struct {
	*sprite
	pos  mgl64.Vec2
	vel  mgl64.Vec2
	age  float64
	life float64
	size float64
}

// ParticleSystem renders the feedback emitters that are playing. It follows
// the rocket and keeps dead particles around for reuse.
type ParticleSystem struct {
	sink   SpriteSink
	camera *CameraSystem
	assets *AssetManager
	rng    *rand.Rand

	styles  map[vehicle.EmitterID]emitterStyle
	active  []vehicle.EmitterID
	origin  mgl64.Vec2
	heading float64
	debt    map[vehicle.EmitterID]float64

	live []*particle
	pool []*particle
}

// NewParticleSystem creates a particle system for the given emitter IDs
func NewParticleSystem(sink SpriteSink, camera *CameraSystem, assets *AssetManager, emitters vehicle.Emitters, seed uint64) *ParticleSystem {
	if assets == nil {
		assets = NewAssetManager()
	}
	return &ParticleSystem{
		sink:   sink,
		camera: camera,
		assets: assets,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		styles: map[vehicle.EmitterID]emitterStyle{
			emitters.Engine: {
				sprite: SpriteFlame, color: color.RGBA{255, 170, 40, 255},
				rate: 60, speed: 12, spread: 0.25, lifetime: 0.4, size: 0.6, exhaust: true,
			},
			emitters.Failure: {
				sprite: SpriteDebris, color: color.RGBA{200, 60, 40, 255},
				rate: 40, speed: 8, spread: math.Pi, lifetime: 1.0, size: 0.5,
			},
			emitters.Success: {
				sprite: SpriteSparkle, color: color.RGBA{120, 255, 140, 255},
				rate: 30, speed: 5, spread: math.Pi, lifetime: 1.2, size: 0.5,
			},
		},
		debt: make(map[vehicle.EmitterID]float64),
	}
}

// Track sets the emitter origin and the emitters that are playing
func (ps *ParticleSystem) Track(origin mgl64.Vec2, heading float64, active []vehicle.EmitterID) {
	ps.origin = origin
	ps.heading = heading
	ps.active = append(ps.active[:0], active...)
	for id := range ps.debt {
		if !ps.isActive(id) {
			delete(ps.debt, id)
		}
	}
}

func (ps *ParticleSystem) isActive(id vehicle.EmitterID) bool {
	for _, a := range ps.active {
		if a == id {
			return true
		}
	}
	return false
}

// Reset removes every live particle, for instance after a level load
func (ps *ParticleSystem) Reset() {
	for _, p := range ps.live {
		p.Hidden = true
		ps.pool = append(ps.pool, p)
	}
	ps.live = ps.live[:0]
	ps.active = ps.active[:0]
	clear(ps.debt)
}

// Remove satisfies the ecs.System interface
func (ps *ParticleSystem) Remove(basic ecs.BasicEntity) {}

// Update ages particles, spawns new ones for the active emitters and
// projects them to the screen
func (ps *ParticleSystem) Update(dt float32) {
	step := float64(dt)

	kept := ps.live[:0]
	for _, p := range ps.live {
		p.age += step
		if p.age >= p.life {
			p.Hidden = true
			ps.pool = append(ps.pool, p)
			continue
		}
		p.pos = p.pos.Add(p.vel.Mul(step))
		kept = append(kept, p)
	}
	ps.live = kept

	for _, id := range ps.active {
		style, ok := ps.styles[id]
		if !ok {
			continue
		}
		ps.debt[id] += style.rate * step
		for ps.debt[id] >= 1 {
			ps.debt[id]--
			ps.spawn(style)
		}
	}

	for _, p := range ps.live {
		ps.project(p)
	}
}

func (ps *ParticleSystem) spawn(style emitterStyle) {
	var p *particle
	if n := len(ps.pool); n > 0 {
		p = ps.pool[n-1]
		ps.pool = ps.pool[:n-1]
	} else {
		var d common.Drawable = common.Rectangle{}
		if tex := ps.assets.Drawable(style.sprite); tex != nil {
			d = tex
		}
		p = &particle{sprite: newSprite(ps.sink, d, style.color)}
		p.SetZIndex(zParticles)
	}
	if tex := ps.assets.Drawable(style.sprite); tex != nil {
		p.Drawable = tex
	}

	// heading 0 is straight up; exhaust leaves through the tail
	dir := ps.heading + math.Pi/2
	if style.exhaust {
		dir += math.Pi
	} else {
		dir = ps.rng.Float64() * 2 * math.Pi
	}
	dir += (ps.rng.Float64()*2 - 1) * style.spread
	speed := style.speed * (0.5 + ps.rng.Float64()/2)

	p.pos = ps.origin
	p.vel = mgl64.Vec2{math.Cos(dir), math.Sin(dir)}.Mul(speed)
	p.age = 0
	p.life = style.lifetime
	p.size = style.size
	p.Color = style.color
	p.Hidden = false
	ps.live = append(ps.live, p)
}

func (ps *ParticleSystem) project(p *particle) {
	size := float32(p.size * ps.camera.Scale())
	p.Width = size
	p.Height = size
	p.SetCenter(ps.camera.WorldToScreen(p.pos))

	fade := 1 - p.age/p.life
	c := p.Color.(color.RGBA)
	c.A = uint8(255 * fade)
	p.Color = c
}

// Live returns the number of visible particles
func (ps *ParticleSystem) Live() int {
	return len(ps.live)
}
