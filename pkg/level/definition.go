// Package level describes the playable scenes and switches between them.
package level

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-boost/pkg/physics"
	"github.com/opd-ai/go-boost/pkg/vehicle"
)

// Tags used by the built-in levels. Any other tag is terrain.
const (
	TagLaunchPad = vehicle.FriendlyTag
	TagFinish    = vehicle.FinishTag
	TagTerrain   = "Untagged"
)

// Obstacle is a static axis-aligned block. X and Y are its centre.
type Obstacle struct {
	Tag    string  `json:"tag"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect returns the obstacle's collider.
func (o Obstacle) Rect() physics.Rect {
	return physics.Rect{Center: mgl64.Vec2{o.X, o.Y}, Width: o.Width, Height: o.Height}
}

// Definition contains everything needed to build one scene
type Definition struct {
	Name      string     `json:"name"`
	SpawnX    float64    `json:"spawnX"`
	SpawnY    float64    `json:"spawnY"`
	Gravity   float64    `json:"gravity"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Obstacles []Obstacle `json:"obstacles"`
}

// Spawn returns the rocket's starting position.
func (d Definition) Spawn() mgl64.Vec3 {
	return mgl64.Vec3{d.SpawnX, d.SpawnY, 0}
}

// Bounds returns the playable area, centred on the origin when Width or
// Height is unset.
func (d Definition) Bounds() physics.Rect {
	b := physics.Rect{Width: d.Width, Height: d.Height}
	if b.Width <= 0 {
		b.Width = 200
	}
	if b.Height <= 0 {
		b.Height = 100
	}
	b.Center = mgl64.Vec2{0, b.Height/2 - 10}
	return b
}

// DefaultLevels returns the built-in level list.
func DefaultLevels() []Definition {
	return []Definition{
		{
			Name:    "Lift Off",
			SpawnX:  -40,
			SpawnY:  2,
			Gravity: 9.81,
			Width:   120,
			Height:  60,
			Obstacles: []Obstacle{
				{Tag: TagTerrain, X: 0, Y: -5, Width: 120, Height: 10},
				{Tag: TagLaunchPad, X: -40, Y: 0.5, Width: 8, Height: 1},
				{Tag: TagFinish, X: 40, Y: 0.5, Width: 8, Height: 1},
			},
		},
		{
			Name:    "The Wall",
			SpawnX:  -40,
			SpawnY:  2,
			Gravity: 9.81,
			Width:   120,
			Height:  60,
			Obstacles: []Obstacle{
				{Tag: TagTerrain, X: 0, Y: -5, Width: 120, Height: 10},
				{Tag: TagLaunchPad, X: -40, Y: 0.5, Width: 8, Height: 1},
				{Tag: TagTerrain, X: 0, Y: 15, Width: 6, Height: 30},
				{Tag: TagFinish, X: 40, Y: 0.5, Width: 8, Height: 1},
			},
		},
		{
			Name:    "Canyon",
			SpawnX:  -50,
			SpawnY:  2,
			Gravity: 9.81,
			Width:   140,
			Height:  70,
			Obstacles: []Obstacle{
				{Tag: TagTerrain, X: 0, Y: -5, Width: 140, Height: 10},
				{Tag: TagLaunchPad, X: -50, Y: 0.5, Width: 8, Height: 1},
				{Tag: TagTerrain, X: -20, Y: 20, Width: 6, Height: 40},
				{Tag: TagTerrain, X: 5, Y: 45, Width: 6, Height: 30},
				{Tag: TagTerrain, X: 30, Y: 12, Width: 6, Height: 24},
				{Tag: TagFinish, X: 55, Y: 0.5, Width: 8, Height: 1},
			},
		},
	}
}
