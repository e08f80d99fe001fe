package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-boost/pkg/feedback"
	"github.com/opd-ai/go-boost/pkg/level"
	"github.com/opd-ai/go-boost/pkg/physics"
	"github.com/opd-ai/go-boost/pkg/vehicle"
)

// VehicleView is what a renderer needs to draw the rocket
type VehicleView struct {
	Position  mgl64.Vec2
	Velocity  mgl64.Vec2
	Heading   float64
	Radius    float64
	State     vehicle.State
	Thrusting bool
	Emitters  []vehicle.EmitterID
}

// Status is the HUD line
type Status struct {
	Tick              uint64
	Elapsed           float64
	LevelIndex        int
	LevelCount        int
	LevelName         string
	State             vehicle.State
	CollisionsEnabled bool
	Debug             bool
	Pending           *vehicle.PendingTransition
	LoopClip          vehicle.ClipID
	Voices            []feedback.Voice
}

// Snapshot is a copy of the visible world state
type Snapshot struct {
	Vehicle   VehicleView
	Obstacles []level.Obstacle
	Bounds    physics.Rect
	Status    Status
}

// Snapshot copies the state renderers draw from
func (w *World) Snapshot() Snapshot {
	s := w.scene
	clip, looping := s.mixer.Loop()
	if !looping {
		clip = ""
	}

	status := Status{
		Tick:              w.tick,
		Elapsed:           w.elapsed,
		LevelIndex:        s.index,
		LevelCount:        w.levels.TotalLevelCount(),
		LevelName:         s.def.Name,
		State:             s.controller.State(),
		CollisionsEnabled: s.controller.CollisionsEnabled(),
		Debug:             w.cfg.VehicleConfig().Debug,
		LoopClip:          clip,
		Voices:            s.mixer.Voices(),
	}
	if p, ok := s.controller.Pending(); ok {
		status.Pending = &p
	}

	return Snapshot{
		Vehicle: VehicleView{
			Position:  s.body.Position.Vec2(),
			Velocity:  s.body.Velocity.Vec2(),
			Heading:   s.body.Heading(),
			Radius:    s.body.Radius,
			State:     s.controller.State(),
			Thrusting: looping,
			Emitters:  s.mixer.ActiveEmitters(),
		},
		Obstacles: append([]level.Obstacle(nil), s.def.Obstacles...),
		Bounds:    s.def.Bounds(),
		Status:    status,
	}
}
