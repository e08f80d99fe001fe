// pkg/vehicle/services.go
package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ClipID identifies an audio clip known to the FeedbackSink.
type ClipID string

// EmitterID identifies a particle emitter known to the FeedbackSink.
type EmitterID string

// Body is the physics body the controller pushes around.
// The rotation freeze flag governs whether external torque (collisions)
// may change the body's orientation between ticks.
type Body interface {
	AddLocalForce(force mgl64.Vec3)
	AddRotation(eulerDegrees mgl64.Vec3)
	FreezeRotation() bool
	SetFreezeRotation(frozen bool)
}

// FeedbackSink plays audio and particle effects.
// Starting something already playing or stopping something already stopped
// is expected to be a no-op, but the controller checks state first anyway.
type FeedbackSink interface {
	PlayLoop(clip ClipID)
	StopLoop()
	IsLoopPlaying() bool
	PlayOnce(clip ClipID)
	ClipDuration(clip ClipID) float64

	StartParticles(emitter EmitterID)
	StopParticles(emitter EmitterID)
	IsParticlesPlaying(emitter EmitterID) bool
}

// LevelTransitioner loads levels by build index.
type LevelTransitioner interface {
	LoadLevel(index int)
	CurrentLevelIndex() int
	TotalLevelCount() int
}

// Scheduler runs fn once after delay units of simulation time.
// Scheduled work cannot be cancelled.
type Scheduler interface {
	After(delay float64, fn func())
}

// Publisher receives lifecycle notifications. It is optional.
type Publisher interface {
	StateChanged(from, to State)
	CollisionClassified(tag string, outcome Outcome)
	TransitionScheduled(pending PendingTransition)
	CollisionsToggled(enabled bool)
}

// Bindings groups the services a controller needs. Every field is required.
type Bindings struct {
	Body      Body
	Feedback  FeedbackSink
	Levels    LevelTransitioner
	Scheduler Scheduler
}

// Input is the set of held keys for one tick, captured once by the host.
type Input struct {
	Thrust      bool
	RotateLeft  bool
	RotateRight bool

	// Debug-only actions, ignored unless Config.Debug is set.
	ToggleCollisions bool
	ForceNextLevel   bool
}
