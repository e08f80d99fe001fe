package vehicle

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid vehicle config")

// Clips names the audio clips the controller plays.
type Clips struct {
	Engine  ClipID `json:"engine"`
	Failure ClipID `json:"failure"`
	Success ClipID `json:"success"`
}

// Emitters names the particle emitters the controller drives.
type Emitters struct {
	Engine  EmitterID `json:"engine"`
	Failure EmitterID `json:"failure"`
	Success EmitterID `json:"success"`
}

// Config holds the tunables fixed at construction.
type Config struct {
	RotationThrustPerSecond float64  `json:"rcsThrust"`
	MainThrustPerSecond     float64  `json:"mainThrust"`
	Clips                   Clips    `json:"clips"`
	Emitters                Emitters `json:"emitters"`
	FinishTag               string   `json:"finishTag"`

	// Debug enables the development key path (toggle collisions, skip level).
	Debug bool `json:"debug"`
}

// DefaultConfig returns the tuning used by the built-in levels.
func DefaultConfig() Config {
	return Config{
		RotationThrustPerSecond: 200,
		MainThrustPerSecond:     2000,
		Clips: Clips{
			Engine:  "main-engine",
			Failure: "death",
			Success: "success",
		},
		Emitters: Emitters{
			Engine:  "main-engine",
			Failure: "death",
			Success: "success",
		},
		FinishTag: FinishTag,
	}
}

// Validate checks thrust signs and that every handle is set.
func (c Config) Validate() error {
	if c.RotationThrustPerSecond < 0 {
		return fmt.Errorf("%w: rotation thrust %v is negative", ErrInvalidConfig, c.RotationThrustPerSecond)
	}
	if c.MainThrustPerSecond < 0 {
		return fmt.Errorf("%w: main thrust %v is negative", ErrInvalidConfig, c.MainThrustPerSecond)
	}

	handles := []struct {
		name string
		id   string
	}{
		{"engine clip", string(c.Clips.Engine)},
		{"failure clip", string(c.Clips.Failure)},
		{"success clip", string(c.Clips.Success)},
		{"engine emitter", string(c.Emitters.Engine)},
		{"failure emitter", string(c.Emitters.Failure)},
		{"success emitter", string(c.Emitters.Success)},
	}
	for _, h := range handles {
		if h.id == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, h.name)
		}
	}
	return nil
}
