// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/opd-ai/go-boost/pkg/level"
	"github.com/opd-ai/go-boost/pkg/vehicle"
)

// GameConfig contains configuration for a game session
type GameConfig struct {
	Vehicle vehicle.Config      `json:"vehicle"`
	Physics PhysicsConfig       `json:"physics"`
	Audio   AudioConfig         `json:"audio"`
	Levels  LevelsConfig        `json:"levels"`
	Debug   bool                `json:"debug"`
	Breaker level.BreakerConfig `json:"breaker"`
}

// PhysicsConfig contains the rocket body and simulation settings
type PhysicsConfig struct {
	Mass        float64 `json:"mass"`
	Radius      float64 `json:"radius"`
	LinearDrag  float64 `json:"linearDrag"`
	AngularDrag float64 `json:"angularDrag"`
	Restitution float64 `json:"restitution"`
	TickRate    int     `json:"tickRate"`
}

// AudioConfig contains clip lengths in seconds, keyed by clip ID
type AudioConfig struct {
	ClipDurations map[string]float64 `json:"clipDurations"`
}

// LevelsConfig contains the level list. An empty list means the built-in
// levels.
type LevelsConfig struct {
	Start       int                `json:"start"`
	Definitions []level.Definition `json:"definitions,omitempty"`
}

// ValidationError reports an invalid configuration field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config field %s: %s", e.Field, e.Message)
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	if config == nil {
		return errors.New("config is nil")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Vehicle: vehicle.DefaultConfig(),
		Physics: PhysicsConfig{
			Mass:        1,
			Radius:      1,
			LinearDrag:  0.1,
			AngularDrag: 0.5,
			Restitution: 0.2,
			TickRate:    60,
		},
		Audio: AudioConfig{
			ClipDurations: map[string]float64{
				"main-engine": 0.8,
				"death":       1.5,
				"success":     2.0,
			},
		},
		Breaker: level.DefaultBreakerConfig(),
	}
}

// LevelDefinitions returns the configured levels, or the built-in ones
func (c *GameConfig) LevelDefinitions() []level.Definition {
	if len(c.Levels.Definitions) == 0 {
		return level.DefaultLevels()
	}
	return c.Levels.Definitions
}

// VehicleConfig returns the controller settings with the session debug
// flag applied
func (c *GameConfig) VehicleConfig() vehicle.Config {
	v := c.Vehicle
	v.Debug = v.Debug || c.Debug
	return v
}

// ClipDurations returns the clip lengths keyed by clip ID
func (c *GameConfig) ClipDurations() map[vehicle.ClipID]float64 {
	d := make(map[vehicle.ClipID]float64, len(c.Audio.ClipDurations))
	for k, v := range c.Audio.ClipDurations {
		d[vehicle.ClipID(k)] = v
	}
	return d
}

// Validate checks the configuration for values the game cannot run with
func (c *GameConfig) Validate() error {
	if err := c.Vehicle.Validate(); err != nil {
		return &ValidationError{Field: "vehicle", Message: err.Error()}
	}
	if c.Physics.Mass <= 0 {
		return &ValidationError{Field: "physics.mass", Message: "must be positive"}
	}
	if c.Physics.Radius <= 0 {
		return &ValidationError{Field: "physics.radius", Message: "must be positive"}
	}
	if c.Physics.TickRate <= 0 {
		return &ValidationError{Field: "physics.tickRate", Message: "must be positive"}
	}
	for clip, d := range c.Audio.ClipDurations {
		if d < 0 {
			return &ValidationError{Field: "audio.clipDurations." + clip, Message: "must not be negative"}
		}
	}
	if n := len(c.LevelDefinitions()); c.Levels.Start < 0 || c.Levels.Start >= n {
		return &ValidationError{
			Field:   "levels.start",
			Message: fmt.Sprintf("%d is outside 0..%d", c.Levels.Start, n-1),
		}
	}
	return nil
}
