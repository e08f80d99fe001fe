// Package validation checks level definitions before a scene is built from them.
package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/opd-ai/go-boost/pkg/level"
)

// Limits applied to level definitions
const (
	MaxLevelNameLen = 48
	MaxTagLen       = 32
	MaxObstacles    = 512
)

// Allow alphanumeric, spaces, hyphens, underscores, and basic punctuation for level names
var validLevelNameChars = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.'!()]+$`)

// ValidateLevelName validates a level name and returns it trimmed
func ValidateLevelName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("level name cannot be empty")
	}

	if len(name) > MaxLevelNameLen {
		return "", fmt.Errorf("level name too long: %d characters (max %d)", len(name), MaxLevelNameLen)
	}

	if !utf8.ValidString(name) {
		return "", fmt.Errorf("level name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("level name cannot be only whitespace")
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("level name contains control characters")
		}
	}

	if !validLevelNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("level name contains invalid characters")
	}

	return trimmed, nil
}

// ValidateObstacle validates a single obstacle
func ValidateObstacle(o level.Obstacle) error {
	if o.Tag == "" {
		return fmt.Errorf("obstacle tag cannot be empty")
	}
	if len(o.Tag) > MaxTagLen {
		return fmt.Errorf("obstacle tag too long: %d characters (max %d)", len(o.Tag), MaxTagLen)
	}
	for _, v := range []float64{o.X, o.Y, o.Width, o.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("obstacle %q has a non-finite coordinate", o.Tag)
		}
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("obstacle %q size must be positive: %gx%g", o.Tag, o.Width, o.Height)
	}
	return nil
}

// ValidateLevel validates a level definition. finishTag is the tag the
// rocket must touch to complete the level; empty means "Finish".
func ValidateLevel(def level.Definition, finishTag string) error {
	if finishTag == "" {
		finishTag = level.TagFinish
	}

	if _, err := ValidateLevelName(def.Name); err != nil {
		return err
	}
	if len(def.Obstacles) > MaxObstacles {
		return fmt.Errorf("level %q has too many obstacles: %d (max %d)", def.Name, len(def.Obstacles), MaxObstacles)
	}
	if def.Gravity < 0 || math.IsNaN(def.Gravity) {
		return fmt.Errorf("level %q gravity must not be negative", def.Name)
	}

	finishes := 0
	for i, o := range def.Obstacles {
		if err := ValidateObstacle(o); err != nil {
			return fmt.Errorf("level %q obstacle %d: %w", def.Name, i, err)
		}
		if o.Tag == finishTag {
			finishes++
		}
	}
	if finishes == 0 {
		return fmt.Errorf("level %q has no %q obstacle", def.Name, finishTag)
	}
	return nil
}

// ValidateLevels validates every definition and reports all failures
func ValidateLevels(defs []level.Definition, finishTag string) error {
	if len(defs) == 0 {
		return fmt.Errorf("level list cannot be empty")
	}

	var errs []error
	for i, def := range defs {
		if err := ValidateLevel(def, finishTag); err != nil {
			errs = append(errs, fmt.Errorf("level %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
