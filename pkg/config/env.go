// pkg/config/env.go
package config

import (
	"os"
	"strconv"
)

// Environment variables read by ApplyEnvironmentOverrides
const (
	EnvDebug          = "BOOST_DEBUG"
	EnvStartLevel     = "BOOST_START_LEVEL"
	EnvMainThrust     = "BOOST_MAIN_THRUST"
	EnvRotationThrust = "BOOST_RCS_THRUST"
)

// ApplyEnvironmentOverrides applies BOOST_* environment variables on top of
// a loaded configuration and validates the result
func ApplyEnvironmentOverrides(config *GameConfig) error {
	config.Debug = getEnvAsBoolOrDefault(EnvDebug, config.Debug)
	config.Levels.Start = getEnvAsIntOrDefault(EnvStartLevel, config.Levels.Start)
	config.Vehicle.MainThrustPerSecond = getEnvAsFloatOrDefault(EnvMainThrust, config.Vehicle.MainThrustPerSecond)
	config.Vehicle.RotationThrustPerSecond = getEnvAsFloatOrDefault(EnvRotationThrust, config.Vehicle.RotationThrustPerSecond)

	return config.Validate()
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns environment variable as int or default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnvOrDefault(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns environment variable as float64 or default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnvOrDefault(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns environment variable as bool or default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnvOrDefault(key, "")); err == nil {
		return value
	}
	return defaultValue
}
