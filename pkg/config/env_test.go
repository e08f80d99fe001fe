package config

import (
	"errors"
	"testing"
)

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvStartLevel, "2")
	t.Setenv(EnvMainThrust, "1200.5")
	t.Setenv(EnvRotationThrust, "90")

	gameConfig := DefaultConfig()
	if err := ApplyEnvironmentOverrides(gameConfig); err != nil {
		t.Fatalf("ApplyEnvironmentOverrides failed: %v", err)
	}

	if !gameConfig.Debug {
		t.Error("Expected Debug true")
	}
	if gameConfig.Levels.Start != 2 {
		t.Errorf("Expected start level 2, got %d", gameConfig.Levels.Start)
	}
	if gameConfig.Vehicle.MainThrustPerSecond != 1200.5 {
		t.Errorf("Expected main thrust 1200.5, got %f", gameConfig.Vehicle.MainThrustPerSecond)
	}
	if gameConfig.Vehicle.RotationThrustPerSecond != 90 {
		t.Errorf("Expected rcs thrust 90, got %f", gameConfig.Vehicle.RotationThrustPerSecond)
	}
}

func TestApplyEnvironmentOverrides_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv(EnvDebug, "maybe")
	t.Setenv(EnvMainThrust, "fast")

	gameConfig := DefaultConfig()
	if err := ApplyEnvironmentOverrides(gameConfig); err != nil {
		t.Fatalf("ApplyEnvironmentOverrides failed: %v", err)
	}
	if gameConfig.Debug {
		t.Error("Expected Debug to keep its default")
	}
	if gameConfig.Vehicle.MainThrustPerSecond != 2000 {
		t.Errorf("Expected main thrust to keep its default, got %f", gameConfig.Vehicle.MainThrustPerSecond)
	}
}

func TestApplyEnvironmentOverrides_ResultIsValidated(t *testing.T) {
	t.Setenv(EnvStartLevel, "9")

	err := ApplyEnvironmentOverrides(DefaultConfig())
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "levels.start" {
		t.Errorf("Expected levels.start validation error, got %v", err)
	}
}

func TestGetEnvHelperFunctions(t *testing.T) {
	t.Setenv("BOOST_TEST_STRING", "test_value")
	if result := getEnvOrDefault("BOOST_TEST_STRING", "default"); result != "test_value" {
		t.Errorf("getEnvOrDefault: expected 'test_value', got '%s'", result)
	}
	if result := getEnvOrDefault("BOOST_TEST_NONEXISTENT", "default"); result != "default" {
		t.Errorf("getEnvOrDefault: expected 'default', got '%s'", result)
	}

	t.Setenv("BOOST_TEST_INT", "42")
	if result := getEnvAsIntOrDefault("BOOST_TEST_INT", 10); result != 42 {
		t.Errorf("getEnvAsIntOrDefault: expected 42, got %d", result)
	}
	t.Setenv("BOOST_TEST_INT", "invalid")
	if result := getEnvAsIntOrDefault("BOOST_TEST_INT", 10); result != 10 {
		t.Errorf("getEnvAsIntOrDefault with invalid value: expected 10, got %d", result)
	}

	t.Setenv("BOOST_TEST_FLOAT", "2.5")
	if result := getEnvAsFloatOrDefault("BOOST_TEST_FLOAT", 1); result != 2.5 {
		t.Errorf("getEnvAsFloatOrDefault: expected 2.5, got %f", result)
	}

	t.Setenv("BOOST_TEST_BOOL", "true")
	if result := getEnvAsBoolOrDefault("BOOST_TEST_BOOL", false); !result {
		t.Errorf("getEnvAsBoolOrDefault: expected true, got %v", result)
	}
	t.Setenv("BOOST_TEST_BOOL", "invalid")
	if result := getEnvAsBoolOrDefault("BOOST_TEST_BOOL", false); result {
		t.Errorf("getEnvAsBoolOrDefault with invalid value: expected false, got %v", result)
	}
}
