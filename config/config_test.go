package config

import (
	"os"
	"testing"
)

func TestGetEnv(t *testing.T) {
	os.Unsetenv("TEST_GET_ENV")
	if result := getEnv("TEST_GET_ENV", "default"); result != "default" {
		t.Errorf("Expected default value 'default', got '%s'", result)
	}

	os.Setenv("TEST_GET_ENV", "test-value")
	if result := getEnv("TEST_GET_ENV", "default"); result != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", result)
	}

	os.Unsetenv("TEST_GET_ENV")
}

func TestGetEnvInt(t *testing.T) {
	os.Unsetenv("TEST_GET_ENV_INT")
	if result := getEnvInt("TEST_GET_ENV_INT", 42); result != 42 {
		t.Errorf("Expected default value 42, got %d", result)
	}

	os.Setenv("TEST_GET_ENV_INT", "100")
	if result := getEnvInt("TEST_GET_ENV_INT", 42); result != 100 {
		t.Errorf("Expected 100, got %d", result)
	}

	os.Setenv("TEST_GET_ENV_INT", "not-a-number")
	if result := getEnvInt("TEST_GET_ENV_INT", 42); result != 42 {
		t.Errorf("Expected fallback 42 on parse error, got %d", result)
	}

	os.Unsetenv("TEST_GET_ENV_INT")
}
