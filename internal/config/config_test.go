package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Catalog config
	assert.Equal(t, "library.ready", cfg.Catalog.ReadyEvent)
	assert.True(t, cfg.Catalog.MetricsEnabled)

	// Console config
	assert.Equal(t, "> ", cfg.Console.Prompt)

	assert.NoError(t, cfg.Validate())
}

func TestLoadOrDefault(t *testing.T) {
	// Should return default when no env vars set
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "library.ready", cfg.Catalog.ReadyEvent)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"LOG_LEVEL":               "debug",
		"LOG_DEV":                 "true",
		"CATALOG_READY_EVENT":     "engine.ready",
		"CATALOG_METRICS_ENABLED": "false",
		"CATALOG_CONSOLE_PROMPT":  "$ ",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	// Verify logging config
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	// Verify catalog config
	assert.Equal(t, "engine.ready", cfg.Catalog.ReadyEvent)
	assert.False(t, cfg.Catalog.MetricsEnabled)

	// Verify console config
	assert.Equal(t, "$ ", cfg.Console.Prompt)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Verify overridden values
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Verify default values still apply
	assert.Equal(t, "library.ready", cfg.Catalog.ReadyEvent)
	assert.True(t, cfg.Catalog.MetricsEnabled)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown level", key: "LOG_LEVEL", value: "loud"},
		{name: "malformed bool", key: "CATALOG_METRICS_ENABLED", value: "maybe"},
		{name: "malformed dev flag", key: "LOG_DEV", value: "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)

			cfg := LoadOrDefault()
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Catalog.ReadyEvent = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Logging.Level = "error"
	assert.NoError(t, cfg.Validate())
}
