package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Logging LogConfig
	Catalog CatalogConfig
	Console ConsoleConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// CatalogConfig holds registry configuration.
type CatalogConfig struct {
	ReadyEvent     string `envconfig:"CATALOG_READY_EVENT" default:"library.ready"`
	MetricsEnabled bool   `envconfig:"CATALOG_METRICS_ENABLED" default:"true"`
}

// ConsoleConfig holds console configuration.
type ConsoleConfig struct {
	Prompt string `envconfig:"CATALOG_CONSOLE_PROMPT" default:"> "`
}

var levels = []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Catalog: CatalogConfig{
			ReadyEvent:     "library.ready",
			MetricsEnabled: true,
		},
		Console: ConsoleConfig{
			Prompt: "> ",
		},
	}
}

// Validate checks values envconfig cannot express as types.
func (c *Config) Validate() error {
	if !slices.Contains(levels, c.Logging.Level) {
		return fmt.Errorf("invalid LOG_LEVEL %q", c.Logging.Level)
	}
	if c.Catalog.ReadyEvent == "" {
		return errors.New("CATALOG_READY_EVENT must not be empty")
	}
	return nil
}
