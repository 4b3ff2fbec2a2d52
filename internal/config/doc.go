// Package config provides 12-factor configuration management for the catalog.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Logging: Log level and output format
//   - Catalog: Ready event name and metrics collection
//   - Console: Interactive prompt
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Ready event: %s\n", cfg.Catalog.ReadyEvent)
//
// Environment Variables:
//   - LOG_LEVEL, LOG_DEV
//   - CATALOG_READY_EVENT, CATALOG_METRICS_ENABLED
//   - CATALOG_CONSOLE_PROMPT
package config
