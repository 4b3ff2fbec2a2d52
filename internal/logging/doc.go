// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The level is atomic and can be changed while running, which the console
// exposes as the log.level variable.
//
// Components receive a *zap.Logger and name themselves (library, callback,
// converter, console) so entries can be filtered by subsystem.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Library initialized", zap.Int("records", 12))
//	logger.Error("Conversion failed", zap.Error(err))
package logging
