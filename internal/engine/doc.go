// Package engine wires the catalog into one lifecycle-scoped context.
//
// An Engine owns the logger, metrics, event bus, registry, converter and
// console. Nothing is global: tests create an engine per case and shut it
// down afterwards.
//
// Lifecycle:
//   - New: build components from configuration
//   - Start: initialize the registry and collect console entries
//   - Shutdown: drop singletons, dispose the bus, flush the logger
//
// The engine contributes its own console entries under the "engine" record:
// records, show, spawn, run, metrics and the log.level variable.
package engine
