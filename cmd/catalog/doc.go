// Package main is the catalog command line tool.
//
// It builds the catalog from every package linked into the binary and lets
// you inspect records, run console lines and fire events.
//
// Usage:
//
//	# List records as a table, or json/yaml/toml
//	catalog list --format yaml
//
//	# Describe one record
//	catalog show converter.bool
//
//	# Execute a console line, or start an interactive console
//	catalog exec "help"
//	catalog console
//
//	# Fire an event and print handler results
//	catalog run library.ready
//
// Configuration:
//   - Environment variables (12-factor, see internal/config)
//   - Flags --dev and --log-level override them
package main
