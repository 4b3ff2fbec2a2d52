// Package export renders catalog snapshots for tooling.
//
// Formats:
//   - text: aligned table (text/tabwriter)
//   - json: indented JSON (bytedance/sonic)
//   - yaml: goccy/go-yaml
//   - toml: pelletier/go-toml/v2
//
// Snapshots describe records and their members; they are output only and
// are never read back.
package export
