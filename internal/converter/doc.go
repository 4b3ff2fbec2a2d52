// Package converter coerces strings into typed values through the catalog.
//
// A converter is any registered type with a method
//
//	Convert(value string) (T, error)
//
// The first record providing one for the requested type is constructed
// through the registry and invoked. Records carrying library.Enum are parsed
// by member name instead.
//
// Two entry points:
//   - To and Service.Convert are fail-soft: failures are logged and the zero
//     value is returned
//   - Parse and Service.Parse return the error
//
// Built-in converters cover bool, string, the common numeric types and
// time.Duration. Install adds them to a host; DefaultHost has them already.
//
// Example Usage:
//
//	conv := converter.New(registry, logger, metrics)
//	enabled := converter.To[bool](conv, "yes") // true
//	rate := converter.To[float64](conv, "0.25")
package converter
