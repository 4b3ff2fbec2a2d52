// Package types provides shared reflection helpers for catalog components.
//
// Every component that keys state by type (records, live instances,
// singletons) normalizes through this package so that Foo and *Foo resolve
// to the same entry.
//
// Example Usage:
//
//	key := types.Key(reflect.TypeOf(&Foo{})) // reflect.TypeOf(Foo{})
//	if types.IsNil(result) {
//	    // skip
//	}
package types
