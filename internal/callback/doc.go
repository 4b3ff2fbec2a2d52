// Package callback provides the named event broadcast bus.
//
// Handlers are bound once, at registration, to an opaque invocable keyed by
// event name and declaring type, so firing an event never looks methods up.
//
// Handler Kinds:
//   - Static: invoked exactly once per fire with no target
//   - Instance: invoked once per live instance of the declaring type, in
//     registration order; the live set is read fresh on every fire
//
// Lifecycle:
//   - Active: handlers and instances can be added and events fired
//   - Disposed: terminal; tables are cleared and fires are no-ops
//
// Handlers may fire events themselves. There is no recursion guard, bound it
// at the call site if needed. Each fire iterates over snapshots so handlers
// can add handlers or (un)register instances without corrupting the fire in
// progress.
//
// Example Usage:
//
//	bus := callback.NewBus(logger, metrics)
//	bus.Add("ping", callback.Instance("Foo.Ping", fooType, ping))
//	bus.Register(foo)
//	bus.Run("ping")
//	results := bus.RunWith("score", 10)
package callback
