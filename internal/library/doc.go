// Package library is the runtime type catalog.
//
// Types declare themselves at package init time into a Host. When a Registry
// initializes it scans the host once, builds one Record per qualifying type
// and exposes a query surface over them. Records carry metadata
// (name, title, group, help, spawnable, a stable id), an ordered capability
// set and two member tables (properties and functions) used by consoles and
// scripting to read, write and invoke members without compile-time binding.
//
// Declaring a type:
//
//	func init() {
//		library.Declare[Rifle](
//			library.Tag{Title: "Rifle", Group: "Weapons"},
//			library.With(&library.Singleton{}),
//			library.Method("Fire", library.On("round.start")),
//			library.Static("rifle.damage", &damage),
//		)
//	}
//
// Struct fields are exposed with a `lib` tag:
//
//	type Rifle struct {
//		Ammo  int    `lib:"ammo"`
//		Model string `lib:"model,readonly"`
//	}
//
// Qualification:
//   - The type carries a Tag (Declare), directly or through an embedded
//     struct (tags are inherited through embedding)
//   - The type or its pointer implements Registrable (for example by
//     embedding Info)
//
// Modules that do not depend on this package are skipped during the scan
// without inspecting their types.
//
// Construction honors policy in a fixed order: spawnable check, singleton
// cache, custom Constructor, default allocation. Instances are pointers.
//
// Declared capabilities act as templates: each record (and each member)
// receives its own shallow copy, so registries built from the same host never
// share capability instances.
package library
