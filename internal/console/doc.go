// Package console executes text commands against the catalog.
//
// Static functions tagged with Command become commands and static
// properties tagged with Var become variables:
//
//	library.Declare[Tuning](
//		library.Static("rifle.damage", &damage, library.PropertyWith(&console.Var{})),
//		library.Func("rifle.reset", reset, library.FunctionWith(&console.Command{})),
//	)
//
// Lines are split on whitespace; single or double quotes group words.
// A variable alone prints its value and with one argument assigns it.
// Command arguments are converted to parameter types with the converter.
// The built-ins help and find list and search entries.
package console
