package console

import (
	"github.com/GriffinCanCode/catalog/internal/capability"
	"github.com/GriffinCanCode/catalog/internal/library"
)

// Command exposes a static function as a console command. Name overrides
// the function name.
type Command struct {
	capability.Base[*library.Function]
	Name string
}

// CanAttach accepts static functions only
func (c *Command) CanAttach(f *library.Function) bool {
	return f.Static()
}

// Var exposes a static property as a console variable. Name overrides the
// property name.
type Var struct {
	capability.Base[*library.Property]
	Name string
}

// CanAttach accepts static properties only
func (v *Var) CanAttach(p *library.Property) bool {
	return p.Static()
}
