package callback

import (
	"reflect"

	"github.com/GriffinCanCode/catalog/internal/shared/types"
)

// Func is the bound invocable behind a handler. Target is nil for static handlers.
type Func func(target any, args []any) (any, error)

// Handler is one listener for an event
type Handler struct {
	Name   string
	Static bool
	Owner  reflect.Type
	Fn     Func
}

// Static creates a handler invoked once per fire
func Static(name string, fn Func) Handler {
	return Handler{Name: name, Static: true, Fn: fn}
}

// Instance creates a handler invoked once per live instance of owner
func Instance(name string, owner reflect.Type, fn Func) Handler {
	return Handler{Name: name, Owner: types.Key(owner), Fn: fn}
}
