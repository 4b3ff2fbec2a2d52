package library

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/GriffinCanCode/catalog/internal/capability"
)

// Singleton limits construction of a record to one cached instance
type Singleton struct {
	capability.Base[*Record]
}

// Constructor replaces default allocation of a record's instances
type Constructor struct {
	capability.Base[*Record]
	New func() any
}

// CanAttach rejects constructors without a New func
func (c *Constructor) CanAttach(*Record) bool {
	return c.New != nil
}

// Enum marks a record as an enumeration parsed by member name
type Enum struct {
	capability.Base[*Record]
	names  []string
	values map[string]any
}

// EnumOf builds an Enum whose member names are the fmt.Sprint form of values
func EnumOf[T comparable](values ...T) *Enum {
	e := &Enum{values: make(map[string]any, len(values))}
	for _, v := range values {
		name := fmt.Sprint(v)
		if _, exists := e.values[name]; !exists {
			e.names = append(e.names, name)
		}
		e.values[name] = v
	}
	return e
}

// CanAttach rejects empty enumerations
func (e *Enum) CanAttach(*Record) bool {
	return len(e.names) > 0
}

// Parse returns the member named name. Exact matches win over
// case-insensitive ones.
func (e *Enum) Parse(name string) (any, bool) {
	name = strings.TrimSpace(name)
	if v, ok := e.values[name]; ok {
		return v, true
	}
	for _, candidate := range e.names {
		if strings.EqualFold(candidate, name) {
			return e.values[candidate], true
		}
	}
	return nil, false
}

// Names returns member names in declaration order
func (e *Enum) Names() []string {
	return slices.Clone(e.names)
}

// Callback binds a function to an event on the registry's bus
type Callback struct {
	capability.Base[*Function]
	Event string
}

// CanAttach rejects callbacks without an event name
func (c *Callback) CanAttach(*Function) bool {
	return c.Event != ""
}

// cloneCapability returns a shallow copy of c when it is a pointer to a
// struct, so every owner receives its own instance
func cloneCapability[O any](c capability.Capability[O]) capability.Capability[O] {
	v := reflect.ValueOf(c)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return c
	}
	dup := reflect.New(v.Elem().Type())
	dup.Elem().Set(v.Elem())
	if out, ok := dup.Interface().(capability.Capability[O]); ok {
		return out
	}
	return c
}
