package library

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/catalog/internal/capability"
)

type getterFunc func(target any) (reflect.Value, error)
type setterFunc func(target any, value reflect.Value) error

// Property is a readable and optionally writable member of a record
type Property struct {
	owner  *Record
	name   string
	title  string
	group  string
	help   string
	def    any
	typ    reflect.Type
	static bool
	get    getterFunc
	set    setterFunc
	caps   *capability.Set[*Property]
	logger *zap.Logger
}

func (p *Property) Owner() *Record { return p.owner }
func (p *Property) Name() string { return p.name }
func (p *Property) Title() string { return p.title }
func (p *Property) Group() string { return p.group }
func (p *Property) Help() string { return p.help }
func (p *Property) Default() any { return p.def }
func (p *Property) Type() reflect.Type { return p.typ }
func (p *Property) Static() bool { return p.static }
func (p *Property) Editable() bool { return p.set != nil }
func (p *Property) Capabilities() *capability.Set[*Property] { return p.caps }

// Get reads the property from target. Static properties ignore target.
func (p *Property) Get(target any) (any, error) {
	v, err := p.get(target)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s.%s: %w", p.owner.Name(), p.name, err)
	}
	return v.Interface(), nil
}

// Set writes value to the property on target
func (p *Property) Set(target any, value any) error {
	if p.set == nil {
		p.logger.Error("Property is not editable",
			zap.String("record", p.owner.Name()),
			zap.String("property", p.name))
		return fmt.Errorf("%w: %s.%s", ErrNonEditable, p.owner.Name(), p.name)
	}

	v, err := coerce(value, p.typ)
	if err != nil {
		return fmt.Errorf("failed to set %s.%s: %w", p.owner.Name(), p.name, err)
	}
	if err := p.set(target, v); err != nil {
		return fmt.Errorf("failed to set %s.%s: %w", p.owner.Name(), p.name, err)
	}
	return nil
}

func (p *Property) String() string {
	return p.owner.Name() + "." + p.name
}

// fieldProperty exposes a struct field reached through index
func fieldProperty(class reflect.Type, f reflect.StructField, readOnly bool) (getterFunc, setterFunc) {
	ptr := reflect.PointerTo(class)
	field := func(target any) (reflect.Value, error) {
		v, err := receiver(target, ptr)
		if err != nil {
			return reflect.Value{}, err
		}
		return v.Elem().FieldByIndexErr(f.Index)
	}

	get := func(target any) (reflect.Value, error) {
		return field(target)
	}
	if readOnly {
		return get, nil
	}
	set := func(target any, value reflect.Value) error {
		if target != nil && reflect.TypeOf(target).Kind() != reflect.Pointer {
			return fmt.Errorf("%w: field %s requires a pointer target", ErrTypeMismatch, f.Name)
		}
		fv, err := field(target)
		if err != nil {
			return err
		}
		fv.Set(value)
		return nil
	}
	return get, set
}

// accessorProperty exposes a getter func(R) V and optional setter func(R, V)
func accessorProperty(get, set reflect.Value) (getterFunc, setterFunc) {
	recv := get.Type().In(0)
	g := func(target any) (reflect.Value, error) {
		v, err := receiver(target, recv)
		if err != nil {
			return reflect.Value{}, err
		}
		return get.Call([]reflect.Value{v})[0], nil
	}
	if !set.IsValid() {
		return g, nil
	}
	s := func(target any, value reflect.Value) error {
		want := set.Type().In(0)
		if want.Kind() == reflect.Pointer && target != nil && reflect.TypeOf(target).Kind() != reflect.Pointer {
			return fmt.Errorf("%w: setter requires a pointer target, got %T", ErrTypeMismatch, target)
		}
		v, err := receiver(target, want)
		if err != nil {
			return err
		}
		set.Call([]reflect.Value{v, value})
		return nil
	}
	return g, s
}

// staticProperty exposes the variable ptr points to
func staticProperty(ptr reflect.Value) (getterFunc, setterFunc) {
	get := func(any) (reflect.Value, error) {
		return ptr.Elem(), nil
	}
	set := func(_ any, value reflect.Value) error {
		ptr.Elem().Set(value)
		return nil
	}
	return get, set
}

// staticGetterProperty exposes get func() V
func staticGetterProperty(get reflect.Value) getterFunc {
	return func(any) (reflect.Value, error) {
		return get.Call(nil)[0], nil
	}
}

// staticAccessorProperty exposes get func() V and set func(V) [error]
func staticAccessorProperty(get, set reflect.Value) (getterFunc, setterFunc) {
	s := func(_ any, value reflect.Value) error {
		out := set.Call([]reflect.Value{value})
		if len(out) == 1 && !out[0].IsNil() {
			return out[0].Interface().(error)
		}
		return nil
	}
	return staticGetterProperty(get), s
}
