package library

import (
	"fmt"
	"reflect"
)

// receiver adapts target to a value usable where want is expected. Pointers
// are dereferenced, values are copied behind a fresh pointer, and embedded
// structs are reached through promotion.
func receiver(target any, want reflect.Type) (reflect.Value, error) {
	if target == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil target, want %s", ErrTypeMismatch, want)
	}

	v := reflect.ValueOf(target)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		if v.Elem().Type().AssignableTo(want) {
			return v.Elem(), nil
		}
		if found, ok := embedded(v.Elem(), want); ok {
			return found, nil
		}
	} else if want.Kind() == reflect.Pointer && v.Type().AssignableTo(want.Elem()) {
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		return p, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: target %s, want %s", ErrTypeMismatch, v.Type(), want)
}

// embedded finds the anonymous field of the addressable struct v that fits want
func embedded(v reflect.Value, want reflect.Type) (reflect.Value, bool) {
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	for _, f := range reflect.VisibleFields(v.Type()) {
		if !f.Anonymous || !f.IsExported() {
			continue
		}
		fv, err := v.FieldByIndexErr(f.Index)
		if err != nil {
			continue
		}
		switch {
		case fv.Type().AssignableTo(want):
			return fv, true
		case fv.CanAddr() && fv.Addr().Type().AssignableTo(want):
			return fv.Addr(), true
		case fv.Kind() == reflect.Pointer && !fv.IsNil() && fv.Elem().Type().AssignableTo(want):
			return fv.Elem(), true
		}
	}
	return reflect.Value{}, false
}

// coerce converts value to t. Assignable values pass through, numeric
// values convert between numeric kinds, and named types convert from their
// underlying kind.
func coerce(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil is not a %s", ErrTypeMismatch, t)
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if v.Type().ConvertibleTo(t) && (v.Kind() == t.Kind() || (numeric(v.Kind()) && numeric(t.Kind()))) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %T is not a %s", ErrTypeMismatch, value, t)
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()
