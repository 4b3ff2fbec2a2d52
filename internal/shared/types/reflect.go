package types

import "reflect"

// Key normalizes t so pointer and element types share one identity
func Key(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// KeyOf returns the normalized runtime type of v, or nil for a nil interface
func KeyOf(v any) reflect.Type {
	if v == nil {
		return nil
	}
	return Key(reflect.TypeOf(v))
}

// For returns the normalized type of T, including interface types
func For[T any]() reflect.Type {
	return Key(reflect.TypeOf((*T)(nil)).Elem())
}

// IsNil reports whether v is nil or holds a nil pointer, map, slice, func, chan or interface
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Same reports whether a and b are the same value, returning false instead
// of panicking when the dynamic type is not comparable
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
