package library

import (
	"fmt"
	"reflect"

	"github.com/GriffinCanCode/catalog/internal/capability"
)

// Function is an invocable member of a record
type Function struct {
	owner    *Record
	name     string
	title    string
	group    string
	help     string
	static   bool
	method   string       // instance method name
	recv     reflect.Type // instance receiver type
	fn       reflect.Value
	params   []reflect.Type
	variadic bool
	caps     *capability.Set[*Function]
}

func (f *Function) Owner() *Record { return f.owner }
func (f *Function) Name() string { return f.name }
func (f *Function) Title() string { return f.title }
func (f *Function) Group() string { return f.group }
func (f *Function) Help() string { return f.help }
func (f *Function) Static() bool { return f.static }
func (f *Function) Variadic() bool { return f.variadic }
func (f *Function) Capabilities() *capability.Set[*Function] { return f.caps }

// Params returns the parameter types, excluding the receiver
func (f *Function) Params() []reflect.Type {
	out := make([]reflect.Type, len(f.params))
	copy(out, f.params)
	return out
}

// Invoke calls the function on target with args. Missing trailing arguments
// are zero values. A trailing error result is returned as the error, no
// result yields nil and several results yield a []any.
func (f *Function) Invoke(target any, args ...any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %s panicked: %v", ErrInvoke, f, r)
		}
	}()

	call := f.fn
	if !f.static {
		recv, rerr := receiver(target, f.recv)
		if rerr != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvoke, f, rerr)
		}
		call = recv.MethodByName(f.method)
		if !call.IsValid() {
			return nil, fmt.Errorf("%w: %s has no method %s", ErrInvoke, recv.Type(), f.method)
		}
	}

	in, err := f.arguments(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvoke, f, err)
	}
	return results(call.Call(in))
}

// arguments coerces args to the parameter list
func (f *Function) arguments(args []any) ([]reflect.Value, error) {
	fixed := len(f.params)
	if f.variadic {
		fixed--
	}
	if !f.variadic && len(args) > fixed {
		return nil, fmt.Errorf("too many arguments: got %d, want %d", len(args), fixed)
	}

	in := make([]reflect.Value, 0, max(fixed, len(args)))
	for i := 0; i < fixed; i++ {
		if i >= len(args) {
			in = append(in, reflect.Zero(f.params[i]))
			continue
		}
		v, err := coerce(args[i], f.params[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in = append(in, v)
	}
	if f.variadic {
		elem := f.params[fixed].Elem()
		for i := fixed; i < len(args); i++ {
			v, err := coerce(args[i], elem)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			in = append(in, v)
		}
	}
	return in, nil
}

func results(out []reflect.Value) (any, error) {
	var err error
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if e := out[n-1].Interface(); e != nil {
			err = e.(error)
		}
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	}
	values := make([]any, len(out))
	for i, v := range out {
		values[i] = v.Interface()
	}
	return values, err
}

func (f *Function) String() string {
	return f.owner.Name() + "." + f.name
}
