package converter

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/catalog/internal/capability"
	"github.com/GriffinCanCode/catalog/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/catalog/internal/library"
)

var (
	// ErrConversion is returned when a value cannot be coerced
	ErrConversion = errors.New("conversion failed")

	// ErrNoConverter is returned when no record converts to the requested type
	ErrNoConverter = errors.New("no converter registered")
)

// Of is implemented by converters producing T
type Of[T any] interface {
	Convert(value string) (T, error)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Service converts strings using converters found in a registry
type Service struct {
	registry *library.Registry
	logger   *zap.Logger
	metrics  *monitoring.Metrics
	found    map[reflect.Type]*library.Record
}

// New creates a converter service over an initialized registry
func New(registry *library.Registry, logger *zap.Logger, metrics *monitoring.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: registry,
		logger:   logger.Named("converter"),
		metrics:  metrics,
		found:    make(map[reflect.Type]*library.Record),
	}
}

// Convert coerces value to t. Failures are logged and yield the zero value of t.
func (s *Service) Convert(value string, t reflect.Type) any {
	result, err := s.Parse(value, t)
	if err != nil {
		s.fail(value, t, err)
		return reflect.Zero(t).Interface()
	}
	return result
}

// Parse coerces value to t and reports failures
func (s *Service) Parse(value string, t reflect.Type) (any, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: no target type", ErrConversion)
	}

	if enum, rec, ok := s.enum(t); ok {
		v, found := enum.Parse(value)
		if !found {
			return nil, fmt.Errorf("%w: %q is not a member of %s", ErrConversion, value, rec.Name())
		}
		s.metrics.RecordConversion(t.String(), monitoring.StatusOK)
		return v, nil
	}

	rec, ok := s.lookup(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoConverter, t)
	}
	instance, err := s.registry.Create(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to create converter %s: %w", rec.Name(), err)
	}

	result, err := invoke(reflect.ValueOf(instance).MethodByName("Convert"), value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConversion, t, err)
	}
	s.metrics.RecordConversion(t.String(), monitoring.StatusOK)
	return result, nil
}

// invoke calls a Convert method value, turning panics into errors
func invoke(method reflect.Value, value string) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("converter panicked: %v", r)
		}
	}()

	arg := reflect.ValueOf(value).Convert(method.Type().In(0))
	out := method.Call([]reflect.Value{arg})
	if e := out[1].Interface(); e != nil {
		return nil, e.(error)
	}
	return out[0].Interface(), nil
}

// enum returns the Enum capability of the record registered for exactly t
func (s *Service) enum(t reflect.Type) (*library.Enum, *library.Record, bool) {
	rec, ok := s.registry.Lookup(t)
	if !ok || rec.Class() != t {
		return nil, nil, false
	}
	enum, ok := capability.TryGet[*library.Enum](rec.Capabilities())
	return enum, rec, ok
}

// lookup finds the first record with a Convert method producing t
func (s *Service) lookup(t reflect.Type) (*library.Record, bool) {
	if rec, ok := s.found[t]; ok {
		return rec, true
	}
	for _, rec := range s.registry.All() {
		if converts(rec.Class(), t) {
			s.found[t] = rec
			return rec, true
		}
	}
	return nil, false
}

// converts reports whether *class has Convert(string) (t, error)
func converts(class, t reflect.Type) bool {
	if class.Kind() == reflect.Interface {
		return false
	}
	m, ok := reflect.PointerTo(class).MethodByName("Convert")
	if !ok {
		return false
	}
	sig := m.Type
	return sig.NumIn() == 2 && sig.In(1).Kind() == reflect.String &&
		sig.NumOut() == 2 && sig.Out(0) == t && sig.Out(1) == errorType
}

func (s *Service) fail(value string, t reflect.Type, err error) {
	s.metrics.RecordConversion(t.String(), monitoring.StatusError)
	s.logger.Error("Conversion failed",
		zap.String("value", value),
		zap.String("type", t.String()),
		zap.Error(err))
}

// Parse converts value to T and reports failures
func Parse[T any](s *Service, value string) (T, error) {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()

	if _, _, isEnum := s.enum(t); !isEnum {
		if rec, ok := library.Find[Of[T]](s.registry); ok {
			instance, err := s.registry.Create(rec)
			if err != nil {
				return zero, fmt.Errorf("failed to create converter %s: %w", rec.Name(), err)
			}
			if conv, ok := instance.(Of[T]); ok {
				v, err := convertWith(conv, value)
				if err != nil {
					return zero, fmt.Errorf("%w: %s: %w", ErrConversion, t, err)
				}
				s.metrics.RecordConversion(t.String(), monitoring.StatusOK)
				return v, nil
			}
		}
	}

	v, err := s.Parse(value, t)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T, want %s", ErrConversion, v, t)
	}
	return typed, nil
}

func convertWith[T any](conv Of[T], value string) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("converter panicked: %v", r)
		}
	}()
	return conv.Convert(value)
}

// To converts value to T. Failures are logged and yield the zero value.
func To[T any](s *Service, value string) T {
	v, err := Parse[T](s, value)
	if err != nil {
		s.fail(value, reflect.TypeOf((*T)(nil)).Elem(), err)
	}
	return v
}
