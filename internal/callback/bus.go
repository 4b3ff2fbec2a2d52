package callback

import (
	"fmt"
	"reflect"
	"slices"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/catalog/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/catalog/internal/shared/types"
)

// Bus dispatches named events to static and instance-scoped handlers.
// It is not safe for concurrent use; all calls happen on the host's main loop.
type Bus struct {
	callbacks  map[string][]Handler
	registered map[reflect.Type][]any
	disposed   bool

	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewBus creates an active bus. A nil logger discards output; nil metrics record nothing.
func NewBus(logger *zap.Logger, metrics *monitoring.Metrics) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		callbacks:  make(map[string][]Handler),
		registered: make(map[reflect.Type][]any),
		logger:     logger.Named("callback"),
		metrics:    metrics,
	}
}

// Add binds handler to event name
func (b *Bus) Add(name string, handler Handler) {
	if b.disposed {
		b.logger.Debug("Ignoring handler on disposed bus", zap.String("event", name), zap.String("handler", handler.Name))
		return
	}
	if handler.Fn == nil {
		b.logger.Warn("Ignoring handler without invocable", zap.String("event", name), zap.String("handler", handler.Name))
		return
	}
	if !handler.Static {
		handler.Owner = types.Key(handler.Owner)
	}

	b.callbacks[name] = append(b.callbacks[name], handler)
	b.logger.Debug("Handler added",
		zap.String("event", name),
		zap.String("handler", handler.Name),
		zap.Bool("static", handler.Static))
}

// Register adds instance to the live set of its runtime type.
// Registering an instance twice keeps its original position.
func (b *Bus) Register(instance any) {
	if b.disposed || instance == nil {
		return
	}
	if !reflect.TypeOf(instance).Comparable() {
		b.logger.Warn("Cannot register non-comparable instance", zap.String("type", reflect.TypeOf(instance).String()))
		return
	}

	key := types.KeyOf(instance)
	if slices.IndexFunc(b.registered[key], func(v any) bool { return types.Same(v, instance) }) >= 0 {
		return
	}
	b.registered[key] = append(b.registered[key], instance)
}

// Unregister removes instance from the live set. Absent instances are ignored.
func (b *Bus) Unregister(instance any) {
	if b.disposed || instance == nil {
		return
	}

	key := types.KeyOf(instance)
	all, ok := b.registered[key]
	if !ok {
		return
	}

	index := slices.IndexFunc(all, func(v any) bool { return types.Same(v, instance) })
	if index < 0 {
		return
	}

	// Fresh backing array so snapshots held by in-flight fires stay intact
	all = slices.Delete(slices.Clone(all), index, index+1)
	if len(all) == 0 {
		delete(b.registered, key)
		return
	}
	b.registered[key] = all
}

// Run fires name for side effects only
func (b *Bus) Run(name string) {
	b.fire(name, nil, nil)
}

// RunWith fires name with args and collects every non-nil result, in handler
// order and then live-instance order
func (b *Bus) RunWith(name string, args ...any) []any {
	var results []any
	b.fire(name, args, func(v any) {
		if !types.IsNil(v) {
			results = append(results, v)
		}
	})
	return results
}

func (b *Bus) fire(name string, args []any, collect func(any)) {
	if b.disposed {
		return
	}

	handlers, ok := b.callbacks[name]
	if !ok || len(handlers) == 0 {
		return
	}
	b.metrics.RecordEvent(name)

	// Snapshot, handlers may mutate the table while we iterate
	handlers = slices.Clone(handlers)

	for _, handler := range handlers {
		if handler.Static {
			b.invoke(name, handler, nil, args, collect)
			continue
		}

		// Live instances are read at fire time, not at registration time
		targets := slices.Clone(b.registered[handler.Owner])
		for _, target := range targets {
			b.invoke(name, handler, target, args, collect)
		}
	}
}

func (b *Bus) invoke(event string, handler Handler, target any, args []any, collect func(any)) {
	result, err := safeCall(handler, target, args)
	if err != nil {
		b.metrics.RecordHandlerCall(event, monitoring.StatusError)
		b.logger.Error("Event handler failed",
			zap.String("event", event),
			zap.String("handler", handler.Name),
			zap.Error(err))
		return
	}
	b.metrics.RecordHandlerCall(event, monitoring.StatusOK)

	if collect != nil {
		collect(result)
	}
}

func safeCall(handler Handler, target any, args []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %s panicked: %v", handler.Name, r)
		}
	}()
	return handler.Fn(target, args)
}

// Has reports whether any handler is bound to name
func (b *Bus) Has(name string) bool {
	return len(b.callbacks[name]) > 0
}

// Count returns the number of handlers bound to name
func (b *Bus) Count(name string) int {
	return len(b.callbacks[name])
}

// Live returns a copy of the live instances registered for t
func (b *Bus) Live(t reflect.Type) []any {
	return slices.Clone(b.registered[types.Key(t)])
}

// Disposed reports whether the bus has been disposed
func (b *Bus) Disposed() bool {
	return b.disposed
}

// Dispose clears every table. The bus stays disposed; fires become no-ops.
func (b *Bus) Dispose() {
	if b.disposed {
		return
	}
	clear(b.registered)
	clear(b.callbacks)
	b.disposed = true
	b.logger.Warn("Disposing callback bus")
}
