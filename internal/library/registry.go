package library

import (
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/catalog/internal/callback"
	"github.com/GriffinCanCode/catalog/internal/capability"
	"github.com/GriffinCanCode/catalog/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/catalog/internal/shared/types"
)

// DefaultReadyEvent is fired once the catalog is built
const DefaultReadyEvent = "library.ready"

// Config holds registry dependencies. Zero values fall back to DefaultHost,
// a fresh bus, a no-op logger and no metrics.
type Config struct {
	Host       *Host
	Bus        *callback.Bus
	Logger     *zap.Logger
	Metrics    *monitoring.Metrics
	ReadyEvent string
}

// Registry is the type catalog and the construction manager built over a host.
// It is not safe for concurrent use.
type Registry struct {
	host       *Host
	bus        *callback.Bus
	logger     *zap.Logger
	metrics    *monitoring.Metrics
	readyEvent string

	records    map[reflect.Type]*Record
	byName     map[string]*Record
	order      []*Record
	singletons map[reflect.Type]any

	initialized  bool
	initializing bool
}

// NewRegistry creates an uninitialized registry
func NewRegistry(cfg Config) *Registry {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	host := cfg.Host
	if host == nil {
		host = DefaultHost
	}
	bus := cfg.Bus
	if bus == nil {
		bus = callback.NewBus(logger, cfg.Metrics)
	}
	ready := cfg.ReadyEvent
	if ready == "" {
		ready = DefaultReadyEvent
	}

	return &Registry{
		host:       host,
		bus:        bus,
		logger:     logger.Named("library"),
		metrics:    cfg.Metrics,
		readyEvent: ready,
		records:    make(map[reflect.Type]*Record),
		byName:     make(map[string]*Record),
		singletons: make(map[reflect.Type]any),
	}
}

// Bus returns the bus the registry binds callbacks to
func (r *Registry) Bus() *callback.Bus {
	return r.bus
}

// Initialized reports whether the catalog has been built
func (r *Registry) Initialized() bool {
	return r.initialized
}

// ============================================================================
// Catalog Build
// ============================================================================

// Initialize builds the catalog once. Repeated and nested calls are no-ops.
func (r *Registry) Initialize() {
	if r.initialized || r.initializing {
		return
	}
	r.initializing = true
	defer func() {
		r.initializing = false
		if !r.initialized {
			r.reset()
		}
	}()
	start := time.Now()

	b := &builder{host: r.host, logger: r.logger}
	global := reflect.TypeOf(Global{})
	r.add(b.buildWith(global, Meta{Name: "global"}))

	skipped := 0
	for _, m := range r.host.Modules() {
		if !m.DependsOnLibrary() {
			skipped++
			r.logger.Debug("Skipping module", zap.String("module", m.Path))
			continue
		}
		for _, d := range m.decls {
			if _, exists := r.records[d.Type]; exists || !r.qualifies(d.Type) {
				continue
			}
			r.add(b.build(d.Type))
		}
	}

	bound := r.bindCallbacks()

	elapsed := time.Since(start)
	r.metrics.SetRecords(len(r.order))
	r.metrics.ObserveInitialize(elapsed)
	r.logger.Info("Library initialized",
		zap.Int("records", len(r.order)),
		zap.Int("callbacks", bound),
		zap.Int("skipped_modules", skipped),
		zap.Duration("elapsed", elapsed))

	r.initialized = true
	r.bus.Run(r.readyEvent)
}

// qualifies reports whether t belongs in the catalog
func (r *Registry) qualifies(t reflect.Type) bool {
	if r.host.tagged(t) || t.Implements(registrableType) {
		return true
	}
	return t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(registrableType)
}

func (r *Registry) add(rec *Record) {
	r.records[rec.class] = rec
	if existing, ok := r.byName[rec.Name()]; ok {
		r.logger.Warn("Record name already in use",
			zap.String("name", rec.Name()),
			zap.String("existing", existing.class.String()),
			zap.String("type", rec.class.String()))
	} else {
		r.byName[rec.Name()] = rec
	}
	r.order = append(r.order, rec)
	r.logger.Debug("Record added", zap.String("name", rec.Name()), zap.String("type", rec.class.String()))
}

// bindCallbacks adds every function carrying a Callback to the bus
func (r *Registry) bindCallbacks() int {
	bound := 0
	for _, rec := range r.order {
		for _, fn := range rec.functions.All() {
			for _, cb := range capability.GetAll[*Callback](fn.caps) {
				f := fn
				invoke := func(target any, args []any) (any, error) {
					return f.Invoke(target, args...)
				}
				if f.Static() {
					r.bus.Add(cb.Event, callback.Static(f.String(), invoke))
				} else {
					r.bus.Add(cb.Event, callback.Instance(f.String(), rec.class, invoke))
				}
				bound++
			}
		}
	}
	return bound
}

// Shutdown drops the catalog and singletons and disposes the bus. The
// registry may be initialized again, but its bus stays disposed.
func (r *Registry) Shutdown() {
	r.bus.Dispose()
	r.reset()
	r.initialized = false
	r.logger.Info("Library shut down")
}

// reset drops every record and cached singleton
func (r *Registry) reset() {
	clear(r.singletons)
	clear(r.records)
	clear(r.byName)
	r.order = nil
	r.metrics.SetRecords(0)
}

// ============================================================================
// Queries
// ============================================================================

// Lookup returns the record for t. Pointer types resolve to their element.
func (r *Registry) Lookup(t reflect.Type) (*Record, bool) {
	rec, ok := r.records[types.Key(t)]
	return rec, ok
}

// LookupName returns the record with the given name
func (r *Registry) LookupName(name string) (*Record, bool) {
	rec, ok := r.byName[name]
	return rec, ok
}

// LookupOf returns the record for the dynamic type of v
func (r *Registry) LookupOf(v any) (*Record, bool) {
	if v == nil {
		return nil, false
	}
	return r.Lookup(reflect.TypeOf(v))
}

// All returns every record in build order
func (r *Registry) All() []*Record {
	out := make([]*Record, len(r.order))
	copy(out, r.order)
	return out
}

// FindType returns the first record matching t. Interfaces match records
// whose class or pointer implements them. Concrete types match the record
// of that type, records embedding it, and records carrying a capability of
// that type.
func (r *Registry) FindType(t reflect.Type) (*Record, bool) {
	for _, rec := range r.order {
		if matches(rec, t) {
			return rec, true
		}
	}
	return nil, false
}

// FindAllType returns every record matching t in build order
func (r *Registry) FindAllType(t reflect.Type) []*Record {
	var out []*Record
	for _, rec := range r.order {
		if matches(rec, t) {
			out = append(out, rec)
		}
	}
	return out
}

// Find returns the first record matching C
func Find[C any](r *Registry) (*Record, bool) {
	return r.FindType(reflect.TypeOf((*C)(nil)).Elem())
}

// FindAll returns every record matching C
func FindAll[C any](r *Registry) []*Record {
	return r.FindAllType(reflect.TypeOf((*C)(nil)).Elem())
}

func matches(rec *Record, t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Interface {
		if rec.class.Implements(t) {
			return true
		}
		return rec.class.Kind() != reflect.Interface && reflect.PointerTo(rec.class).Implements(t)
	}

	key := types.Key(t)
	if rec.class == key || embeds(rec.class, key, 0) {
		return true
	}
	for _, c := range rec.caps.All() {
		if types.Key(reflect.TypeOf(c)) == key {
			return true
		}
	}
	return false
}

// embeds reports whether struct class embeds target, directly or transitively
func embeds(class, target reflect.Type, depth int) bool {
	if class.Kind() != reflect.Struct || depth > 16 {
		return false
	}
	for i := 0; i < class.NumField(); i++ {
		f := class.Field(i)
		if !f.Anonymous {
			continue
		}
		inner := types.Key(f.Type)
		if inner == target || embeds(inner, target, depth+1) {
			return true
		}
	}
	return false
}

// ============================================================================
// Event Participation
// ============================================================================

// Register adds instance to the bus so it receives instance callbacks, and
// returns its record when one exists
func (r *Registry) Register(instance any) (*Record, bool) {
	r.bus.Register(instance)
	rec, ok := r.LookupOf(instance)
	if ok {
		bind(instance, rec)
	}
	return rec, ok
}

// Unregister removes instance from the bus. Absent instances are ignored.
func (r *Registry) Unregister(instance any) {
	r.bus.Unregister(instance)
}

func bind(instance any, rec *Record) {
	if binder, ok := instance.(recordBinder); ok {
		binder.bindRecord(rec)
	}
}

// ============================================================================
// Construction
// ============================================================================

// Create builds an instance of rec. Policy order: spawnable, singleton
// cache, Constructor capability, default allocation. Instances are pointers.
func (r *Registry) Create(rec *Record) (any, error) {
	if rec == nil {
		r.logger.Error("Can't construct, record is nil")
		return nil, ErrNilRecord
	}
	if !rec.Spawnable() {
		r.logger.Error("Record is not spawnable", zap.String("record", rec.Name()))
		r.metrics.RecordConstruction(rec.Name(), monitoring.OutcomeNotSpawnable)
		return nil, fmt.Errorf("%w: %s", ErrNotSpawnable, rec.Name())
	}

	if !rec.Singleton() {
		return r.construct(rec)
	}

	if instance, ok := r.singletons[rec.class]; ok {
		r.logger.Debug("Using singleton", zap.String("record", rec.Name()))
		r.metrics.RecordConstruction(rec.Name(), monitoring.OutcomeSingletonHit)
		return instance, nil
	}

	r.logger.Info("Creating singleton", zap.String("record", rec.Name()))
	instance, err := r.construct(rec)
	if err != nil {
		return nil, err
	}
	r.singletons[rec.class] = instance
	return instance, nil
}

func (r *Registry) construct(rec *Record) (any, error) {
	var instance any
	if ctor, ok := capability.TryGet[*Constructor](rec.caps); ok {
		instance = ctor.New()
		if types.IsNil(instance) {
			r.logger.Error("Custom constructor returned nothing", zap.String("record", rec.Name()))
			r.metrics.RecordConstruction(rec.Name(), monitoring.OutcomeConstructFail)
			return nil, fmt.Errorf("%w: %s", ErrConstructorFailed, rec.Name())
		}
	} else if !rec.Abstract() && rec.class.Kind() != reflect.Interface {
		instance = reflect.New(rec.class).Interface()
	} else {
		r.logger.Error("Can't construct, record is abstract and has no constructor", zap.String("record", rec.Name()))
		r.metrics.RecordConstruction(rec.Name(), monitoring.OutcomeAbstract)
		return nil, fmt.Errorf("%w: %s", ErrAbstract, rec.Name())
	}

	bind(instance, rec)
	r.metrics.RecordConstruction(rec.Name(), monitoring.OutcomeCreated)
	return instance, nil
}

// Create builds an instance of the record registered for T and returns it as T
func Create[T any](r *Registry) (T, error) {
	var zero T
	rec, ok := r.Lookup(types.For[T]())
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotRegistered, types.For[T]())
	}

	instance, err := r.Create(rec)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s built %T", ErrTypeMismatch, rec.Name(), instance)
	}
	return typed, nil
}
