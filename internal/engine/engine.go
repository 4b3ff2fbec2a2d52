package engine

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/catalog/internal/callback"
	"github.com/GriffinCanCode/catalog/internal/config"
	"github.com/GriffinCanCode/catalog/internal/console"
	"github.com/GriffinCanCode/catalog/internal/converter"
	"github.com/GriffinCanCode/catalog/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/catalog/internal/library"
	"github.com/GriffinCanCode/catalog/internal/logging"
)

// ErrNotStarted is returned by operations that need a started engine
var ErrNotStarted = errors.New("engine not started")

// Engine is the lifecycle context around the catalog
type Engine struct {
	Config     *config.Config
	Logger     *logging.Logger
	Prometheus *prometheus.Registry
	Metrics    *monitoring.Metrics
	Bus        *callback.Bus
	Registry   *library.Registry
	Converter  *converter.Service
	Console    *console.Console

	host      *library.Host
	instances []any
	started   bool
}

type options struct {
	host   *library.Host
	logger *logging.Logger
}

// Option configures New
type Option func(*options)

// WithHost scans host instead of library.DefaultHost. The engine never
// declares anything on host itself.
func WithHost(host *library.Host) Option {
	return func(o *options) { o.host = host }
}

// WithLogger uses logger instead of one built from configuration
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New builds an engine. A nil cfg uses config.Default.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	o := options{host: library.DefaultHost}
	for _, opt := range opts {
		opt(&o)
	}
	if o.host == nil {
		o.host = library.DefaultHost
	}

	logger := o.logger
	if logger == nil {
		var err error
		logger, err = logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	e := &Engine{
		Config: cfg,
		Logger: logger,
		host:   o.host.Extend(),
	}

	if cfg.Catalog.MetricsEnabled {
		e.Prometheus = prometheus.NewRegistry()
		e.Metrics = monitoring.NewMetrics(e.Prometheus)
	}

	e.Bus = callback.NewBus(logger.Logger, e.Metrics)
	e.Registry = library.NewRegistry(library.Config{
		Host:       e.host,
		Bus:        e.Bus,
		Logger:     logger.Logger,
		Metrics:    e.Metrics,
		ReadyEvent: cfg.Catalog.ReadyEvent,
	})
	e.Converter = converter.New(e.Registry, logger.Logger, e.Metrics)
	e.Console = console.New(e.Registry, e.Converter, logger.Logger, e.Metrics)

	e.declare()
	return e, nil
}

// Host returns the engine's own layer over the host passed to New. The
// registry scans it; declarations made on it stay private to the engine.
func (e *Engine) Host() *library.Host {
	return e.host
}

// Started reports whether Start ran without a later Shutdown
func (e *Engine) Started() bool {
	return e.started
}

// Start builds the catalog and the console. Calling it twice is a no-op.
func (e *Engine) Start() {
	if e.started {
		return
	}
	e.Registry.Initialize()
	e.Console.Build()
	e.started = true
	e.Logger.Info("Engine started", zap.Int("records", len(e.Registry.All())))
}

// Shutdown unregisters spawned instances and tears down the registry
func (e *Engine) Shutdown() {
	if !e.started {
		return
	}
	for _, instance := range e.instances {
		e.Registry.Unregister(instance)
	}
	e.instances = nil
	e.Registry.Shutdown()
	e.started = false
	e.Logger.Info("Engine shut down")
	_ = e.Logger.Sync()
}

// Spawn creates an instance of the named record and registers it with the bus
func (e *Engine) Spawn(name string) (any, error) {
	if !e.started {
		return nil, ErrNotStarted
	}
	rec, ok := e.Registry.LookupName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", library.ErrNotRegistered, name)
	}
	instance, err := e.Registry.Create(rec)
	if err != nil {
		return nil, err
	}
	e.Registry.Register(instance)
	e.instances = append(e.instances, instance)
	return instance, nil
}

// Run fires event and returns the non-nil handler results
func (e *Engine) Run(event string, args ...any) []any {
	return e.Bus.RunWith(event, args...)
}

// Commands is the owner type of the engine's console entries
type Commands struct{}

// declare adds the engine's console entries to its own host layer, bound to e
func (e *Engine) declare() {
	command := func() library.MemberOption { return library.FunctionWith(&console.Command{}) }

	e.host.Module(reflect.TypeOf(Commands{}).PkgPath(), library.PackagePath).Add(reflect.TypeOf(Commands{}),
		library.Tag{Name: "engine", Title: "Engine", NotSpawnable: true},
		library.Func("records", e.records, library.Help("List record names"), command()),
		library.Func("show", e.show, library.Help("Describe a record"), command()),
		library.Func("spawn", e.spawn, library.Help("Create and register an instance"), command()),
		library.Func("run", e.run, library.Help("Fire an event"), command()),
		library.Func("metrics", e.metrics, library.Help("Show counters"), command()),
		library.StaticAccessor("log.level", e.Logger.Level, e.Logger.SetLevel,
			library.Help("Minimum log level"), library.PropertyWith(&console.Var{})),
	)
}
