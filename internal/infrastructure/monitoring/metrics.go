package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Construction outcomes
const (
	OutcomeCreated       = "created"
	OutcomeSingletonHit  = "singleton_hit"
	OutcomeNotSpawnable  = "not_spawnable"
	OutcomeAbstract      = "abstract"
	OutcomeConstructFail = "constructor_failed"
)

// Call statuses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Catalog metrics
	Records            prometheus.Gauge
	InitializeDuration prometheus.Histogram

	// Construction metrics
	Constructions *prometheus.CounterVec

	// Event metrics
	EventsFired  *prometheus.CounterVec
	HandlerCalls *prometheus.CounterVec

	// Conversion metrics
	Conversions *prometheus.CounterVec

	// Console metrics
	ConsoleCommands *prometheus.CounterVec

	// Snapshot for tooling - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for tooling output
type MetricsSnapshot struct {
	Records            int64
	Constructions      int64
	EventsFired        int64
	HandlerErrors      int64
	ConversionFailures int64
}

// NewMetrics creates a new metrics collector registered on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Catalog metrics
		Records: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalog_records",
				Help: "Number of records in the type catalog",
			},
		),
		InitializeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "catalog_initialize_duration_seconds",
				Help:    "Catalog build duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
		),

		// Construction metrics
		Constructions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_constructions_total",
				Help: "Total number of construction requests",
			},
			[]string{"record", "outcome"},
		),

		// Event metrics
		EventsFired: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_events_fired_total",
				Help: "Total number of events fired",
			},
			[]string{"event"},
		),
		HandlerCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_handler_calls_total",
				Help: "Total number of event handler invocations",
			},
			[]string{"event", "status"},
		),

		// Conversion metrics
		Conversions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_conversions_total",
				Help: "Total number of string conversions",
			},
			[]string{"type", "status"},
		),

		// Console metrics
		ConsoleCommands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_console_commands_total",
				Help: "Total number of console commands executed",
			},
			[]string{"command", "status"},
		),
	}
}

// SetRecords sets the number of records in the catalog
func (m *Metrics) SetRecords(count int) {
	if m == nil {
		return
	}
	m.Records.Set(float64(count))
	m.mu.Lock()
	m.snapshot.Records = int64(count)
	m.mu.Unlock()
}

// ObserveInitialize records a catalog build duration
func (m *Metrics) ObserveInitialize(duration time.Duration) {
	if m == nil {
		return
	}
	m.InitializeDuration.Observe(duration.Seconds())
}

// RecordConstruction records a construction request and its outcome
func (m *Metrics) RecordConstruction(record, outcome string) {
	if m == nil {
		return
	}
	m.Constructions.WithLabelValues(record, outcome).Inc()
	if outcome == OutcomeCreated {
		m.mu.Lock()
		m.snapshot.Constructions++
		m.mu.Unlock()
	}
}

// RecordEvent records an event fire
func (m *Metrics) RecordEvent(event string) {
	if m == nil {
		return
	}
	m.EventsFired.WithLabelValues(event).Inc()
	m.mu.Lock()
	m.snapshot.EventsFired++
	m.mu.Unlock()
}

// RecordHandlerCall records one handler invocation
func (m *Metrics) RecordHandlerCall(event, status string) {
	if m == nil {
		return
	}
	m.HandlerCalls.WithLabelValues(event, status).Inc()
	if status == StatusError {
		m.mu.Lock()
		m.snapshot.HandlerErrors++
		m.mu.Unlock()
	}
}

// RecordConversion records a conversion attempt
func (m *Metrics) RecordConversion(typeName, status string) {
	if m == nil {
		return
	}
	m.Conversions.WithLabelValues(typeName, status).Inc()
	if status == StatusError {
		m.mu.Lock()
		m.snapshot.ConversionFailures++
		m.mu.Unlock()
	}
}

// RecordConsoleCommand records a console command execution
func (m *Metrics) RecordConsoleCommand(command, status string) {
	if m == nil {
		return
	}
	m.ConsoleCommands.WithLabelValues(command, status).Inc()
}

// Snapshot returns the current tracked values
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
