/*
Package monitoring provides metrics collection for the type catalog.

# Overview

This package implements Prometheus-based metrics for the catalog runtime,
tracking catalog builds, instance construction, event broadcasts, string
conversion and console usage.

# Features

- Catalog size and build duration
- Construction outcomes per record (created, singleton hit, failures)
- Event fires and per-handler invocation status
- Conversion successes and failures per target type
- Console command status

# Usage

	// Create metrics collector on a dedicated registry
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	// Record custom metrics
	metrics.SetRecords(42)
	metrics.RecordConstruction("Foo", monitoring.OutcomeCreated)

A nil *Metrics is valid and records nothing, so components can run without
a collector in tests.
*/
package monitoring
