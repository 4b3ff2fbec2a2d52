// Package testutil provides testing utilities and helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockCapability is a testify mock implementing capability.Capability[O].
type MockCapability[O any] struct {
	mock.Mock
}

// CanAttach mocks the CanAttach method.
func (m *MockCapability[O]) CanAttach(owner O) bool {
	args := m.Called(owner)
	return args.Bool(0)
}

// OnAttached mocks the OnAttached method.
func (m *MockCapability[O]) OnAttached(owner O) {
	m.Called(owner)
}

// OnDetached mocks the OnDetached method.
func (m *MockCapability[O]) OnDetached(owner O) {
	m.Called(owner)
}

// NewMockCapability creates a mock capability that accepts (or refuses) every owner.
// Attach and detach hooks are expected but optional.
func NewMockCapability[O any](t *testing.T, accept bool) *MockCapability[O] {
	t.Helper()
	m := new(MockCapability[O])

	m.On("CanAttach", mock.Anything).Return(accept).Maybe()
	m.On("OnAttached", mock.Anything).Return().Maybe()
	m.On("OnDetached", mock.Anything).Return().Maybe()

	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ObservedLogger returns a zap logger whose entries are captured for assertions.
func ObservedLogger(t *testing.T) (*zap.Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// CounterValue returns the current value of a single-metric collector.
func CounterValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	return promtest.ToFloat64(c)
}
