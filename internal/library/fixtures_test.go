package library_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/catalog/internal/capability"
	"github.com/GriffinCanCode/catalog/internal/library"
	"github.com/GriffinCanCode/catalog/internal/testutil"
)

type Foo struct {
	Pings int
}

func (f *Foo) Ping() { f.Pings++ }

type Weapon struct {
	Ammo   int    `lib:"ammo"`
	Model  string `lib:"model,readonly"`
	Hidden bool   `lib:"-"`
	secret int    `lib:"secret"` //nolint:unused
}

func (w *Weapon) Fire(times int) int {
	w.Ammo -= times
	return w.Ammo
}

func (w *Weapon) Reload() error {
	if w.Ammo < 0 {
		return errors.New("jammed")
	}
	w.Ammo = 30
	return nil
}

func (w *Weapon) Jam() { panic("stuck") }

func (w *Weapon) Stats() (int, string) { return w.Ammo, w.Model }

type Rifle struct {
	Weapon
	Scope bool `lib:"scope"`
}

type Shape interface {
	Area() float64
}

type Square struct {
	Side float64
}

func (s Square) Area() float64 { return s.Side * s.Side }

type Entity struct {
	library.Info
	Name string
}

type Plain struct{}

type persist struct {
	capability.Base[*library.Property]
}

type Stranger struct{}

// world is a host with one participating module and one unrelated module
type world struct {
	host    *library.Host
	module  *library.Module
	foreign *library.Module
}

func newWorld() *world {
	h := library.NewHost()
	return &world{
		host:    h,
		module:  h.Module("example.com/game", library.PackagePath),
		foreign: h.Module("example.com/vendor"),
	}
}

func (w *world) declare(v any, opts ...library.Option) *library.Declaration {
	return w.module.Add(reflect.TypeOf(v), append([]library.Option{library.Tag{}}, opts...)...)
}

func (w *world) registry(t *testing.T) (*library.Registry, *observer.ObservedLogs) {
	t.Helper()
	logger, logs := testutil.ObservedLogger(t)
	r := library.NewRegistry(library.Config{Host: w.host, Logger: logger})
	r.Initialize()
	return r, logs
}

func lookup(t *testing.T, r *library.Registry, v any) *library.Record {
	t.Helper()
	rec, ok := r.LookupOf(v)
	require.True(t, ok, "no record for %T", v)
	return rec
}
