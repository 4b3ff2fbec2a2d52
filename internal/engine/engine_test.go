package engine_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/GriffinCanCode/catalog/internal/config"
	"github.com/GriffinCanCode/catalog/internal/converter"
	"github.com/GriffinCanCode/catalog/internal/engine"
	"github.com/GriffinCanCode/catalog/internal/library"
	"github.com/GriffinCanCode/catalog/internal/logging"
	"github.com/GriffinCanCode/catalog/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type Drone struct {
	Pings int
}

func (d *Drone) Ping() string {
	d.Pings++
	return "pong"
}

func newFleetHost() *library.Host {
	host := library.NewHost()
	converter.Install(host)
	host.Module("example.com/fleet", library.PackagePath).Add(reflect.TypeOf(Drone{}),
		library.Tag{Name: "drone"},
		library.Method("Ping", library.On("ping")),
	)
	return host
}

func newEngine(t *testing.T, cfg *config.Config) *engine.Engine {
	t.Helper()
	return newEngineOn(t, newFleetHost(), cfg)
}

func newEngineOn(t *testing.T, host *library.Host, cfg *config.Config) *engine.Engine {
	t.Helper()
	logger, _ := testutil.ObservedLogger(t)
	e, err := engine.New(cfg, engine.WithHost(host), engine.WithLogger(logging.Wrap(logger)))
	require.NoError(t, err)
	t.Cleanup(e.Shutdown)
	return e
}

func TestLifecycle(t *testing.T) {
	e := newEngine(t, nil)
	assert.False(t, e.Started())

	_, err := e.Spawn("drone")
	assert.ErrorIs(t, err, engine.ErrNotStarted)

	e.Start()
	e.Start()
	assert.True(t, e.Started())

	a, err := e.Spawn("drone")
	require.NoError(t, err)
	b, err := e.Spawn("drone")
	require.NoError(t, err)

	assert.Equal(t, []any{"pong", "pong"}, e.Run("ping"))
	assert.Equal(t, 1, a.(*Drone).Pings)
	assert.Equal(t, 1, b.(*Drone).Pings)

	_, err = e.Spawn("missing")
	assert.ErrorIs(t, err, library.ErrNotRegistered)

	e.Shutdown()
	assert.False(t, e.Started())
	assert.True(t, e.Bus.Disposed())
	assert.Empty(t, e.Run("ping"))
}

func TestConsoleEntries(t *testing.T) {
	e := newEngine(t, nil)
	e.Start()

	out, err := e.Console.Execute("records")
	require.NoError(t, err)
	names := strings.Split(out, "\n")
	assert.Equal(t, "global", names[0])
	assert.Contains(t, names, "drone")
	assert.Contains(t, names, "engine")

	out, err = e.Console.Execute("spawn drone")
	require.NoError(t, err)
	assert.Equal(t, "spawned drone (*engine_test.Drone)", out)

	out, err = e.Console.Execute("run ping")
	require.NoError(t, err)
	assert.Equal(t, "pong", out)

	out, err = e.Console.Execute("show drone")
	require.NoError(t, err)
	assert.Contains(t, out, "function Ping")

	_, err = e.Console.Execute("show nobody")
	assert.Error(t, err)

	out, err = e.Console.Execute("metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "constructions=1")
}

func TestEnginesShareHost(t *testing.T) {
	host := newFleetHost()
	modules := len(host.Modules())

	first := newEngineOn(t, host, nil)
	second := newEngineOn(t, host, nil)
	assert.Len(t, host.Modules(), modules)

	first.Start()

	out, err := first.Console.Execute("records")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(out, "\n"), "drone")

	out, err = first.Console.Execute("spawn drone")
	require.NoError(t, err)
	assert.Equal(t, "spawned drone (*engine_test.Drone)", out)
	assert.Len(t, first.Bus.Live(reflect.TypeOf(Drone{})), 1)
	assert.Empty(t, second.Bus.Live(reflect.TypeOf(Drone{})))

	rec, ok := first.Registry.LookupName("engine")
	require.True(t, ok)
	assert.Equal(t, 5, rec.Functions().Len())

	_, err = second.Spawn("drone")
	assert.ErrorIs(t, err, engine.ErrNotStarted)

	second.Start()
	out, err = second.Console.Execute("metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "constructions=0")
}

func TestLogLevelVariable(t *testing.T) {
	host := library.NewHost()
	converter.Install(host)
	logger, err := logging.New(logging.Config{Level: "info", OutputPaths: []string{t.TempDir() + "/engine.log"}})
	require.NoError(t, err)

	e, err := engine.New(nil, engine.WithHost(host), engine.WithLogger(logger))
	require.NoError(t, err)
	e.Start()
	defer e.Shutdown()

	out, err := e.Console.Execute("log.level")
	require.NoError(t, err)
	assert.Equal(t, "log.level = info", out)

	out, err = e.Console.Execute("log.level warn")
	require.NoError(t, err)
	assert.Equal(t, "log.level = warn", out)
	assert.Equal(t, "warn", logger.Level())

	_, err = e.Console.Execute("log.level loud")
	assert.Error(t, err)
	assert.Equal(t, "warn", logger.Level())
}

func TestConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.MetricsEnabled = false
	cfg.Catalog.ReadyEvent = "fleet.ready"

	e := newEngine(t, cfg)
	assert.Nil(t, e.Metrics)
	assert.Nil(t, e.Prometheus)
	e.Start()

	out, err := e.Console.Execute("metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "records=0")

	bad := config.Default()
	bad.Logging.Level = "loud"
	_, err = engine.New(bad, engine.WithHost(library.NewHost()))
	assert.Error(t, err)
}
