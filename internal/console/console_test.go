package console_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/catalog/internal/console"
	"github.com/GriffinCanCode/catalog/internal/converter"
	"github.com/GriffinCanCode/catalog/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/catalog/internal/library"
	"github.com/GriffinCanCode/catalog/internal/testutil"
)

type Tuning struct {
	Speed float64 `lib:"speed"`
}

func (t *Tuning) Boost() {}

type fixture struct {
	console *console.Console
	metrics *monitoring.Metrics
	damage  *float64
	god     *bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	damage := 10.0
	god := false

	host := library.NewHost()
	converter.Install(host)
	host.Module("example.com/game", library.PackagePath).Add(reflect.TypeOf(Tuning{}),
		library.Tag{Name: "tuning", Title: "Tuning"},
		library.Static("damage", &damage, library.Help("Damage per hit"), library.PropertyWith(&console.Var{})),
		library.Static("god", &god, library.PropertyWith(&console.Var{Name: "cheats.god"})),
		library.StaticGetter("version", func() string { return "1.0" }, library.PropertyWith(&console.Var{})),
		library.Field("Speed", library.Named("speed"), library.PropertyWith(&console.Var{})),
		library.Func("add", func(a, b int) int { return a + b },
			library.Help("Adds two numbers"), library.FunctionWith(&console.Command{})),
		library.Func("sum", func(values ...float64) float64 {
			total := 0.0
			for _, v := range values {
				total += v
			}
			return total
		}, library.FunctionWith(&console.Command{})),
		library.Func("echo", func(words ...string) []string { return words },
			library.FunctionWith(&console.Command{})),
		library.Func("pair", func() (int, string) { return 1, "a" },
			library.FunctionWith(&console.Command{})),
		library.Func("fail", func() error { return errors.New("nope") },
			library.FunctionWith(&console.Command{Name: "broken"})),
		library.Method("Boost", library.FunctionWith(&console.Command{})),
	)

	logger, _ := testutil.ObservedLogger(t)
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	r := library.NewRegistry(library.Config{Host: host, Logger: logger, Metrics: metrics})
	r.Initialize()

	c := console.New(r, converter.New(r, logger, metrics), logger, metrics)
	c.Build()
	return &fixture{console: c, metrics: metrics, damage: &damage, god: &god}
}

func TestBuildCollectsStaticEntriesOnly(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"add", "broken", "echo", "pair", "sum"}, f.console.Commands())
	assert.Equal(t, []string{"cheats.god", "damage", "version"}, f.console.Vars())
}

func TestVariables(t *testing.T) {
	f := newFixture(t)

	out, err := f.console.Execute("damage")
	require.NoError(t, err)
	assert.Equal(t, "damage = 10", out)

	out, err = f.console.Execute("damage 2.5")
	require.NoError(t, err)
	assert.Equal(t, "damage = 2.5", out)
	assert.Equal(t, 2.5, *f.damage)

	out, err = f.console.Execute("cheats.god yes")
	require.NoError(t, err)
	assert.Equal(t, "cheats.god = true", out)
	assert.True(t, *f.god)

	_, err = f.console.Execute("damage lots")
	assert.ErrorIs(t, err, converter.ErrConversion)
	assert.Equal(t, 2.5, *f.damage)

	_, err = f.console.Execute("version 2.0")
	assert.ErrorIs(t, err, library.ErrNonEditable)

	_, err = f.console.Execute("damage 1 2")
	assert.ErrorIs(t, err, console.ErrUsage)
}

func TestCommands(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		line string
		want string
	}{
		{line: "add 2 3", want: "5"},
		{line: "add 2", want: "2"},
		{line: "sum 1 2.5 3", want: "6.5"},
		{line: "sum", want: "0"},
		{line: `echo "hello world" again`, want: "hello world\nagain"},
		{line: "pair", want: "1 a"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out, err := f.console.Execute(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCommandErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.console.Execute("add 1 2 3")
	assert.ErrorIs(t, err, console.ErrUsage)

	_, err = f.console.Execute("add one 2")
	assert.ErrorIs(t, err, converter.ErrConversion)

	_, err = f.console.Execute("broken")
	assert.EqualError(t, err, "nope")

	_, err = f.console.Execute("Boost")
	assert.ErrorIs(t, err, console.ErrUnknown)

	_, err = f.console.Execute(`echo "open`)
	assert.ErrorIs(t, err, console.ErrSyntax)

	out, err := f.console.Execute("   ")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestHelpAndFind(t *testing.T) {
	f := newFixture(t)

	out, err := f.console.Execute("help add")
	require.NoError(t, err)
	assert.Equal(t, "add(int, int) [Tuning]: Adds two numbers", out)

	out, err = f.console.Execute("help damage")
	require.NoError(t, err)
	assert.Equal(t, "damage float64 [Tuning]: Damage per hit", out)

	out, err = f.console.Execute("help")
	require.NoError(t, err)
	assert.Contains(t, out, "add - Adds two numbers")
	assert.Contains(t, out, "damage = 10 - Damage per hit")

	_, err = f.console.Execute("help missing")
	assert.ErrorIs(t, err, console.ErrUnknown)

	out, err = f.console.Execute("find D")
	require.NoError(t, err)
	assert.Equal(t, "add\ncheats.god\ndamage", out)

	_, err = f.console.Execute("find")
	assert.ErrorIs(t, err, console.ErrUsage)
}

func TestExecuteRecordsMetrics(t *testing.T) {
	f := newFixture(t)

	_, _ = f.console.Execute("add 1 1")
	_, _ = f.console.Execute("nothing")

	count := testutil.CounterValue(t, f.metrics.ConsoleCommands.WithLabelValues("add", monitoring.StatusOK))
	assert.Equal(t, 1.0, count)
	count = testutil.CounterValue(t, f.metrics.ConsoleCommands.WithLabelValues("nothing", monitoring.StatusError))
	assert.Equal(t, 1.0, count)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{line: "", want: nil},
		{line: "a b  c", want: []string{"a", "b", "c"}},
		{line: `say "two words"`, want: []string{"say", "two words"}},
		{line: `say 'single "quoted"'`, want: []string{"say", `single "quoted"`}},
		{line: `say "esc\"aped"`, want: []string{"say", `esc"aped`}},
		{line: `empty ""`, want: []string{"empty", ""}},
		{line: `say two\ words`, want: []string{"say", "two words"}},
		{line: `say 'literal\n'`, want: []string{"say", `literal\n`}},
		{line: `say $HOME`, want: []string{"say", "$HOME"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := console.Tokenize(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := console.Tokenize(`say "open`)
	assert.ErrorIs(t, err, console.ErrSyntax)
	_, err = console.Tokenize(`trailing\`)
	assert.ErrorIs(t, err, console.ErrSyntax)
	_, err = console.Tokenize("a; b")
	assert.ErrorIs(t, err, console.ErrOperator)
}
