package engine

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/catalog/internal/export"
)

func (e *Engine) records() []string {
	all := e.Registry.All()
	names := make([]string, 0, len(all))
	for _, rec := range all {
		names = append(names, rec.Name())
	}
	return names
}

func (e *Engine) show(name string) (string, error) {
	rec, ok := e.Registry.LookupName(name)
	if !ok {
		return "", fmt.Errorf("no record named %q", name)
	}
	var buf bytes.Buffer
	if err := export.WriteRecord(&buf, export.Describe(rec)); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func (e *Engine) spawn(name string) (string, error) {
	instance, err := e.Spawn(name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("spawned %s (%T)", name, instance), nil
}

func (e *Engine) run(event string, args ...string) []string {
	values := make([]any, len(args))
	for i, arg := range args {
		values[i] = arg
	}
	results := e.Run(event, values...)
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = fmt.Sprint(r)
	}
	return out
}

func (e *Engine) metrics() string {
	s := e.Metrics.Snapshot()
	return fmt.Sprintf("records=%d constructions=%d events=%d handler_errors=%d conversion_failures=%d",
		s.Records, s.Constructions, s.EventsFired, s.HandlerErrors, s.ConversionFailures)
}
