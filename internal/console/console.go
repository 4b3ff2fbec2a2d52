package console

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/catalog/internal/capability"
	"github.com/GriffinCanCode/catalog/internal/converter"
	"github.com/GriffinCanCode/catalog/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/catalog/internal/library"
)

var (
	// ErrUnknown is returned for a name that is neither a command nor a variable
	ErrUnknown = errors.New("unknown command or variable")

	// ErrUsage is returned when arguments do not fit the entry
	ErrUsage = errors.New("invalid usage")
)

// Console dispatches lines to commands and variables found in the catalog
type Console struct {
	registry  *library.Registry
	converter *converter.Service
	logger    *zap.Logger
	metrics   *monitoring.Metrics

	commands map[string]*library.Function
	vars     map[string]*library.Property
}

// New creates a console. Call Build once the registry is initialized.
func New(registry *library.Registry, conv *converter.Service, logger *zap.Logger, metrics *monitoring.Metrics) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{
		registry:  registry,
		converter: conv,
		logger:    logger.Named("console"),
		metrics:   metrics,
		commands:  make(map[string]*library.Function),
		vars:      make(map[string]*library.Property),
	}
}

// Build collects commands and variables from the registry, replacing any
// previous collection
func (c *Console) Build() {
	clear(c.commands)
	clear(c.vars)

	for _, rec := range c.registry.All() {
		for _, fn := range rec.Functions().All() {
			if cmd, ok := capability.TryGet[*Command](fn.Capabilities()); ok {
				c.addCommand(entryName(cmd.Name, fn.Name()), fn)
			}
		}
		for _, p := range rec.Properties().All() {
			if v, ok := capability.TryGet[*Var](p.Capabilities()); ok {
				c.addVar(entryName(v.Name, p.Name()), p)
			}
		}
	}

	c.logger.Info("Console built",
		zap.Int("commands", len(c.commands)),
		zap.Int("vars", len(c.vars)))
}

func entryName(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}

func (c *Console) addCommand(name string, fn *library.Function) {
	if c.taken(name) {
		c.logger.Warn("Console name already in use", zap.String("name", name), zap.String("function", fn.String()))
		return
	}
	c.commands[name] = fn
}

func (c *Console) addVar(name string, p *library.Property) {
	if c.taken(name) {
		c.logger.Warn("Console name already in use", zap.String("name", name), zap.String("property", p.String()))
		return
	}
	c.vars[name] = p
}

func (c *Console) taken(name string) bool {
	_, cmd := c.commands[name]
	_, v := c.vars[name]
	return cmd || v || name == "help" || name == "find"
}

// Commands returns command names in sorted order
func (c *Console) Commands() []string {
	return sortedKeys(c.commands)
}

// Vars returns variable names in sorted order
func (c *Console) Vars() []string {
	return sortedKeys(c.vars)
}

// Execute runs one line and returns its output
func (c *Console) Execute(line string) (string, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", nil
	}

	name, args := tokens[0], tokens[1:]
	out, err := c.dispatch(name, args)

	status := monitoring.StatusOK
	if err != nil {
		status = monitoring.StatusError
		c.logger.Debug("Console command failed", zap.String("command", name), zap.Error(err))
	}
	c.metrics.RecordConsoleCommand(name, status)
	return out, err
}

func (c *Console) dispatch(name string, args []string) (string, error) {
	switch name {
	case "help":
		return c.help(args)
	case "find":
		if len(args) != 1 {
			return "", fmt.Errorf("%w: find <text>", ErrUsage)
		}
		return strings.Join(c.find(args[0]), "\n"), nil
	}

	if p, ok := c.vars[name]; ok {
		return c.variable(name, p, args)
	}
	if fn, ok := c.commands[name]; ok {
		return c.command(fn, args)
	}
	return "", fmt.Errorf("%w: %s", ErrUnknown, name)
}

func (c *Console) variable(name string, p *library.Property, args []string) (string, error) {
	switch len(args) {
	case 0:
	case 1:
		v, err := c.converter.Parse(args[0], p.Type())
		if err != nil {
			return "", fmt.Errorf("failed to set %s: %w", name, err)
		}
		if err := p.Set(nil, v); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: %s [value]", ErrUsage, name)
	}

	v, err := p.Get(nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s = %v", name, v), nil
}

func (c *Console) command(fn *library.Function, args []string) (string, error) {
	params := fn.Params()
	fixed := len(params)
	if fn.Variadic() {
		fixed--
	} else if len(args) > fixed {
		return "", fmt.Errorf("%w: %s takes %d arguments, got %d", ErrUsage, fn.Name(), fixed, len(args))
	}

	values := make([]any, len(args))
	for i, arg := range args {
		t := paramType(params, fixed, i)
		v, err := c.converter.Parse(arg, t)
		if err != nil {
			return "", fmt.Errorf("argument %d of %s: %w", i+1, fn.Name(), err)
		}
		values[i] = v
	}

	result, err := fn.Invoke(nil, values...)
	if err != nil {
		return "", err
	}
	return format(result), nil
}

func paramType(params []reflect.Type, fixed, i int) reflect.Type {
	if i < fixed {
		return params[i]
	}
	return params[len(params)-1].Elem()
}

func format(result any) string {
	switch v := result.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(v))
		for i, part := range v {
			parts[i] = fmt.Sprint(part)
		}
		return strings.Join(parts, " ")
	case []string:
		return strings.Join(v, "\n")
	}
	return fmt.Sprint(result)
}

func (c *Console) help(args []string) (string, error) {
	if len(args) == 0 {
		var lines []string
		for _, name := range c.Commands() {
			lines = append(lines, fmt.Sprintf("%s - %s", name, c.commands[name].Help()))
		}
		for _, name := range c.Vars() {
			lines = append(lines, fmt.Sprintf("%s = %v - %s", name, c.value(name), c.vars[name].Help()))
		}
		return strings.Join(lines, "\n"), nil
	}

	name := args[0]
	if fn, ok := c.commands[name]; ok {
		params := make([]string, 0, len(fn.Params()))
		for _, p := range fn.Params() {
			params = append(params, p.String())
		}
		return fmt.Sprintf("%s(%s) [%s]: %s", name, strings.Join(params, ", "), fn.Group(), fn.Help()), nil
	}
	if p, ok := c.vars[name]; ok {
		return fmt.Sprintf("%s %s [%s]: %s", name, p.Type(), p.Group(), p.Help()), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknown, name)
}

func (c *Console) value(name string) any {
	v, err := c.vars[name].Get(nil)
	if err != nil {
		return "?"
	}
	return v
}

// find returns entry names containing text, case-insensitively
func (c *Console) find(text string) []string {
	needle := strings.ToLower(text)
	var out []string
	for _, name := range slices.Concat(c.Commands(), c.Vars()) {
		if strings.Contains(strings.ToLower(name), needle) {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
