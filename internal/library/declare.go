package library

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/GriffinCanCode/catalog/internal/capability"
	"github.com/GriffinCanCode/catalog/internal/shared/types"
)

// PackagePath is the import path every participating module must depend on
var PackagePath = reflect.TypeOf(Record{}).PkgPath()

// DefaultHost collects declarations made through Declare and Include
var DefaultHost = NewHost()

// Host is the set of modules, and their candidate types, visible to a registry
type Host struct {
	parent  *Host
	modules []*Module
	byPath  map[string]*Module
	byType  map[reflect.Type][]*Declaration
}

// NewHost creates an empty host
func NewHost() *Host {
	return &Host{
		byPath: make(map[string]*Module),
		byType: make(map[reflect.Type][]*Declaration),
	}
}

// Extend returns an empty host layered over h. It sees every module and
// declaration of h, while its own declarations stay invisible to h.
func (h *Host) Extend() *Host {
	child := NewHost()
	child.parent = h
	return child
}

// Module returns the module for path, creating it on first use. Deps are
// merged into the module's dependency list.
func (h *Host) Module(path string, deps ...string) *Module {
	m, ok := h.byPath[path]
	if !ok {
		m = &Module{Path: path, host: h}
		h.byPath[path] = m
		h.modules = append(h.modules, m)
	}
	for _, dep := range deps {
		if !slices.Contains(m.Deps, dep) {
			m.Deps = append(m.Deps, dep)
		}
	}
	return m
}

// Modules returns the host's modules in creation order, inherited ones first
func (h *Host) Modules() []*Module {
	if h.parent == nil {
		return slices.Clone(h.modules)
	}
	return slices.Concat(h.parent.Modules(), h.modules)
}

// declarations returns every declaration made for t across modules
func (h *Host) declarations(t reflect.Type) []*Declaration {
	t = types.Key(t)
	if h.parent == nil {
		return h.byType[t]
	}
	return slices.Concat(h.parent.declarations(t), h.byType[t])
}

// tagOf returns the Tag declared directly on t
func (h *Host) tagOf(t reflect.Type) *Tag {
	for _, d := range h.declarations(t) {
		if d.tag != nil {
			return d.tag
		}
	}
	return nil
}

// tagged reports whether t carries a Tag, directly or through embedding
func (h *Host) tagged(t reflect.Type) bool {
	return h.taggedDepth(types.Key(t), 0)
}

func (h *Host) taggedDepth(t reflect.Type, depth int) bool {
	if t == nil || depth > 16 {
		return false
	}
	if h.tagOf(t) != nil {
		return true
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && h.taggedDepth(types.Key(f.Type), depth+1) {
			return true
		}
	}
	return false
}

// Module is a group of candidate types, usually one Go package
type Module struct {
	Path  string
	Deps  []string
	host  *Host
	decls []*Declaration
}

// DependsOnLibrary reports whether the module can contain catalog types
func (m *Module) DependsOnLibrary() bool {
	return m.Path == PackagePath || slices.Contains(m.Deps, PackagePath)
}

// Add declares t in the module. Declaring the same type again in the same
// module merges the options into the existing declaration.
func (m *Module) Add(t reflect.Type, opts ...Option) *Declaration {
	t = types.Key(t)
	if t == nil {
		panic("library: cannot declare a nil type")
	}

	var d *Declaration
	for _, existing := range m.decls {
		if existing.Type == t {
			d = existing
			break
		}
	}
	if d == nil {
		d = &Declaration{Type: t, Module: m}
		m.decls = append(m.decls, d)
		m.host.byType[t] = append(m.host.byType[t], d)
	}

	for _, opt := range opts {
		opt.apply(d)
	}
	return d
}

// Declarations returns the module's declarations in order
func (m *Module) Declarations() []*Declaration {
	return slices.Clone(m.decls)
}

// Declaration describes one candidate type and its declarative tags
type Declaration struct {
	Type   reflect.Type
	Module *Module

	tag     *Tag
	caps    []capability.Capability[*Record]
	members []memberDecl
}

// Tagged reports whether the declaration carries a registration Tag
func (d *Declaration) Tagged() bool {
	return d.tag != nil
}

// Declare registers T with a Tag on DefaultHost. A Tag option overrides the
// empty default.
func Declare[T any](opts ...Option) *Declaration {
	d := Include[T](opts...)
	if d.tag == nil {
		d.tag = &Tag{}
	}
	return d
}

// Include makes T visible on DefaultHost without tagging it. It qualifies
// only through Registrable or an inherited Tag.
func Include[T any](opts ...Option) *Declaration {
	t := types.For[T]()
	return DefaultHost.Module(t.PkgPath(), PackagePath).Add(t, opts...)
}

// Option is a declarative tag applied to a declaration
type Option interface {
	apply(d *Declaration)
}

type optionFunc func(d *Declaration)

func (f optionFunc) apply(d *Declaration) { f(d) }

// Tag marks a type for registration and supplies its metadata. When Factory
// is set it supplies the metadata instead of the fields.
type Tag struct {
	Name         string
	Title        string
	Group        string
	Help         string
	NotSpawnable bool
	Abstract     bool
	Factory      func(t reflect.Type) Meta
}

func (t Tag) apply(d *Declaration) {
	tag := t
	d.tag = &tag
}

// meta builds the record metadata for type t
func (t *Tag) meta(class reflect.Type) Meta {
	if t == nil {
		return Meta{Name: class.String(), Spawnable: true}
	}
	if t.Factory != nil {
		return t.Factory(class)
	}

	name := t.Name
	if name == "" {
		name = class.String()
	}
	return Meta{
		Name:      name,
		Title:     t.Title,
		Group:     t.Group,
		Help:      t.Help,
		Spawnable: !t.NotSpawnable,
		Abstract:  t.Abstract,
	}
}

// With attaches record capabilities in order
func With(caps ...capability.Capability[*Record]) Option {
	return optionFunc(func(d *Declaration) {
		d.caps = append(d.caps, caps...)
	})
}

// ============================================================================
// Member Declarations
// ============================================================================

type memberKind int

const (
	kindField memberKind = iota
	kindMethod
	kindFunc
	kindAccessor
	kindStatic
	kindStaticGetter
	kindStaticAccessor
)

type memberDecl struct {
	kind   memberKind
	target string // field or method name
	fn     reflect.Value
	setter reflect.Value
	meta   memberMeta
}

type memberMeta struct {
	name     string
	title    string
	group    string
	help     string
	readOnly bool
	def      any
	hasDef   bool
	propCaps []capability.Capability[*Property]
	funcCaps []capability.Capability[*Function]
}

// MemberOption configures a declared member
type MemberOption func(m *memberMeta)

// Named overrides the member name
func Named(name string) MemberOption {
	return func(m *memberMeta) { m.name = name }
}

// Title sets the member title
func Title(title string) MemberOption {
	return func(m *memberMeta) { m.title = title }
}

// Group sets the member group
func Group(group string) MemberOption {
	return func(m *memberMeta) { m.group = group }
}

// Help sets the member help text
func Help(help string) MemberOption {
	return func(m *memberMeta) { m.help = help }
}

// ReadOnly drops the setter of a field property
func ReadOnly() MemberOption {
	return func(m *memberMeta) { m.readOnly = true }
}

// Default sets the default value. Static properties are initialized to it when built.
func Default(v any) MemberOption {
	return func(m *memberMeta) {
		m.def = v
		m.hasDef = true
	}
}

// PropertyWith attaches property capabilities
func PropertyWith(caps ...capability.Capability[*Property]) MemberOption {
	return func(m *memberMeta) { m.propCaps = append(m.propCaps, caps...) }
}

// FunctionWith attaches function capabilities
func FunctionWith(caps ...capability.Capability[*Function]) MemberOption {
	return func(m *memberMeta) { m.funcCaps = append(m.funcCaps, caps...) }
}

// On binds the function to an event on the registry's bus
func On(event string) MemberOption {
	return FunctionWith(&Callback{Event: event})
}

func memberOption(kind memberKind, target string, fn, setter reflect.Value, opts []MemberOption) Option {
	meta := memberMeta{name: target}
	for _, opt := range opts {
		opt(&meta)
	}

	isFunction := kind == kindMethod || kind == kindFunc
	if isFunction && len(meta.propCaps) > 0 {
		panic(fmt.Sprintf("library: function %q declared with property capabilities", target))
	}
	if !isFunction && len(meta.funcCaps) > 0 {
		panic(fmt.Sprintf("library: property %q declared with function capabilities", target))
	}

	decl := memberDecl{kind: kind, target: target, fn: fn, setter: setter, meta: meta}
	return optionFunc(func(d *Declaration) {
		d.members = append(d.members, decl)
	})
}

// Field exposes the struct field named field as a property, with or without a `lib` tag
func Field(field string, opts ...MemberOption) Option {
	return memberOption(kindField, field, reflect.Value{}, reflect.Value{}, opts)
}

// Method exposes the method named method as an instance function
func Method(method string, opts ...MemberOption) Option {
	return memberOption(kindMethod, method, reflect.Value{}, reflect.Value{}, opts)
}

// Func exposes fn as a static function
func Func(name string, fn any, opts ...MemberOption) Option {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		panic(fmt.Sprintf("library: Func %q requires a non-nil function, got %T", name, fn))
	}
	return memberOption(kindFunc, name, v, reflect.Value{}, opts)
}

// Accessor exposes an instance property through a getter func(*T) V and an
// optional setter func(*T, V). Without a setter the property is not editable.
func Accessor(name string, get, set any, opts ...MemberOption) Option {
	g := reflect.ValueOf(get)
	if g.Kind() != reflect.Func || g.IsNil() || g.Type().NumIn() != 1 || g.Type().NumOut() != 1 {
		panic(fmt.Sprintf("library: Accessor %q getter must be func(*T) V, got %T", name, get))
	}

	var s reflect.Value
	if set != nil {
		s = reflect.ValueOf(set)
		if s.Kind() != reflect.Func || s.Type().NumIn() != 2 || s.Type().In(1) != g.Type().Out(0) {
			panic(fmt.Sprintf("library: Accessor %q setter must be func(*T, V), got %T", name, set))
		}
	}
	return memberOption(kindAccessor, name, g, s, opts)
}

// Static exposes the variable ptr points to as an editable static property
func Static(name string, ptr any, opts ...MemberOption) Option {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		panic(fmt.Sprintf("library: Static %q requires a non-nil pointer, got %T", name, ptr))
	}
	return memberOption(kindStatic, name, v, reflect.Value{}, opts)
}

// StaticGetter exposes a read-only static property through get func() V
func StaticGetter(name string, get any, opts ...MemberOption) Option {
	g := reflect.ValueOf(get)
	if g.Kind() != reflect.Func || g.IsNil() || g.Type().NumIn() != 0 || g.Type().NumOut() != 1 {
		panic(fmt.Sprintf("library: StaticGetter %q requires func() V, got %T", name, get))
	}
	return memberOption(kindStaticGetter, name, g, reflect.Value{}, opts)
}

// StaticAccessor exposes a static property through get func() V and set
// func(V). A setter returning an error may reject the value.
func StaticAccessor(name string, get, set any, opts ...MemberOption) Option {
	g := reflect.ValueOf(get)
	if g.Kind() != reflect.Func || g.IsNil() || g.Type().NumIn() != 0 || g.Type().NumOut() != 1 {
		panic(fmt.Sprintf("library: StaticAccessor %q getter must be func() V, got %T", name, get))
	}
	s := reflect.ValueOf(set)
	if s.Kind() != reflect.Func || s.IsNil() || s.Type().NumIn() != 1 || s.Type().In(0) != g.Type().Out(0) ||
		s.Type().NumOut() > 1 || (s.Type().NumOut() == 1 && s.Type().Out(0) != errorType) {
		panic(fmt.Sprintf("library: StaticAccessor %q setter must be func(V) or func(V) error, got %T", name, set))
	}
	return memberOption(kindStaticAccessor, name, g, s, opts)
}
