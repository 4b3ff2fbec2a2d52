package library

import (
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/catalog/internal/capability"
	"github.com/GriffinCanCode/catalog/internal/shared/types"
)

// builder turns declarations into records
type builder struct {
	host   *Host
	logger *zap.Logger
}

// build creates the record for class. Only a Tag declared on class itself
// supplies metadata; inherited tags qualify the type but are not applied.
func (b *builder) build(class reflect.Type) *Record {
	return b.buildWith(class, b.host.tagOf(class).meta(class))
}

// buildWith creates the record for class from explicit metadata
func (b *builder) buildWith(class reflect.Type, meta Meta) *Record {
	r := newRecord(class, meta)

	decls := b.host.declarations(class)
	for _, d := range decls {
		for _, c := range d.caps {
			r.caps.Add(cloneCapability(c))
		}
	}

	b.fields(r)
	for _, m := range b.inherited(class) {
		b.member(r, m)
	}
	for _, d := range decls {
		for _, m := range d.members {
			b.member(r, m)
		}
	}
	return r
}

// inherited collects instance member declarations of embedded types,
// outermost embedding last
func (b *builder) inherited(class reflect.Type) []memberDecl {
	var out []memberDecl
	seen := map[reflect.Type]bool{class: true}

	var walk func(t reflect.Type)
	walk = func(t reflect.Type) {
		if t.Kind() != reflect.Struct {
			return
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.Anonymous {
				continue
			}
			embedded := types.Key(f.Type)
			if seen[embedded] {
				continue
			}
			seen[embedded] = true
			walk(embedded)
			for _, d := range b.host.declarations(embedded) {
				for _, m := range d.members {
					if m.kind == kindField || m.kind == kindMethod || m.kind == kindAccessor {
						out = append(out, m)
					}
				}
			}
		}
	}
	walk(class)
	return out
}

// fields exposes struct fields carrying a `lib` tag
func (b *builder) fields(r *Record) {
	if r.class.Kind() != reflect.Struct {
		return
	}
	for _, f := range reflect.VisibleFields(r.class) {
		tag, ok := f.Tag.Lookup("lib")
		if !ok || tag == "-" {
			continue
		}
		if !f.IsExported() {
			b.logger.Warn("Skipping unexported field",
				zap.String("record", r.Name()),
				zap.String("field", f.Name))
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		meta := memberMeta{name: name}
		if meta.name == "" {
			meta.name = f.Name
		}
		meta.readOnly = opts == "readonly"

		get, set := fieldProperty(r.class, f, meta.readOnly)
		b.addProperty(r, meta, f.Type, false, get, set)
	}
}

// member adds one declared member to r
func (b *builder) member(r *Record, m memberDecl) {
	switch m.kind {
	case kindField:
		var f reflect.StructField
		ok := r.class.Kind() == reflect.Struct
		if ok {
			f, ok = r.class.FieldByName(m.target)
		}
		if !ok || !f.IsExported() {
			b.logger.Warn("Declared field not found",
				zap.String("record", r.Name()),
				zap.String("field", m.target))
			return
		}
		get, set := fieldProperty(r.class, f, m.meta.readOnly)
		b.addProperty(r, m.meta, f.Type, false, get, set)

	case kindAccessor:
		get, set := accessorProperty(m.fn, m.setter)
		if m.meta.readOnly {
			set = nil
		}
		b.addProperty(r, m.meta, m.fn.Type().Out(0), false, get, set)

	case kindStatic:
		ptr := m.fn
		if m.meta.hasDef {
			if v, err := coerce(m.meta.def, ptr.Elem().Type()); err != nil {
				b.logger.Warn("Ignoring static default",
					zap.String("record", r.Name()),
					zap.String("property", m.meta.name),
					zap.Error(err))
			} else {
				ptr.Elem().Set(v)
			}
		}
		get, set := staticProperty(ptr)
		if m.meta.readOnly {
			set = nil
		}
		b.addProperty(r, m.meta, ptr.Elem().Type(), true, get, set)

	case kindStaticGetter:
		b.addProperty(r, m.meta, m.fn.Type().Out(0), true, staticGetterProperty(m.fn), nil)

	case kindStaticAccessor:
		get, set := staticAccessorProperty(m.fn, m.setter)
		b.addProperty(r, m.meta, m.fn.Type().Out(0), true, get, set)

	case kindMethod:
		b.method(r, m)

	case kindFunc:
		sig := m.fn.Type()
		params := make([]reflect.Type, sig.NumIn())
		for i := range params {
			params[i] = sig.In(i)
		}
		b.addFunction(r, m.meta, &Function{
			static:   true,
			fn:       m.fn,
			params:   params,
			variadic: sig.IsVariadic(),
		})
	}
}

// method resolves an exposed method on the record's class
func (b *builder) method(r *Record, m memberDecl) {
	recv := r.class
	offset := 0
	if recv.Kind() != reflect.Interface {
		recv = reflect.PointerTo(r.class)
		offset = 1
	}

	method, ok := recv.MethodByName(m.target)
	if !ok {
		b.logger.Warn("Declared method not found",
			zap.String("record", r.Name()),
			zap.String("method", m.target))
		return
	}

	sig := method.Type
	params := make([]reflect.Type, 0, sig.NumIn()-offset)
	for i := offset; i < sig.NumIn(); i++ {
		params = append(params, sig.In(i))
	}
	b.addFunction(r, m.meta, &Function{
		method:   m.target,
		recv:     recv,
		params:   params,
		variadic: sig.IsVariadic(),
	})
}

func (b *builder) addProperty(r *Record, meta memberMeta, typ reflect.Type, static bool, get getterFunc, set setterFunc) {
	p := &Property{
		owner:  r,
		name:   meta.name,
		typ:    typ,
		static: static,
		def:    meta.def,
		get:    get,
		set:    set,
		logger: b.logger,
	}
	p.title, p.group, p.help = describe(r, meta)
	p.caps = capability.NewSet(p)
	for _, c := range meta.propCaps {
		p.caps.Add(cloneCapability(c))
	}
	r.properties.put(p, r.Name(), b.logger)
}

func (b *builder) addFunction(r *Record, meta memberMeta, f *Function) {
	f.owner = r
	f.name = meta.name
	f.title, f.group, f.help = describe(r, meta)
	f.caps = capability.NewSet(f)
	for _, c := range meta.funcCaps {
		f.caps.Add(cloneCapability(c))
	}
	r.functions.put(f, r.Name(), b.logger)
}

// describe applies member defaults: title is the name, group is the owner's
// title, help is the title
func describe(r *Record, meta memberMeta) (title, group, help string) {
	title, group, help = meta.title, meta.group, meta.help
	if title == "" {
		title = meta.name
	}
	if group == "" {
		group = r.Title()
	}
	if help == "" {
		help = title
	}
	return title, group, help
}
