package library

import (
	"reflect"

	"github.com/google/uuid"

	"github.com/GriffinCanCode/catalog/internal/capability"
	"github.com/GriffinCanCode/catalog/internal/shared/id"
)

// Meta is the descriptive part of a record. Tag factories return it.
type Meta struct {
	Name      string
	Title     string
	Group     string
	Help      string
	Spawnable bool
	Abstract  bool
}

// Record describes one registered type
type Record struct {
	class      reflect.Type
	meta       Meta
	id         uuid.UUID
	caps       *capability.Set[*Record]
	properties *Table[*Property]
	functions  *Table[*Function]
}

func newRecord(class reflect.Type, meta Meta) *Record {
	if meta.Name == "" {
		meta.Name = class.String()
	}
	if meta.Title == "" {
		meta.Title = meta.Name
	}
	if meta.Group == "" {
		meta.Group = meta.Name
	}
	if meta.Help == "" {
		meta.Help = meta.Name
	}

	r := &Record{
		class:      class,
		meta:       meta,
		id:         id.Stable(meta.Group + "/" + meta.Name),
		properties: newTable[*Property](),
		functions:  newTable[*Function](),
	}
	r.caps = capability.NewSet(r)
	return r
}

// Class returns the normalized type the record describes
func (r *Record) Class() reflect.Type { return r.class }

func (r *Record) Name() string    { return r.meta.Name }
func (r *Record) Title() string   { return r.meta.Title }
func (r *Record) Group() string   { return r.meta.Group }
func (r *Record) Help() string    { return r.meta.Help }
func (r *Record) Spawnable() bool { return r.meta.Spawnable }
func (r *Record) Abstract() bool  { return r.meta.Abstract }
func (r *Record) Meta() Meta      { return r.meta }

// ID is a stable advisory identifier derived from group and name. It is not
// guaranteed unique.
func (r *Record) ID() uuid.UUID { return r.id }

// Capabilities returns the record's capability set
func (r *Record) Capabilities() *capability.Set[*Record] { return r.caps }

// Properties returns the record's property table
func (r *Record) Properties() *Table[*Property] { return r.properties }

// Functions returns the record's function table
func (r *Record) Functions() *Table[*Function] { return r.functions }

// Singleton reports whether the record carries the Singleton capability
func (r *Record) Singleton() bool {
	return capability.Has[*Singleton](r.caps)
}

func (r *Record) String() string {
	return r.meta.Name
}

// Registrable is implemented by types that carry their own record
type Registrable interface {
	ClassInfo() *Record
}

var registrableType = reflect.TypeOf((*Registrable)(nil)).Elem()

// Info is embedded to make a type Registrable. Registry.Create and
// Registry.Register bind the record.
type Info struct {
	record *Record
}

// ClassInfo returns the bound record, nil until bound
func (i *Info) ClassInfo() *Record {
	return i.record
}

func (i *Info) bindRecord(r *Record) {
	i.record = r
}

type recordBinder interface {
	bindRecord(r *Record)
}

// Global is the record added ahead of every scanned type
type Global struct{}
