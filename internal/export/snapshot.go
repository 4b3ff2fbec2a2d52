package export

import (
	"reflect"

	"github.com/GriffinCanCode/catalog/internal/capability"
	"github.com/GriffinCanCode/catalog/internal/library"
)

// Catalog is the root of every rendered snapshot
type Catalog struct {
	Records []RecordInfo `json:"records" yaml:"records" toml:"records"`
}

// RecordInfo describes one record
type RecordInfo struct {
	Name         string       `json:"name" yaml:"name" toml:"name"`
	Title        string       `json:"title" yaml:"title" toml:"title"`
	Group        string       `json:"group" yaml:"group" toml:"group"`
	Help         string       `json:"help" yaml:"help" toml:"help"`
	Type         string       `json:"type" yaml:"type" toml:"type"`
	ID           string       `json:"id" yaml:"id" toml:"id"`
	Spawnable    bool         `json:"spawnable" yaml:"spawnable" toml:"spawnable"`
	Abstract     bool         `json:"abstract" yaml:"abstract" toml:"abstract"`
	Capabilities []string     `json:"capabilities,omitempty" yaml:"capabilities,omitempty" toml:"capabilities,omitempty"`
	Properties   []MemberInfo `json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
	Functions    []MemberInfo `json:"functions,omitempty" yaml:"functions,omitempty" toml:"functions,omitempty"`
}

// MemberInfo describes one property or function
type MemberInfo struct {
	Name         string   `json:"name" yaml:"name" toml:"name"`
	Title        string   `json:"title" yaml:"title" toml:"title"`
	Group        string   `json:"group" yaml:"group" toml:"group"`
	Help         string   `json:"help" yaml:"help" toml:"help"`
	Type         string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Params       []string `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	Static       bool     `json:"static" yaml:"static" toml:"static"`
	Editable     bool     `json:"editable,omitempty" yaml:"editable,omitempty" toml:"editable,omitempty"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty" toml:"capabilities,omitempty"`
}

// Snapshot describes records in the given order
func Snapshot(records []*library.Record) Catalog {
	out := Catalog{Records: make([]RecordInfo, 0, len(records))}
	for _, rec := range records {
		out.Records = append(out.Records, Describe(rec))
	}
	return out
}

// Describe builds the RecordInfo of rec
func Describe(rec *library.Record) RecordInfo {
	info := RecordInfo{
		Name:         rec.Name(),
		Title:        rec.Title(),
		Group:        rec.Group(),
		Help:         rec.Help(),
		Type:         rec.Class().String(),
		ID:           rec.ID().String(),
		Spawnable:    rec.Spawnable(),
		Abstract:     rec.Abstract(),
		Capabilities: capabilityNames(rec.Capabilities()),
	}

	for _, p := range rec.Properties().All() {
		info.Properties = append(info.Properties, MemberInfo{
			Name:         p.Name(),
			Title:        p.Title(),
			Group:        p.Group(),
			Help:         p.Help(),
			Type:         p.Type().String(),
			Static:       p.Static(),
			Editable:     p.Editable(),
			Capabilities: capabilityNames(p.Capabilities()),
		})
	}
	for _, f := range rec.Functions().All() {
		params := make([]string, 0, len(f.Params()))
		for _, t := range f.Params() {
			params = append(params, t.String())
		}
		info.Functions = append(info.Functions, MemberInfo{
			Name:         f.Name(),
			Title:        f.Title(),
			Group:        f.Group(),
			Help:         f.Help(),
			Params:       params,
			Static:       f.Static(),
			Capabilities: capabilityNames(f.Capabilities()),
		})
	}
	return info
}

// capabilityNames lists the type names of a set's capabilities in order
func capabilityNames[O any](set *capability.Set[O]) []string {
	var names []string
	for _, c := range set.All() {
		t := reflect.TypeOf(c)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		names = append(names, t.String())
	}
	return names
}
