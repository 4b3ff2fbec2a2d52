package library

import (
	"slices"

	"go.uber.org/zap"
)

// Member is implemented by Property and Function
type Member interface {
	Name() string
}

// Table is a name-keyed member table that remembers insertion order
type Table[M Member] struct {
	byName map[string]M
	order  []string
}

func newTable[M Member]() *Table[M] {
	return &Table[M]{byName: make(map[string]M)}
}

// put inserts m, replacing any member of the same name in place
func (t *Table[M]) put(m M, owner string, logger *zap.Logger) {
	name := m.Name()
	if _, exists := t.byName[name]; exists {
		logger.Warn("Member redeclared, replacing",
			zap.String("record", owner),
			zap.String("member", name))
	} else {
		t.order = append(t.order, name)
	}
	t.byName[name] = m
}

// Get returns the member with the given name
func (t *Table[M]) Get(name string) (M, bool) {
	m, ok := t.byName[name]
	return m, ok
}

// Has reports whether a member with the given name exists
func (t *Table[M]) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Len returns the number of members
func (t *Table[M]) Len() int {
	return len(t.order)
}

// Names returns member names in declaration order
func (t *Table[M]) Names() []string {
	return slices.Clone(t.order)
}

// All returns members in declaration order
func (t *Table[M]) All() []M {
	out := make([]M, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}
