package capability

import "github.com/GriffinCanCode/catalog/internal/shared/types"

// Capability is attached to an owner of type O
type Capability[O any] interface {
	CanAttach(owner O) bool
	OnAttached(owner O)
	OnDetached(owner O)
}

// Base is embeddable and accepts every owner without side effects
type Base[O any] struct{}

func (Base[O]) CanAttach(O) bool { return true }
func (Base[O]) OnAttached(O)     {}
func (Base[O]) OnDetached(O)     {}

// Set is an ordered list of capabilities exclusively owned by one owner.
// Duplicates are permitted. Queries are linear scans; sets are expected to be small.
type Set[O any] struct {
	owner O
	items []Capability[O]
}

// NewSet creates an empty set bound to owner
func NewSet[O any](owner O) *Set[O] {
	return &Set[O]{owner: owner}
}

// Owner returns the owner the set is bound to
func (s *Set[O]) Owner() O {
	return s.owner
}

// Add attaches c if it accepts the owner. It reports whether c was attached.
func (s *Set[O]) Add(c Capability[O]) bool {
	if c == nil || !c.CanAttach(s.owner) {
		return false
	}

	s.items = append(s.items, c)
	c.OnAttached(s.owner)
	return true
}

// Remove detaches the first occurrence of c. OnDetached runs before the
// entry is removed. Removing an absent capability does nothing.
func (s *Set[O]) Remove(c Capability[O]) bool {
	index := s.indexOf(c)
	if index < 0 {
		return false
	}

	c.OnDetached(s.owner)

	// OnDetached may have mutated the list; look the entry up again
	if index >= len(s.items) || !types.Same(s.items[index], c) {
		index = s.indexOf(c)
		if index < 0 {
			return true
		}
	}
	s.items = append(s.items[:index:index], s.items[index+1:]...)
	return true
}

// Clear detaches every capability in list order, then empties the set
func (s *Set[O]) Clear() {
	snapshot := s.All()
	for _, c := range snapshot {
		c.OnDetached(s.owner)
	}
	s.items = nil
}

// Contains reports whether c is attached
func (s *Set[O]) Contains(c Capability[O]) bool {
	return s.indexOf(c) >= 0
}

// Len returns the number of attached capabilities
func (s *Set[O]) Len() int {
	return len(s.items)
}

// At returns the capability at index i
func (s *Set[O]) At(i int) Capability[O] {
	return s.items[i]
}

// All returns a copy of the attached capabilities in attachment order
func (s *Set[O]) All() []Capability[O] {
	out := make([]Capability[O], len(s.items))
	copy(out, s.items)
	return out
}

func (s *Set[O]) indexOf(c Capability[O]) int {
	for i, item := range s.items {
		if types.Same(item, c) {
			return i
		}
	}
	return -1
}

// Get returns the first capability of type C, or the zero value
func Get[C any, O any](s *Set[O]) C {
	c, _ := TryGet[C](s)
	return c
}

// TryGet returns the first capability of type C
func TryGet[C any, O any](s *Set[O]) (C, bool) {
	for _, item := range s.items {
		if c, ok := item.(C); ok {
			return c, true
		}
	}
	var zero C
	return zero, false
}

// GetAll returns every capability of type C in attachment order
func GetAll[C any, O any](s *Set[O]) []C {
	var out []C
	for _, item := range s.items {
		if c, ok := item.(C); ok {
			out = append(out, c)
		}
	}
	return out
}

// Has reports whether any capability of type C is attached
func Has[C any, O any](s *Set[O]) bool {
	_, ok := TryGet[C](s)
	return ok
}
