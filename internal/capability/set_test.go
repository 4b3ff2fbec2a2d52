package capability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/catalog/internal/capability"
	"github.com/GriffinCanCode/catalog/internal/testutil"
)

type owner struct{ name string }

// recorder logs hook calls into a shared journal so ordering can be checked.
type recorder struct {
	capability.Base[*owner]
	id      string
	journal *[]string
	set     *capability.Set[*owner]
}

func (r *recorder) OnAttached(*owner) { *r.journal = append(*r.journal, "attach:"+r.id) }

func (r *recorder) OnDetached(*owner) {
	still := r.set != nil && r.set.Contains(r)
	state := "gone"
	if still {
		state = "present"
	}
	*r.journal = append(*r.journal, "detach:"+r.id+":"+state)
}

type marker struct {
	capability.Base[*owner]
	label string
}

func TestAddCallsOnAttached(t *testing.T) {
	o := &owner{name: "o"}
	set := capability.NewSet(o)
	c := testutil.NewMockCapability[*owner](t, true)

	assert.True(t, set.Add(c))
	assert.Equal(t, 1, set.Len())
	c.AssertCalled(t, "OnAttached", o)
}

func TestAddRejectedLeavesSetUnchanged(t *testing.T) {
	o := &owner{}
	set := capability.NewSet(o)
	c := testutil.NewMockCapability[*owner](t, false)

	assert.False(t, set.Add(c))
	assert.Equal(t, 0, set.Len())
	c.AssertNotCalled(t, "OnAttached", o)
}

func TestAddPermitsDuplicates(t *testing.T) {
	set := capability.NewSet(&owner{})
	m := &marker{label: "m"}

	set.Add(m)
	set.Add(m)

	assert.Equal(t, 2, set.Len())
}

func TestRemoveDetachesBeforeRemoval(t *testing.T) {
	var journal []string
	set := capability.NewSet(&owner{})
	r := &recorder{id: "a", journal: &journal, set: set}
	set.Add(r)

	assert.True(t, set.Remove(r))

	assert.Equal(t, []string{"attach:a", "detach:a:present"}, journal)
	assert.False(t, set.Contains(r))
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	o := &owner{}
	set := capability.NewSet(o)
	c := testutil.NewMockCapability[*owner](t, true)

	assert.False(t, set.Remove(c))
	c.AssertNotCalled(t, "OnDetached", o)
}

func TestRemoveCallsOnDetachedOnce(t *testing.T) {
	o := &owner{}
	set := capability.NewSet(o)
	c := testutil.NewMockCapability[*owner](t, true)
	set.Add(c)

	set.Remove(c)

	c.AssertNumberOfCalls(t, "OnDetached", 1)
}

func TestClearDetachesInOrder(t *testing.T) {
	var journal []string
	set := capability.NewSet(&owner{})
	a := &recorder{id: "a", journal: &journal, set: set}
	b := &recorder{id: "b", journal: &journal, set: set}
	set.Add(a)
	set.Add(b)
	journal = nil

	set.Clear()

	assert.Equal(t, []string{"detach:a:present", "detach:b:present"}, journal)
	assert.Equal(t, 0, set.Len())
}

func TestQueries(t *testing.T) {
	var journal []string
	set := capability.NewSet(&owner{})
	m1, m2 := &marker{label: "1"}, &marker{label: "2"}
	r := &recorder{id: "r", journal: &journal}
	set.Add(m1)
	set.Add(r)
	set.Add(m2)

	assert.Same(t, m1, capability.Get[*marker](set))
	assert.Equal(t, []*marker{m1, m2}, capability.GetAll[*marker](set))
	assert.True(t, capability.Has[*recorder](set))

	got, ok := capability.TryGet[*recorder](set)
	require.True(t, ok)
	assert.Same(t, r, got)

	type missing struct{ capability.Base[*owner] }
	_, ok = capability.TryGet[*missing](set)
	assert.False(t, ok)
	assert.Nil(t, capability.Get[*missing](set))
	assert.Empty(t, capability.GetAll[*missing](set))
}
