package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// should keep insertion order and key positions
func TestOrderedSet(t *testing.T) {
	o := newOrdered[string, int]()
	assert.True(t, o.set("a", 1))
	assert.True(t, o.set("b", 2))
	assert.False(t, o.set("a", 3))

	assert.Equal(t, []string{"a", "b"}, o.keys())
	assert.Equal(t, []int{3, 2}, o.values())
	assert.Equal(t, 2, o.Len())
}

// should pop the oldest entry first
func TestOrderedPopFront(t *testing.T) {
	o := newOrdered[int, struct{}]()
	o.set(1, struct{}{})
	o.set(2, struct{}{})

	k, _, ok := o.popFront()
	assert.True(t, ok)
	assert.Equal(t, 1, k)
	k, _, _ = o.popFront()
	assert.Equal(t, 2, k)
	_, _, ok = o.popFront()
	assert.False(t, ok)
}

// should skip removed entries and visit appended ones while iterating
func TestOrderedMutationDuringIteration(t *testing.T) {
	o := newOrdered[int, struct{}]()
	for i := range 3 {
		o.set(i, struct{}{})
	}

	var seen []int
	for k := range o.all() {
		seen = append(seen, k)
		if k == 0 {
			o.delete(1)
			o.set(3, struct{}{})
		}
	}
	assert.Equal(t, []int{0, 2, 3}, seen)
}

// should treat a nil map as empty
func TestOrderedNil(t *testing.T) {
	var o *ordered[string, int]
	assert.Equal(t, 0, o.Len())
	assert.False(t, o.has("a"))
	assert.False(t, o.delete("a"))
	assert.Nil(t, o.keys())
	o.clear()
	for range o.all() {
		t.Fatal("unexpected entry")
	}
}
