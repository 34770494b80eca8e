package reactivity_test

import (
	"math"
	"testing"

	"github.com/embrajs/reactivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should not notify nor bump the version for an equal value
func TestWritableEqualityGating(t *testing.T) {
	rt, _ := newRuntime(t)
	w := reactivity.NewWritable(rt, 1)
	rec := &recorder[int]{}
	w.Reaction(rec.record)
	v0 := w.Version()

	w.Set(1)
	assert.Equal(t, 0, rec.count())
	assert.Equal(t, v0, w.Version())

	w.Set(2)
	assert.Equal(t, []int{2}, rec.calls)
	assert.NotEqual(t, v0, w.Version())
}

// should notify on every write with NotEqual
func TestWritableNotEqual(t *testing.T) {
	rt, _ := newRuntime(t)
	w := reactivity.NewWritable(rt, 1, reactivity.Config[int]{Equal: reactivity.NotEqual[int]})
	rec := &recorder[int]{}
	w.Reaction(rec.record)

	w.Set(1)
	w.Set(1)
	assert.Equal(t, []int{1, 1}, rec.calls)
}

// should use a custom equality function
func TestWritableSliceShallowEqual(t *testing.T) {
	rt, _ := newRuntime(t)
	w := reactivity.NewWritable(rt, []int{1, 2}, reactivity.Config[[]int]{Equal: reactivity.SliceShallowEqual[int]})
	rec := &recorder[[]int]{}
	w.Reaction(rec.record)

	w.Set([]int{1, 2})
	assert.Equal(t, 0, rec.count())
	w.Set([]int{1, 2, 3})
	assert.Equal(t, [][]int{{1, 2, 3}}, rec.calls)
}

// should compare slices by identity by default
func TestStrictEqual(t *testing.T) {
	s := []int{1, 2}
	assert.True(t, reactivity.StrictEqual(s, s))
	assert.False(t, reactivity.StrictEqual(s, []int{1, 2}))
	assert.True(t, reactivity.StrictEqual(1, 1))
	assert.True(t, reactivity.StrictEqual[any]("a", "a"))

	m := map[string]int{}
	assert.True(t, reactivity.StrictEqual(m, m))
	assert.False(t, reactivity.StrictEqual(m, map[string]int{}))
}

// should call Subscribe right away and Reaction only on change
func TestSubscribeAndReaction(t *testing.T) {
	rt, _ := newRuntime(t)
	w := reactivity.NewWritable(rt, "a")
	sub, react := &recorder[string]{}, &recorder[string]{}

	w.Subscribe(sub.record)
	w.Reaction(react.record)
	assert.Equal(t, []string{"a"}, sub.calls)
	assert.Empty(t, react.calls)

	w.Set("b")
	assert.Equal(t, []string{"a", "b"}, sub.calls)
	assert.Equal(t, []string{"b"}, react.calls)
}

// should stop one subscriber through its disposer
func TestReactionDisposer(t *testing.T) {
	rt, _ := newRuntime(t)
	w := reactivity.NewWritable(rt, 0)
	kept, dropped := &recorder[int]{}, &recorder[int]{}
	w.Reaction(kept.record)
	off := w.Reaction(dropped.record)

	w.Set(1)
	off()
	off()
	w.Set(2)

	assert.Equal(t, []int{1, 2}, kept.calls)
	assert.Equal(t, []int{1}, dropped.calls)
}

// should unsubscribe everything
func TestUnsubscribeAll(t *testing.T) {
	rt, _ := newRuntime(t)
	a := reactivity.NewWritable(rt, 0)
	b := reactivity.NewWritable(rt, 0)
	rec := &recorder[int]{}
	a.Reaction(rec.record)
	b.Reaction(rec.record)

	reactivity.UnsubscribeAll(a, b)
	a.Set(1)
	b.Set(1)
	assert.Equal(t, 0, rec.count())
}

// should warn when setting a readable that has no setter
func TestReadableWithoutSetter(t *testing.T) {
	rt, logs := newRuntime(t)
	r, set := reactivity.NewReadable(rt, 1)

	w := reactivity.ToWritable(r, nil)
	w.Set(2)
	assert.Equal(t, 1, r.Get())
	assert.Equal(t, 1, logs.FilterMessage("setting a readable without setter").Len())

	set(3)
	assert.Equal(t, 3, r.Get())
}

// should route Set through the attached setter
func TestToWritable(t *testing.T) {
	rt, _ := newRuntime(t)
	r, set := reactivity.NewReadable(rt, 1)
	var seen []int
	w := reactivity.ToWritable(r, func(v int) {
		seen = append(seen, v)
		set(v * 10)
	})

	w.Set(2)
	assert.Equal(t, []int{2}, seen)
	assert.Equal(t, 20, w.Get())

	w.Update(func(v int) int { return v + 1 })
	assert.Equal(t, 210, r.Get())
}

// should report replaced values and the final value on dispose
func TestWritableOnDisposeValue(t *testing.T) {
	rt, _ := newRuntime(t)
	disposed := &recorder[string]{}
	w := reactivity.NewWritable(rt, "a", reactivity.Config[string]{OnDisposeValue: disposed.record})

	w.Set("b")
	w.Set("b")
	assert.Equal(t, []string{"a"}, disposed.calls)

	w.Dispose()
	w.Dispose()
	assert.Equal(t, []string{"a", "b"}, disposed.calls)
	assert.True(t, w.Disposed())
}

// should keep working but warn after dispose
func TestWritableAfterDispose(t *testing.T) {
	rt, logs := newRuntime(t)
	w := reactivity.NewWritable(rt, 1, reactivity.Config[int]{Name: "count"})
	before := &recorder[int]{}
	w.Reaction(before.record)

	w.Dispose()
	after := &recorder[int]{}
	w.Reaction(after.record)
	w.Set(2)

	assert.Equal(t, 2, w.Get())
	assert.Empty(t, before.calls)
	assert.Equal(t, []int{2}, after.calls)
	entries := logs.FilterMessage("updating a disposed readable").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "count", entries[0].ContextMap()["name"])
}

// should describe the current value
func TestReadableString(t *testing.T) {
	rt, _ := newRuntime(t)
	w := reactivity.NewWritable(rt, 42, reactivity.Config[int]{Name: "answer"})

	assert.Equal(t, "42", w.String())
	assert.Equal(t, "answer", w.Name())
	assert.True(t, reactivity.IsReadable(w))
	assert.False(t, reactivity.IsReadable(42))
}

type tagged struct {
	Items []int
	Tags  map[string]bool
	Label string
}

// should treat identical values as equal even when == cannot compare them
func TestStrictEqualIdenticalValues(t *testing.T) {
	items, tags := []int{1}, map[string]bool{"a": true}
	value := tagged{Items: items, Tags: tags, Label: "x"}
	assert.True(t, reactivity.StrictEqual(value, tagged{Items: items, Tags: tags, Label: "x"}))
	assert.False(t, reactivity.StrictEqual(value, tagged{Items: []int{1}, Tags: tags, Label: "x"}))
	assert.False(t, reactivity.StrictEqual(value, tagged{Items: items, Tags: tags, Label: "y"}))

	assert.True(t, reactivity.StrictEqual(math.NaN(), math.NaN()))
	assert.True(t, reactivity.StrictEqual([2]float64{math.NaN(), 1}, [2]float64{math.NaN(), 1}))
	assert.False(t, reactivity.StrictEqual(math.NaN(), 1.0))

	fn := func() int { return 1 }
	assert.True(t, reactivity.StrictEqual(fn, fn))
	assert.True(t, reactivity.StrictEqual([1][]int{items}, [1][]int{items}))
	assert.True(t, reactivity.StrictEqual[any](value, value))
}

// should not notify when the same value is written back
func TestWritableSetSameValue(t *testing.T) {
	rt, _ := newRuntime(t)

	st := reactivity.NewWritable(rt, tagged{Items: []int{1, 2}, Label: "x"})
	nan := reactivity.NewWritable(rt, math.NaN())
	fn := reactivity.NewWritable(rt, func() int { return 1 })

	calls := 0
	st.Reaction(func(tagged) { calls++ })
	nan.Reaction(func(float64) { calls++ })
	fn.Reaction(func(func() int) { calls++ })
	versions := []reactivity.Version{st.Version(), nan.Version(), fn.Version()}

	st.Set(st.Get())
	nan.Set(nan.Get())
	fn.Set(fn.Get())

	assert.Equal(t, 0, calls)
	assert.Equal(t, versions, []reactivity.Version{st.Version(), nan.Version(), fn.Version()})

	st.Set(tagged{Items: []int{1, 2}, Label: "x"})
	assert.Equal(t, 1, calls)
}
