package reactivity_test

import (
	"fmt"
	"testing"

	"github.com/embrajs/reactivity"
	"github.com/stretchr/testify/assert"
)

func TestTopologyDropAbaUpdates(t *testing.T) {
	rt, _ := newRuntime(t)

	//     A
	//   / |
	//  B  |
	//   \ |
	//     C
	//     |
	//     D
	a := reactivity.NewWritable(rt, 2)
	b := reactivity.Derive(rt, a, func(v int) int { return v - 1 })
	c := reactivity.Combine2(rt, a, b, func(a, b int) int { return a + b })
	callCount := 0
	d := reactivity.Derive(rt, c, func(v int) string {
		callCount++
		return fmt.Sprintf("d: %d", v)
	})

	assert.Equal(t, "d: 3", d.Get())
	assert.Equal(t, 1, callCount)

	a.Set(4)
	d.Get()
	assert.Equal(t, 2, callCount)
}

func TestTopologyDiamond(t *testing.T) {
	rt, _ := newRuntime(t)

	//     A
	//   /   \
	//  B     C
	//   \   /
	//     D
	a := reactivity.NewWritable(rt, "a")
	b := reactivity.Derive[string, string](rt, a, nil)
	c := reactivity.Derive[string, string](rt, a, nil)
	callCount := 0
	d := reactivity.Combine2(rt, b, c, func(b, c string) string {
		callCount++
		return b + " " + c
	})

	assert.Equal(t, "a a", d.Get())
	assert.Equal(t, 1, callCount)

	a.Set("aa")
	assert.Equal(t, "aa aa", d.Get())
	assert.Equal(t, 2, callCount)
}

func TestTopologyDiamondTail(t *testing.T) {
	rt, _ := newRuntime(t)

	//     A
	//   /   \
	//  B     C
	//   \   /
	//     D
	//     |
	//     E
	a := reactivity.NewWritable(rt, "a")
	b := reactivity.Derive[string, string](rt, a, nil)
	c := reactivity.Derive[string, string](rt, a, nil)
	d := reactivity.Combine2(rt, b, c, func(b, c string) string { return b + " " + c })
	eCallCount := 0
	e := reactivity.Derive(rt, d, func(v string) string {
		eCallCount++
		return v
	})

	assert.Equal(t, "a a", e.Get())
	assert.Equal(t, 1, eCallCount)

	a.Set("aa")
	assert.Equal(t, "aa aa", e.Get())
	assert.Equal(t, 2, eCallCount)
}

func TestTopologyBailOutIfResultIsTheSame(t *testing.T) {
	rt, _ := newRuntime(t)

	// A->B->C
	a := reactivity.NewWritable(rt, "a")
	b := reactivity.Derive(rt, a, func(string) string { return "foo" })
	callCount := 0
	c := reactivity.Derive(rt, b, func(v string) string {
		callCount++
		return v
	})

	assert.Equal(t, "foo", c.Get())
	assert.Equal(t, 1, callCount)

	a.Set("aa")
	assert.Equal(t, "foo", c.Get())
	assert.Equal(t, 1, callCount)
}

func TestTopologyJaggedDiamondTails(t *testing.T) {
	rt, _ := newRuntime(t)

	//     A
	//   /   \
	//  B     C
	//  |     |
	//  |     D
	//   \   /
	//     E
	//   /   \
	//  F     G
	a := reactivity.NewWritable(rt, "a")
	b := reactivity.Derive[string, string](rt, a, nil)
	c := reactivity.Derive[string, string](rt, a, nil)
	d := reactivity.Derive[string, string](rt, c, nil)

	var order []string
	e := reactivity.Combine2(rt, b, d, func(b, d string) string {
		order = append(order, "e")
		return b + " " + d
	})
	f := reactivity.Derive(rt, e, func(v string) string {
		order = append(order, "f")
		return v
	})
	g := reactivity.Derive(rt, e, func(v string) string {
		order = append(order, "g")
		return v
	})

	assert.Equal(t, "a a", f.Get())
	assert.Equal(t, "a a", g.Get())
	assert.Equal(t, []string{"e", "f", "g"}, order)

	order = nil
	a.Set("b")
	assert.Equal(t, "b b", f.Get())
	assert.Equal(t, "b b", g.Get())
	assert.Equal(t, []string{"e", "f", "g"}, order)
}

// should run a watcher once per change of a diamond
func TestTopologyDiamondWatch(t *testing.T) {
	rt, _ := newRuntime(t)
	a := reactivity.NewWritable(rt, 1)
	b := reactivity.Derive(rt, a, func(v int) int { return v * 2 })
	c := reactivity.Derive(rt, a, func(v int) int { return v * 3 })
	d := reactivity.Combine2(rt, b, c, func(b, c int) int { return b + c })

	rec := &recorder[int]{}
	reactivity.Watch(rt, func(get reactivity.Get, _ reactivity.Disposer) func() {
		rec.record(reactivity.Read(get, d))
		return nil
	})

	a.Set(2)
	assert.Equal(t, []int{5, 10}, rec.calls)
}
