package reactivity

import (
	"cmp"
	"iter"
	"slices"
)

type ArrayEntry[V any] struct {
	Index int
	Value V
}

// ReactiveArrayChanged is the net change of an array over one flush, keyed
// by index. Delete lists indexes that no longer exist.
type ReactiveArrayChanged[V any] struct {
	Upsert []ArrayEntry[V]
	Delete []int
}

// ReactiveArray is a slice that publishes its mutations. Indexes follow
// JavaScript array rules: negative positions count from the end.
type ReactiveArray[V comparable] struct {
	collection[V, *ReactiveArray[V]]
	items   []V
	changes *changeSet[int, V, ReactiveArrayChanged[V]]
}

func NewReactiveArray[V comparable](rt *Runtime, values ...V) *ReactiveArray[V] {
	a := &ReactiveArray[V]{items: slices.Clone(values)}
	a.collection = collection[V, *ReactiveArray[V]]{rt: rt, kind: "ReactiveArray", self: a}
	return a
}

func (a *ReactiveArray[V]) Readable() Readable[*ReactiveArray[V]] { return a.readable() }

func (a *ReactiveArray[V]) node() anyNode { return a.readable() }

func (a *ReactiveArray[V]) Len() int { return len(a.items) }

// At returns the item at i. Negative i counts from the end.
func (a *ReactiveArray[V]) At(i int) (V, bool) {
	if i < 0 {
		i += len(a.items)
	}
	if i < 0 || i >= len(a.items) {
		var zero V
		return zero, false
	}
	return a.items[i], true
}

// Values returns a copy of the items.
func (a *ReactiveArray[V]) Values() []V { return slices.Clone(a.items) }

func (a *ReactiveArray[V]) All() iter.Seq2[int, V] { return slices.All(a.items) }

func (a *ReactiveArray[V]) OnChanged(fn func(changed ReactiveArrayChanged[V])) RemoveListener {
	if a.changes == nil {
		a.changes = newChangeSet(func(keys []int, values []V, deleted []int) ReactiveArrayChanged[V] {
			upsert := make([]ArrayEntry[V], len(keys))
			for i, k := range keys {
				upsert[i] = ArrayEntry[V]{Index: k, Value: values[i]}
			}
			return ReactiveArrayChanged[V]{Upsert: upsert, Delete: deleted}
		})
		a.changes.compare = cmp.Compare[int]
		a.changes.drop = func(c *changeSet[int, V, ReactiveArrayChanged[V]]) {
			if a.changes == c {
				a.changes = nil
			}
		}
	}
	return a.changes.event.On(Listener[ReactiveArrayChanged[V]](fn))
}

func (a *ReactiveArray[V]) OnDisposeValue(fn func(value V)) RemoveListener {
	return a.onDisposeValue(fn)
}

// apply runs mutate and publishes whatever changed from index from onwards.
func (a *ReactiveArray[V]) apply(from int, mutate func()) bool {
	isFirst := a.begin()
	from = max(0, min(from, len(a.items)))
	oldLen := len(a.items)
	old := slices.Clone(a.items[from:])
	mutate()
	changed := a.diff(from, old, oldLen)
	if changed {
		var changes task
		if a.changes != nil {
			changes = a.changes
		}
		a.commit(isFirst, changes)
	} else {
		a.rt.endBatch(isFirst)
	}
	return changed
}

func (a *ReactiveArray[V]) diff(from int, old []V, oldLen int) bool {
	newLen := len(a.items)
	changed := false
	var balance map[V]int
	if a.disposal != nil {
		balance = map[V]int{}
	}
	for i := from; i < max(oldLen, newLen); i++ {
		var prev, next V
		hadPrev, hasNext := i < oldLen, i < newLen
		if hadPrev {
			prev = old[i-from]
		}
		if hasNext {
			next = a.items[i]
		}
		if hadPrev && hasNext && prev == next {
			continue
		}
		changed = true
		if balance != nil {
			if hadPrev {
				balance[prev]++
			}
			if hasNext {
				balance[next]--
			}
		}
		if a.changes != nil {
			if hasNext {
				a.changes.stageUpsert(i, next, !hadPrev)
			} else {
				a.changes.stageDelete(i)
			}
		}
	}
	for v, n := range balance {
		switch {
		case n > 0 && !slices.Contains(a.items, v):
			a.stageDispose(v)
		case n < 0:
			a.unstageDispose(v)
		}
	}
	return changed
}

// relative resolves a JavaScript style relative index against length n.
func relative(i, n int) int {
	if i < 0 {
		return max(0, n+i)
	}
	return min(i, n)
}

// Set stores v at i, growing the array with zero values if needed.
// A negative i counts from the end; one still negative is ignored.
func (a *ReactiveArray[V]) Set(i int, v V) *ReactiveArray[V] {
	if i < 0 {
		i += len(a.items)
	}
	if i < 0 {
		return a
	}
	a.apply(i, func() {
		if i >= len(a.items) {
			a.items = append(a.items, make([]V, i+1-len(a.items))...)
		}
		a.items[i] = v
	})
	return a
}

// SetLength truncates the array or grows it with zero values.
func (a *ReactiveArray[V]) SetLength(n int) {
	if n < 0 || n == len(a.items) {
		return
	}
	a.apply(min(n, len(a.items)), func() {
		if n < len(a.items) {
			a.items = a.items[:n:n]
			return
		}
		a.items = append(a.items, make([]V, n-len(a.items))...)
	})
}

// Fill writes v to [start, end). Bounds default to the whole array.
func (a *ReactiveArray[V]) Fill(v V, bounds ...int) *ReactiveArray[V] {
	start, end := a.bounds(bounds)
	a.apply(start, func() {
		for i := start; i < end; i++ {
			a.items[i] = v
		}
	})
	return a
}

func (a *ReactiveArray[V]) bounds(bounds []int) (start, end int) {
	n := len(a.items)
	start, end = 0, n
	if len(bounds) > 0 {
		start = relative(bounds[0], n)
	}
	if len(bounds) > 1 {
		end = relative(bounds[1], n)
	}
	return start, max(start, end)
}

// Push appends items and returns the new length.
func (a *ReactiveArray[V]) Push(items ...V) int {
	if len(items) > 0 {
		a.apply(len(a.items), func() {
			a.items = append(a.items, items...)
		})
	}
	return len(a.items)
}

func (a *ReactiveArray[V]) Pop() (v V, ok bool) {
	if len(a.items) == 0 {
		return v, false
	}
	last := len(a.items) - 1
	v = a.items[last]
	a.apply(last, func() {
		a.items = a.items[:last:last]
	})
	return v, true
}

func (a *ReactiveArray[V]) Shift() (v V, ok bool) {
	if len(a.items) == 0 {
		return v, false
	}
	v = a.items[0]
	a.apply(0, func() {
		a.items = slices.Delete(a.items, 0, 1)
	})
	return v, true
}

// Unshift prepends items and returns the new length.
func (a *ReactiveArray[V]) Unshift(items ...V) int {
	if len(items) > 0 {
		a.apply(0, func() {
			a.items = slices.Insert(a.items, 0, items...)
		})
	}
	return len(a.items)
}

// Splice removes deleteCount items at start, inserts items there and
// returns the removed ones.
func (a *ReactiveArray[V]) Splice(start, deleteCount int, items ...V) []V {
	start = relative(start, len(a.items))
	deleteCount = max(0, min(deleteCount, len(a.items)-start))
	removed := slices.Clone(a.items[start : start+deleteCount])
	if deleteCount > 0 || len(items) > 0 {
		a.apply(start, func() {
			a.items = slices.Replace(a.items, start, start+deleteCount, items...)
		})
	}
	return removed
}

func (a *ReactiveArray[V]) Reverse() *ReactiveArray[V] {
	if len(a.items) > 1 {
		a.apply(0, func() {
			slices.Reverse(a.items)
		})
	}
	return a
}

// Sort orders the items stably with compare.
func (a *ReactiveArray[V]) Sort(compare func(x, y V) int) *ReactiveArray[V] {
	if len(a.items) > 1 {
		a.apply(0, func() {
			slices.SortStableFunc(a.items, compare)
		})
	}
	return a
}

// CopyWithin copies [start, end) to target, like Array.prototype.copyWithin.
func (a *ReactiveArray[V]) CopyWithin(target, start int, end ...int) *ReactiveArray[V] {
	n := len(a.items)
	target = relative(target, n)
	start, stop := a.bounds(append([]int{start}, end...))
	count := min(stop-start, n-target)
	if count > 0 {
		a.apply(target, func() {
			copy(a.items[target:target+count], a.items[start:start+count])
		})
	}
	return a
}

// Replace swaps the whole content for items, publishing only the
// difference.
func (a *ReactiveArray[V]) Replace(items []V) *ReactiveArray[V] {
	a.apply(0, func() {
		a.items = slices.Clone(items)
	})
	return a
}

// Dispose reports every item for disposal and releases listeners.
func (a *ReactiveArray[V]) Dispose() {
	a.dispose(a.items)
	a.changes = nil
}
