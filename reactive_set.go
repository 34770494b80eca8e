package reactivity

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// ReactiveSetChanged is the net change of a set over one flush.
type ReactiveSetChanged[V comparable] struct {
	Upsert []V
	Delete []V
}

// ReactiveSet is an unordered set that publishes its mutations.
type ReactiveSet[V comparable] struct {
	collection[V, *ReactiveSet[V]]
	values  mapset.Set[V]
	changes *changeSet[V, struct{}, ReactiveSetChanged[V]]
}

func NewReactiveSet[V comparable](rt *Runtime, values ...V) *ReactiveSet[V] {
	s := &ReactiveSet[V]{values: mapset.NewThreadUnsafeSet(values...)}
	s.collection = collection[V, *ReactiveSet[V]]{rt: rt, kind: "ReactiveSet", self: s}
	return s
}

func (s *ReactiveSet[V]) Readable() Readable[*ReactiveSet[V]] { return s.readable() }

func (s *ReactiveSet[V]) node() anyNode { return s.readable() }

func (s *ReactiveSet[V]) Len() int { return s.values.Cardinality() }

func (s *ReactiveSet[V]) Has(v V) bool { return s.values.Contains(v) }

// Values returns the members in no particular order.
func (s *ReactiveSet[V]) Values() []V { return s.values.ToSlice() }

// Each calls fn for every member until fn returns true.
func (s *ReactiveSet[V]) Each(fn func(v V) bool) { s.values.Each(fn) }

func (s *ReactiveSet[V]) OnChanged(fn func(changed ReactiveSetChanged[V])) RemoveListener {
	if s.changes == nil {
		s.changes = newChangeSet(func(upsert []V, _ []struct{}, deleted []V) ReactiveSetChanged[V] {
			return ReactiveSetChanged[V]{Upsert: upsert, Delete: deleted}
		})
		s.changes.drop = func(c *changeSet[V, struct{}, ReactiveSetChanged[V]]) {
			if s.changes == c {
				s.changes = nil
			}
		}
	}
	return s.changes.event.On(Listener[ReactiveSetChanged[V]](fn))
}

func (s *ReactiveSet[V]) OnDisposeValue(fn func(value V)) RemoveListener {
	return s.onDisposeValue(fn)
}

func (s *ReactiveSet[V]) add(v V) bool {
	if !s.values.Add(v) {
		return false
	}
	s.unstageDispose(v)
	if s.changes != nil {
		s.changes.stageUpsert(v, struct{}{}, true)
	}
	return true
}

func (s *ReactiveSet[V]) delete(v V) bool {
	if !s.values.Contains(v) {
		return false
	}
	s.values.Remove(v)
	s.stageDispose(v)
	if s.changes != nil {
		s.changes.stageDelete(v)
	}
	return true
}

func (s *ReactiveSet[V]) Add(v V) *ReactiveSet[V] {
	s.BatchAdd(v)
	return s
}

// BatchAdd adds every value and notifies once.
func (s *ReactiveSet[V]) BatchAdd(values ...V) {
	isFirst := s.begin()
	changed := false
	for _, v := range values {
		if s.add(v) {
			changed = true
		}
	}
	s.finish(isFirst, changed)
}

func (s *ReactiveSet[V]) Delete(v V) bool {
	return s.BatchDelete(v)
}

// BatchDelete removes every value and notifies once. It reports whether any
// value was present.
func (s *ReactiveSet[V]) BatchDelete(values ...V) bool {
	isFirst := s.begin()
	changed := false
	for _, v := range values {
		if s.delete(v) {
			changed = true
		}
	}
	s.finish(isFirst, changed)
	return changed
}

func (s *ReactiveSet[V]) Clear() {
	s.BatchDelete(s.values.ToSlice()...)
}

func (s *ReactiveSet[V]) finish(isFirst, changed bool) {
	if !changed {
		s.rt.endBatch(isFirst)
		return
	}
	var changes task
	if s.changes != nil {
		changes = s.changes
	}
	s.commit(isFirst, changes)
}

// Dispose reports every member for disposal and releases listeners.
func (s *ReactiveSet[V]) Dispose() {
	s.dispose(s.values.ToSlice())
	s.changes = nil
}
