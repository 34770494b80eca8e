package reactivity

import "iter"

type MapEntry[K comparable, V any] struct {
	Key   K
	Value V
}

// ReactiveMapChanged is the net change of a map over one flush.
type ReactiveMapChanged[K comparable, V any] struct {
	Upsert []MapEntry[K, V]
	Delete []K
}

// ReactiveMap is an insertion-ordered map that publishes its mutations.
type ReactiveMap[K comparable, V comparable] struct {
	collection[V, *ReactiveMap[K, V]]
	entries *ordered[K, V]
	changes *changeSet[K, V, ReactiveMapChanged[K, V]]
}

func NewReactiveMap[K comparable, V comparable](rt *Runtime, entries ...MapEntry[K, V]) *ReactiveMap[K, V] {
	m := &ReactiveMap[K, V]{entries: newOrdered[K, V]()}
	m.collection = collection[V, *ReactiveMap[K, V]]{rt: rt, kind: "ReactiveMap", self: m}
	for _, e := range entries {
		m.entries.set(e.Key, e.Value)
	}
	return m
}

// Readable emits the map itself after every mutation.
func (m *ReactiveMap[K, V]) Readable() Readable[*ReactiveMap[K, V]] { return m.readable() }

func (m *ReactiveMap[K, V]) node() anyNode { return m.readable() }

func (m *ReactiveMap[K, V]) Len() int { return m.entries.Len() }

func (m *ReactiveMap[K, V]) Get(key K) (V, bool) { return m.entries.get(key) }

func (m *ReactiveMap[K, V]) Has(key K) bool { return m.entries.has(key) }

func (m *ReactiveMap[K, V]) Keys() []K { return m.entries.keys() }

func (m *ReactiveMap[K, V]) Values() []V { return m.entries.values() }

func (m *ReactiveMap[K, V]) Entries() []MapEntry[K, V] {
	out := make([]MapEntry[K, V], 0, m.entries.Len())
	for k, v := range m.entries.all() {
		out = append(out, MapEntry[K, V]{Key: k, Value: v})
	}
	return out
}

func (m *ReactiveMap[K, V]) All() iter.Seq2[K, V] { return m.entries.all() }

func (m *ReactiveMap[K, V]) OnChanged(fn func(changed ReactiveMapChanged[K, V])) RemoveListener {
	if m.changes == nil {
		m.changes = newChangeSet(func(keys []K, values []V, deleted []K) ReactiveMapChanged[K, V] {
			upsert := make([]MapEntry[K, V], len(keys))
			for i, k := range keys {
				upsert[i] = MapEntry[K, V]{Key: k, Value: values[i]}
			}
			return ReactiveMapChanged[K, V]{Upsert: upsert, Delete: deleted}
		})
		m.changes.drop = func(c *changeSet[K, V, ReactiveMapChanged[K, V]]) {
			if m.changes == c {
				m.changes = nil
			}
		}
	}
	return m.changes.event.On(Listener[ReactiveMapChanged[K, V]](fn))
}

func (m *ReactiveMap[K, V]) OnDisposeValue(fn func(value V)) RemoveListener {
	return m.onDisposeValue(fn)
}

func (m *ReactiveMap[K, V]) changeTask() task {
	if m.changes == nil {
		return nil
	}
	return m.changes
}

// set writes without opening a batch. It reports whether the map changed.
func (m *ReactiveMap[K, V]) set(key K, value V) bool {
	old, ok := m.entries.get(key)
	if ok && old == value {
		return false
	}
	if ok {
		m.stageDispose(old)
	}
	m.unstageDispose(value)
	if m.changes != nil {
		m.changes.stageUpsert(key, value, !ok)
	}
	m.entries.set(key, value)
	return true
}

func (m *ReactiveMap[K, V]) delete(key K) bool {
	old, ok := m.entries.get(key)
	if !ok {
		return false
	}
	m.stageDispose(old)
	if m.changes != nil {
		m.changes.stageDelete(key)
	}
	m.entries.delete(key)
	return true
}

func (m *ReactiveMap[K, V]) Set(key K, value V) *ReactiveMap[K, V] {
	m.BatchSet(MapEntry[K, V]{Key: key, Value: value})
	return m
}

// BatchSet writes every entry and notifies once.
func (m *ReactiveMap[K, V]) BatchSet(entries ...MapEntry[K, V]) {
	isFirst := m.begin()
	changed := false
	for _, e := range entries {
		if m.set(e.Key, e.Value) {
			changed = true
		}
	}
	m.finish(isFirst, changed)
}

func (m *ReactiveMap[K, V]) Delete(key K) bool {
	return m.BatchDelete(key)
}

// BatchDelete removes every key and notifies once. It reports whether any
// key was present.
func (m *ReactiveMap[K, V]) BatchDelete(keys ...K) bool {
	isFirst := m.begin()
	changed := false
	for _, k := range keys {
		if m.delete(k) {
			changed = true
		}
	}
	m.finish(isFirst, changed)
	return changed
}

func (m *ReactiveMap[K, V]) Clear() {
	m.BatchDelete(m.entries.keys()...)
}

// Rename moves the value of key to newKey, replacing any value stored there.
func (m *ReactiveMap[K, V]) Rename(key, newKey K) {
	if key == newKey {
		return
	}
	isFirst := m.begin()
	changed := false
	if value, ok := m.entries.get(key); ok {
		m.delete(key)
		m.set(newKey, value)
		changed = true
	}
	m.finish(isFirst, changed)
}

func (m *ReactiveMap[K, V]) finish(isFirst, changed bool) {
	if changed {
		m.commit(isFirst, m.changeTask())
		return
	}
	m.rt.endBatch(isFirst)
}

// Dispose reports every value for disposal and releases listeners. The map
// keeps working as a plain map afterwards.
func (m *ReactiveMap[K, V]) Dispose() {
	m.dispose(m.entries.values())
	m.changes = nil
}
