package reactivity

import "iter"

// ordered is an insertion-ordered map backed by a doubly linked list.
// Entries removed while an iteration is in flight are skipped, entries
// appended while iterating are visited.
type ordered[K comparable, V any] struct {
	index      map[K]*orderedEntry[K, V]
	head, tail *orderedEntry[K, V]
}

type orderedEntry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *orderedEntry[K, V]
	removed    bool
}

func newOrdered[K comparable, V any]() *ordered[K, V] {
	return &ordered[K, V]{index: map[K]*orderedEntry[K, V]{}}
}

func (o *ordered[K, V]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.index)
}

func (o *ordered[K, V]) has(k K) bool {
	if o == nil {
		return false
	}
	_, ok := o.index[k]
	return ok
}

func (o *ordered[K, V]) get(k K) (v V, ok bool) {
	if o == nil {
		return v, false
	}
	e, ok := o.index[k]
	if !ok {
		return v, false
	}
	return e.value, true
}

// set stores v under k. An existing key keeps its position. Reports whether
// the key is new.
func (o *ordered[K, V]) set(k K, v V) bool {
	if e, ok := o.index[k]; ok {
		e.value = v
		return false
	}
	e := &orderedEntry[K, V]{key: k, value: v, prev: o.tail}
	if o.tail != nil {
		o.tail.next = e
	} else {
		o.head = e
	}
	o.tail = e
	o.index[k] = e
	return true
}

func (o *ordered[K, V]) delete(k K) bool {
	if o == nil {
		return false
	}
	e, ok := o.index[k]
	if !ok {
		return false
	}
	delete(o.index, k)
	o.unlink(e)
	return true
}

func (o *ordered[K, V]) unlink(e *orderedEntry[K, V]) {
	e.removed = true
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		o.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		o.tail = e.prev
	}
}

// popFront removes and returns the oldest entry.
func (o *ordered[K, V]) popFront() (k K, v V, ok bool) {
	if o == nil || o.head == nil {
		return k, v, false
	}
	e := o.head
	delete(o.index, e.key)
	o.unlink(e)
	return e.key, e.value, true
}

func (o *ordered[K, V]) clear() {
	if o == nil {
		return
	}
	for e := o.head; e != nil; e = e.next {
		e.removed = true
	}
	clear(o.index)
	o.head, o.tail = nil, nil
}

func (o *ordered[K, V]) all() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if o == nil {
			return
		}
		for e := o.head; e != nil; e = e.next {
			if e.removed {
				continue
			}
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

func (o *ordered[K, V]) keys() []K {
	if o == nil {
		return nil
	}
	out := make([]K, 0, len(o.index))
	for e := o.head; e != nil; e = e.next {
		out = append(out, e.key)
	}
	return out
}

func (o *ordered[K, V]) values() []V {
	if o == nil {
		return nil
	}
	out := make([]V, 0, len(o.index))
	for e := o.head; e != nil; e = e.next {
		out = append(out, e.value)
	}
	return out
}
