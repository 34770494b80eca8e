package reactivity

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
)

// disposal queues values to report through OnDisposeValue. Each value is
// reported once per flush.
type disposal[V comparable] struct {
	event   Event[V]
	pending mapset.Set[V]
	drop    func(d *disposal[V])
}

func (d *disposal[V]) runTask() error {
	if d.event.Size() == 0 {
		d.drop(d)
		return nil
	}
	if d.pending.Cardinality() == 0 {
		return nil
	}
	values := d.pending.ToSlice()
	d.pending.Clear()
	var last error
	for _, v := range values {
		if err := d.event.Send(v); err != nil {
			last = err
		}
	}
	return last
}

// changeSet accumulates the net effect of the mutations of one flush.
// A key is never staged in both upsert and deleted. Keys created and removed
// within the same flush leave no trace.
type changeSet[K comparable, V any, E any] struct {
	event   Event[E]
	upsert  *ordered[K, V]
	deleted *ordered[K, struct{}]
	created *ordered[K, struct{}]
	build   func(upsert []K, values []V, deleted []K) E
	drop    func(c *changeSet[K, V, E])
	compare func(a, b K) int
}

func newChangeSet[K comparable, V any, E any](build func([]K, []V, []K) E) *changeSet[K, V, E] {
	return &changeSet[K, V, E]{
		upsert:  newOrdered[K, V](),
		deleted: newOrdered[K, struct{}](),
		created: newOrdered[K, struct{}](),
		build:   build,
	}
}

// stageUpsert records k as written. isNew tells whether k was absent from
// the container before this write.
func (c *changeSet[K, V, E]) stageUpsert(k K, v V, isNew bool) {
	if isNew {
		if !c.deleted.delete(k) {
			c.created.set(k, struct{}{})
		}
	}
	c.upsert.set(k, v)
}

func (c *changeSet[K, V, E]) stageDelete(k K) {
	c.upsert.delete(k)
	if c.created.delete(k) {
		return
	}
	c.deleted.set(k, struct{}{})
}

func (c *changeSet[K, V, E]) runTask() error {
	if c.event.Size() == 0 {
		c.drop(c)
		return nil
	}
	if c.upsert.Len() == 0 && c.deleted.Len() == 0 {
		c.created.clear()
		return nil
	}
	keys, values := c.upsert.keys(), c.upsert.values()
	deleted := c.deleted.keys()
	if c.compare != nil {
		keys, values = sortPairs(keys, values, c.compare)
		slices.SortFunc(deleted, c.compare)
	}
	c.upsert.clear()
	c.deleted.clear()
	c.created.clear()
	return c.event.Send(c.build(keys, values, deleted))
}

func sortPairs[K, V any](keys []K, values []V, compare func(a, b K) int) ([]K, []V) {
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(a, b int) int { return compare(keys[a], keys[b]) })
	k, v := make([]K, len(keys)), make([]V, len(values))
	for i, j := range idx {
		k[i], v[i] = keys[j], values[j]
	}
	return k, v
}

// collection holds what the reactive containers have in common: the lazily
// created readable of the container, the disposal aggregator and the
// disposed flag.
type collection[V comparable, C any] struct {
	rt       *Runtime
	kind     string
	self     C
	dollar   *node[C]
	disposal *disposal[V]
	disposed bool
}

func (c *collection[V, C]) readable() *node[C] {
	if c.dollar == nil {
		c.dollar = newNode(c.rt, Config[C]{Equal: NotEqual[C], Name: c.kind}, readBox[C])
		c.dollar.box = c.self
		c.dollar.setter = c.dollar.setBox
	}
	return c.dollar
}

func (c *collection[V, C]) onDisposeValue(fn func(V)) RemoveListener {
	if c.disposal == nil {
		c.disposal = &disposal[V]{
			pending: mapset.NewThreadUnsafeSet[V](),
			drop: func(d *disposal[V]) {
				if c.disposal == d {
					c.disposal = nil
				}
			},
		}
	}
	return c.disposal.event.On(Listener[V](fn))
}

func (c *collection[V, C]) stageDispose(v V) {
	if c.disposal != nil {
		c.disposal.pending.Add(v)
	}
}

func (c *collection[V, C]) unstageDispose(v V) {
	if c.disposal != nil {
		c.disposal.pending.Remove(v)
	}
}

// begin opens the batch a mutation runs in.
func (c *collection[V, C]) begin() bool {
	if c.disposed {
		c.rt.logger.Warn("mutating a disposed collection", zap.String("kind", c.kind), zap.Error(ErrDisposed))
	}
	return c.rt.BatchStart()
}

// commit queues the aggregators and notifies the container readable.
// changes may be nil.
func (c *collection[V, C]) commit(isFirst bool, changes task) {
	if changes != nil {
		c.rt.enqueue(changes)
	}
	if c.disposal != nil && c.disposal.pending.Cardinality() > 0 {
		c.rt.enqueue(c.disposal)
	}
	if c.dollar != nil {
		c.dollar.notify()
	}
	c.rt.endBatch(isFirst)
}

// dispose reports every value in values for disposal, then lets go of the
// container readable and listeners.
func (c *collection[V, C]) dispose(values []V) {
	if c.disposed {
		return
	}
	c.disposed = true
	if c.disposal != nil {
		for _, v := range values {
			c.disposal.pending.Add(v)
		}
		if c.disposal.pending.Cardinality() > 0 {
			isFirst := c.rt.BatchStart()
			c.rt.enqueue(c.disposal)
			c.rt.endBatch(isFirst)
		}
	}
	if c.dollar != nil {
		c.dollar.Dispose()
	}
	c.dollar = nil
	c.disposal = nil
}
