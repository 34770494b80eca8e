package reactivity

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// Version changes whenever a node's value changes. It wraps on overflow.
type Version int32

type Subscriber[T any] func(value T)

// Disposer cancels a subscription or a watcher. Calling it again is a no-op.
type Disposer func()

// ReadableLike is implemented by readables and by anything that exposes one,
// such as the reactive collections.
type ReadableLike[T any] interface {
	Readable() Readable[T]
}

// Readable is a memoized, versioned reactive value.
type Readable[T any] interface {
	ReadableLike[T]

	// Get returns the current value and panics with the error of a failed
	// evaluation.
	Get() T
	TryGet() (T, error)
	Version() Version
	Name() string
	Disposed() bool

	// Subscribe is Reaction followed by an immediate call with the current value.
	Subscribe(fn Subscriber[T], scheduler ...Scheduler) Disposer
	// Reaction calls fn on every change delivered by scheduler, SyncScheduler
	// by default.
	Reaction(fn Subscriber[T], scheduler ...Scheduler) Disposer
	// Unsubscribe drops every subscriber of the given schedulers, or of all
	// schedulers when none are given.
	Unsubscribe(scheduler ...Scheduler)
	Dispose()
	String() string

	node() anyNode
}

// Writable is a Readable with a setter.
type Writable[T any] interface {
	Readable[T]
	Set(value T)
	Update(fn func(T) T)
}

// anyNode is the type-erased view of a node used by graph edges.
type anyNode interface {
	task
	SchedulerTask
	peekVersion() (Version, error)
	isDirty() bool
	notify()
	addDependent(ref weakRef)
	removeDependent(ref weakRef)
	getAny() any
	onReactionAny(fn func(), scheduler Scheduler) Disposer
}

type nodeProvider interface {
	node() anyNode
}

type subscription[T any] struct {
	event       Event[T]
	lastVersion Version
}

type node[T any] struct {
	rt             *Runtime
	name           string
	equal          EqualFunc[T]
	onDisposeValue func(T)
	resolve        func(self *node[T]) T
	computed       bool

	// box holds the value of a plain readable, resolve reads it back.
	box    T
	setter func(T)

	value    T
	hasValue bool
	err      error
	ver      Version
	dirty    bool

	deps       *ordered[anyNode, Version]
	dependents *ordered[weakRef, struct{}]
	self       *weakNode[T]
	cleanup    runtime.Cleanup

	subs     *ordered[Scheduler, *subscription[T]]
	disposed bool
}

func newNode[T any](rt *Runtime, cfg Config[T], resolve func(self *node[T]) T) *node[T] {
	return &node[T]{
		rt:             rt,
		name:           cfg.Name,
		equal:          cfg.Equal,
		onDisposeValue: cfg.OnDisposeValue,
		resolve:        resolve,
		ver:            -1,
		dirty:          true,
	}
}

func readBox[T any](self *node[T]) T { return self.box }

// NewReadable returns a readable and the only function able to change it.
func NewReadable[T any](rt *Runtime, value T, cfg ...Config[T]) (Readable[T], func(T)) {
	n := newNode(rt, configOf(cfg), readBox[T])
	n.box = value
	return n, n.setBox
}

func NewWritable[T any](rt *Runtime, value T, cfg ...Config[T]) Writable[T] {
	return ToWritable(NewReadable(rt, value, cfg...))
}

// ToWritable attaches set to r.
func ToWritable[T any](r Readable[T], set func(T)) Writable[T] {
	n := r.node().(*node[T])
	n.setter = set
	return n
}

// IsReadable reports whether v is a node or exposes one.
func IsReadable(v any) bool {
	_, ok := v.(nodeProvider)
	return ok
}

func (n *node[T]) setBox(value T) {
	if n.equal(value, n.box) {
		return
	}
	old := n.box
	n.box = value
	n.disposeValue(old)
	n.notify()
}

func (n *node[T]) Set(value T) {
	if n.setter == nil {
		n.rt.logger.Warn("setting a readable without setter", zap.String("name", n.name))
		return
	}
	n.setter(value)
}

func (n *node[T]) Update(fn func(T) T) {
	n.Set(fn(n.Get()))
}

func (n *node[T]) Readable() Readable[T] { return n }

func (n *node[T]) node() anyNode { return n }

func (n *node[T]) Name() string { return n.name }

func (n *node[T]) Disposed() bool { return n.disposed }

func (n *node[T]) Get() T {
	v, err := n.TryGet()
	if err != nil {
		panic(err)
	}
	return v
}

func (n *node[T]) getAny() any { return n.Get() }

func (n *node[T]) TryGet() (T, error) {
	if n.dirty {
		// cleared first so that a notify during evaluation marks it again
		n.dirty = false
		changed := n.deps.Len() == 0
		if !changed {
			for dep, seen := range n.deps.all() {
				if v, err := dep.peekVersion(); err != nil || v != seen {
					changed = true
					break
				}
			}
		}
		if changed {
			n.err = nil
			if err := n.recompute(); err != nil {
				n.dirty = true
				n.err = err
			}
		}
	}
	var zero T
	if n.err != nil {
		return zero, n.err
	}
	if !n.hasValue {
		return zero, &CycleError{Name: n.name}
	}
	return n.value, nil
}

func (n *node[T]) recompute() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = asError(r)
		}
	}()
	v := n.resolve(n)
	if n.hasValue && n.equal(v, n.value) {
		return nil
	}
	old, had := n.value, n.hasValue
	n.value, n.hasValue = v, true
	n.ver++
	if had && n.computed {
		n.disposeValue(old)
	}
	return nil
}

func (n *node[T]) disposeValue(v T) {
	if n.onDisposeValue == nil {
		return
	}
	if err := catch(func() { n.onDisposeValue(v) }); err != nil {
		n.rt.logger.Error("dispose value callback failed", zap.String("name", n.name), zap.Error(err))
	}
}

// Version evaluates the node first, like Get.
func (n *node[T]) Version() Version {
	// a failed evaluation is raised again by the next Get
	n.TryGet()
	return n.ver
}

func (n *node[T]) peekVersion() (Version, error) {
	_, err := n.TryGet()
	return n.ver, err
}

func (n *node[T]) addDep(dep anyNode) {
	// the failure of dep surfaces when it is read right after
	v, _ := dep.peekVersion()
	if seen, ok := n.deps.get(dep); ok && seen == v {
		return
	}
	if n.deps == nil {
		n.deps = newOrdered[anyNode, Version]()
	}
	n.deps.set(dep, v)
	dep.addDependent(n.weakSelf())
}

func (n *node[T]) removeDep(dep anyNode) {
	n.deps.delete(dep)
	if n.self != nil {
		dep.removeDependent(n.self)
	}
}

func (n *node[T]) isDirty() bool { return n.dirty }

func (n *node[T]) addDependent(ref weakRef) {
	if n.dependents == nil {
		n.dependents = newOrdered[weakRef, struct{}]()
	}
	n.dependents.set(ref, struct{}{})
}

func (n *node[T]) removeDependent(ref weakRef) {
	n.dependents.delete(ref)
}

func (n *node[T]) notify() {
	if n.disposed {
		n.rt.logger.Warn("updating a disposed readable", zap.String("name", n.name), zap.Error(ErrDisposed))
	}
	n.dirty = true
	isFirst := n.rt.BatchStart()
	n.rt.enqueue(n)
	for ref := range n.dependents.all() {
		dependent := ref.deref()
		if dependent == nil {
			n.dependents.delete(ref)
			continue
		}
		// a queued dependent read since it was queued is clean again and
		// must be marked once more
		if !n.rt.queued(dependent) || !dependent.isDirty() {
			dependent.notify()
		}
	}
	n.rt.endBatch(isFirst)
}

// runTask hands the node to every scheduler that has subscribers.
func (n *node[T]) runTask() error {
	var last error
	for s := range n.subs.all() {
		if err := schedule(s, n); err != nil {
			last = err
		}
	}
	return last
}

func schedule(s Scheduler, t SchedulerTask) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = asError(r)
		}
	}()
	return s.Schedule(t)
}

// RunScheduled delivers the current value to the subscribers of s unless
// they already saw this version.
func (n *node[T]) RunScheduled(s Scheduler) error {
	sub, ok := n.subs.get(s)
	if !ok || sub.event.Size() == 0 {
		return nil
	}
	v, err := n.TryGet()
	if err != nil {
		return err
	}
	if sub.lastVersion == n.ver {
		return nil
	}
	sub.lastVersion = n.ver
	return sub.event.Send(v)
}

func (n *node[T]) onReaction(fn Subscriber[T], s Scheduler) Disposer {
	if s == nil {
		s = SyncScheduler
	}
	if n.subs == nil {
		n.subs = newOrdered[Scheduler, *subscription[T]]()
	}
	sub, ok := n.subs.get(s)
	if !ok {
		sub = &subscription[T]{}
		n.subs.set(s, sub)
	}
	if sub.event.Size() == 0 {
		// existing state is not delivered again
		sub.lastVersion, _ = n.peekVersion()
	}
	remove := sub.event.On(Listener[T](fn))
	return func() {
		if remove() && sub.event.Size() == 0 {
			if cur, ok := n.subs.get(s); ok && cur == sub {
				n.subs.delete(s)
			}
		}
	}
}

func (n *node[T]) onReactionAny(fn func(), s Scheduler) Disposer {
	return n.onReaction(func(T) { fn() }, s)
}

func firstScheduler(schedulers []Scheduler) Scheduler {
	if len(schedulers) > 0 {
		return schedulers[0]
	}
	return SyncScheduler
}

func (n *node[T]) Reaction(fn Subscriber[T], scheduler ...Scheduler) Disposer {
	return n.onReaction(fn, firstScheduler(scheduler))
}

func (n *node[T]) Subscribe(fn Subscriber[T], scheduler ...Scheduler) Disposer {
	dispose := n.Reaction(fn, scheduler...)
	fn(n.Get())
	return dispose
}

func (n *node[T]) Unsubscribe(scheduler ...Scheduler) {
	if len(scheduler) == 0 {
		n.subs.clear()
		return
	}
	for _, s := range scheduler {
		n.subs.delete(s)
	}
}

// Dispose detaches the node from the graph and drops every subscriber.
func (n *node[T]) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true
	n.rt.dequeue(n)
	n.dependents = nil
	if n.self != nil {
		for dep := range n.deps.all() {
			dep.removeDependent(n.self)
		}
		n.cleanup.Stop()
	}
	n.deps.clear()
	n.subs = nil
	switch {
	case !n.computed:
		n.disposeValue(n.box)
	case n.hasValue:
		n.disposeValue(n.value)
	}
}

func (n *node[T]) String() string {
	v, err := n.TryGet()
	if err != nil {
		return fmt.Sprintf("<error: %v>", err)
	}
	return fmt.Sprint(v)
}

// Unsubscriber is implemented by every Readable.
type Unsubscriber interface {
	Unsubscribe(scheduler ...Scheduler)
}

// UnsubscribeAll clears every subscriber of each readable.
func UnsubscribeAll(readables ...Unsubscriber) {
	for _, r := range readables {
		if r != nil {
			r.Unsubscribe()
		}
	}
}
