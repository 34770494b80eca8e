package reactivity

type Listener[T any] func(data T)

// RemoveListener detaches a listener. It reports whether the listener was
// still attached.
type RemoveListener func() bool

type listenerSlot[T any] struct {
	fn Listener[T]
}

// Event is a small listener registry. A single listener is stored inline,
// the second one promotes the registry to an ordered set.
type Event[T any] struct {
	single *listenerSlot[T]
	multi  *ordered[*listenerSlot[T], struct{}]
}

func (e *Event[T]) On(fn Listener[T]) RemoveListener {
	slot := &listenerSlot[T]{fn: fn}
	switch {
	case e.multi != nil:
		e.multi.set(slot, struct{}{})
	case e.single != nil:
		e.multi = newOrdered[*listenerSlot[T], struct{}]()
		e.multi.set(e.single, struct{}{})
		e.multi.set(slot, struct{}{})
		e.single = nil
	default:
		e.single = slot
	}
	return func() bool { return e.off(slot) }
}

func (e *Event[T]) off(slot *listenerSlot[T]) bool {
	if e.multi != nil {
		return e.multi.delete(slot)
	}
	if e.single == slot {
		e.single = nil
		return true
	}
	return false
}

// Off removes every listener.
func (e *Event[T]) Off() {
	e.single = nil
	e.multi = nil
}

func (e *Event[T]) Size() int {
	if e.multi != nil {
		return e.multi.Len()
	}
	if e.single != nil {
		return 1
	}
	return 0
}

// Send calls every listener with data. A panicking listener does not stop
// the others; the last failure is returned.
func (e *Event[T]) Send(data T) error {
	if e.multi == nil {
		if e.single == nil {
			return nil
		}
		fn := e.single.fn
		return catch(func() { fn(data) })
	}
	var last error
	for slot := range e.multi.all() {
		if err := catch(func() { slot.fn(data) }); err != nil {
			last = err
		}
	}
	return last
}
