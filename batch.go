package reactivity

// task is anything the batch queue can run when flushed.
type task interface {
	runTask() error
}

// BatchStart opens a batch. Only the outermost call returns true, and only
// that caller should flush.
func (rt *Runtime) BatchStart() bool {
	if rt.batching {
		return false
	}
	rt.checkOwner()
	rt.batching = true
	rt.sweep()
	return true
}

// BatchFlush drains the queue. Every task runs even when an earlier one
// fails; the last failure is returned once the queue is empty.
func (rt *Runtime) BatchFlush() error {
	if !rt.batching {
		return nil
	}
	var last error
	for {
		t, _, ok := rt.tasks.popFront()
		if !ok {
			break
		}
		if err := runTask(t); err != nil {
			last = err
		}
	}
	rt.batching = false
	return last
}

// Batch runs fn inside a batch and flushes if this call opened it. A panic
// in fn is returned as an error after the flush, unless the flush fails too.
func (rt *Runtime) Batch(fn func()) error {
	isFirst := rt.BatchStart()
	err := catch(fn)
	if isFirst {
		if flushErr := rt.BatchFlush(); flushErr != nil {
			err = flushErr
		}
	}
	return err
}

// endBatch flushes for implicit batches, where no caller can receive the
// error.
func (rt *Runtime) endBatch(isFirst bool) {
	if isFirst {
		rt.reportError(rt.BatchFlush())
	}
}

func (rt *Runtime) enqueue(t task) {
	rt.tasks.set(t, struct{}{})
}

func (rt *Runtime) dequeue(t task) {
	rt.tasks.delete(t)
}

func (rt *Runtime) queued(t task) bool {
	return rt.tasks.has(t)
}

func runTask(t task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = asError(r)
		}
	}()
	return t.runTask()
}
