package reactivity

// WatchEffect is run by Watch. The returned cleanup, if any, runs before the
// next run and on dispose.
type WatchEffect func(get Get, dispose Disposer) (cleanup func())

type watcher struct {
	rt       *Runtime
	effect   WatchEffect
	running  bool
	disposed bool
	deps     *ordered[anyNode, Disposer]
	cleanup  func()
}

// Watch runs effect now and again whenever something it read through get
// changes. Failures of the first run go to the runtime's error handler.
func Watch(rt *Runtime, effect WatchEffect) Disposer {
	w := &watcher{rt: rt, effect: effect}
	rt.reportError(w.run())
	return w.dispose
}

func (w *watcher) Any(v any) any { return readAny(w, v) }

func (w *watcher) track(dep anyNode) {
	if w.deps.has(dep) {
		return
	}
	if w.deps == nil {
		w.deps = newOrdered[anyNode, Disposer]()
	}
	w.deps.set(dep, dep.onReactionAny(w.invalidate, SyncScheduler))
}

func (w *watcher) invalidate() {
	if !w.running {
		w.unsubscribe()
	}
	w.rt.enqueue(w)
}

func (w *watcher) unsubscribe() {
	for _, off := range w.deps.values() {
		off()
	}
	w.deps.clear()
}

func (w *watcher) runTask() error { return w.run() }

func (w *watcher) runCleanup() error {
	if w.cleanup == nil {
		return nil
	}
	cleanup := w.cleanup
	w.cleanup = nil
	return w.rt.Batch(cleanup)
}

func (w *watcher) run() (err error) {
	if err := w.runCleanup(); err != nil {
		return err
	}
	if w.disposed {
		return nil
	}

	isTop := !w.running
	w.running = true
	isFirst := w.rt.BatchStart()

	defer func() {
		if r := recover(); r != nil {
			w.unsubscribe()
			err = asError(r)
		}
		if w.disposed {
			w.dispose()
		}
		if isTop {
			w.running = false
		}
		if isFirst {
			if flushErr := w.rt.BatchFlush(); flushErr != nil {
				err = flushErr
			}
		}
	}()

	w.cleanup = w.effect(w, w.dispose)
	return nil
}

func (w *watcher) dispose() {
	w.disposed = true
	w.rt.dequeue(w)
	w.effect = nil
	w.unsubscribe()
	w.rt.reportError(w.runCleanup())
}
