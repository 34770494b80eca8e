package reactivity

import (
	"runtime"
	"weak"
)

// weakRef is a reverse edge that does not keep its dependent alive.
type weakRef interface {
	deref() anyNode
}

type weakNode[T any] struct {
	p weak.Pointer[node[T]]
}

func (w *weakNode[T]) deref() anyNode {
	if n := w.p.Value(); n != nil {
		return n
	}
	return nil
}

// pruneJob describes the reverse edges of a collected node.
type pruneJob struct {
	deps *ordered[anyNode, Version]
	ref  weakRef
}

// weakSelf returns the handle dependencies store in their dependents.
// deps must exist before the first call.
func (n *node[T]) weakSelf() *weakNode[T] {
	if n.self == nil {
		n.self = &weakNode[T]{p: weak.Make(n)}
		n.cleanup = runtime.AddCleanup(n, n.rt.bury, pruneJob{deps: n.deps, ref: n.self})
	}
	return n.self
}

// bury runs on the cleanup goroutine, so it only queues the job.
func (rt *Runtime) bury(job pruneJob) {
	rt.buriedMu.Lock()
	rt.buried = append(rt.buried, job)
	rt.buriedMu.Unlock()
}

// sweep removes the reverse edges of collected nodes.
func (rt *Runtime) sweep() {
	rt.buriedMu.Lock()
	jobs := rt.buried
	rt.buried = nil
	rt.buriedMu.Unlock()

	for _, job := range jobs {
		for dep := range job.deps.all() {
			dep.removeDependent(job.ref)
		}
	}
}

// Sweep applies pending edge pruning now instead of at the next batch.
// It reports how many collected nodes were pruned.
func (rt *Runtime) Sweep() int {
	rt.buriedMu.Lock()
	n := len(rt.buried)
	rt.buriedMu.Unlock()
	rt.sweep()
	return n
}
