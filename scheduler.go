package reactivity

import "go.uber.org/zap"

// SchedulerTask is a node waiting for its subscribers to be called.
type SchedulerTask interface {
	RunScheduled(s Scheduler) error
}

// Scheduler decides when a task's delivery runs. Implementations must be
// comparable since subscribers are grouped per scheduler.
type Scheduler interface {
	Schedule(task SchedulerTask) error
}

type syncScheduler struct{}

func (syncScheduler) Schedule(task SchedulerTask) error {
	return task.RunScheduled(SyncScheduler)
}

// SyncScheduler delivers immediately. It is the default for every
// subscription.
var SyncScheduler Scheduler = syncScheduler{}

// AsyncTaskScheduler collects tasks and delivers them all in one deferred
// flush.
type AsyncTaskScheduler struct {
	rt      *Runtime
	deferFn func(flush func())
	tasks   *ordered[SchedulerTask, struct{}]
	pending bool
}

// AsyncScheduler builds a scheduler that asks deferFn to call flush at most
// once per tick, for example on an animation frame or a timer.
func AsyncScheduler(rt *Runtime, deferFn func(flush func())) *AsyncTaskScheduler {
	return &AsyncTaskScheduler{
		rt:      rt,
		deferFn: deferFn,
		tasks:   newOrdered[SchedulerTask, struct{}](),
	}
}

func (s *AsyncTaskScheduler) Schedule(task SchedulerTask) error {
	s.tasks.set(task, struct{}{})
	if !s.pending {
		s.pending = true
		s.deferFn(s.flush)
	}
	return nil
}

func (s *AsyncTaskScheduler) flush() {
	for {
		task, _, ok := s.tasks.popFront()
		if !ok {
			break
		}
		if err := runScheduled(task, s); err != nil {
			s.rt.logger.Error("scheduled task failed", zap.Error(err))
		}
	}
	s.pending = false
}

// Pending reports how many tasks wait for the next flush.
func (s *AsyncTaskScheduler) Pending() int {
	return s.tasks.Len()
}

func runScheduled(task SchedulerTask, s Scheduler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = asError(r)
		}
	}()
	return task.RunScheduled(s)
}

// QueueMicrotask appends fn to the runtime's microtask queue.
func (rt *Runtime) QueueMicrotask(fn func()) {
	rt.microtasks = append(rt.microtasks, fn)
}

// RunMicrotasks drains the microtask queue, including microtasks queued
// while draining, and returns how many ran.
func (rt *Runtime) RunMicrotasks() int {
	n := 0
	for len(rt.microtasks) > 0 {
		fn := rt.microtasks[0]
		rt.microtasks[0] = nil
		rt.microtasks = rt.microtasks[1:]
		fn()
		n++
	}
	rt.microtasks = nil
	return n
}

// MicrotaskScheduler delivers at most once per microtask checkpoint, that is
// once per RunMicrotasks.
func (rt *Runtime) MicrotaskScheduler() *AsyncTaskScheduler {
	if rt.microtask == nil {
		rt.microtask = AsyncScheduler(rt, rt.QueueMicrotask)
	}
	return rt.microtask
}
