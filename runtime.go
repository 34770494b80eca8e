// Package reactivity implements fine-grained reactive values that share one
// batch queue per Runtime.
package reactivity

import (
	"sync"

	"github.com/google/uuid"
	"github.com/petermattis/goid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrorHandler receives failures from flushes nobody can return an error
// to, such as the flush started by a Set call.
type ErrorHandler func(err error)

// Runtime owns the batch scope shared by every node, watcher and collection
// created against it. A Runtime is not safe for concurrent use.
type Runtime struct {
	id      uuid.UUID
	name    string
	logger  *zap.Logger
	onError ErrorHandler
	debug   bool
	owner   int64

	batching bool
	tasks    *ordered[task, struct{}]

	microtasks []func()
	microtask  *AsyncTaskScheduler

	buriedMu sync.Mutex
	buried   []pruneJob
}

type Option func(rt *Runtime)

func WithLogger(logger *zap.Logger) Option {
	return func(rt *Runtime) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithErrorHandler replaces the default handler, which panics.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(rt *Runtime) {
		rt.onError = fn
	}
}

// WithDebug makes the runtime record the goroutine that created it and warn
// when it is driven from another one.
func WithDebug(debug bool) Option {
	return func(rt *Runtime) {
		rt.debug = debug
	}
}

func WithName(name string) Option {
	return func(rt *Runtime) {
		rt.name = name
	}
}

func New(opts ...Option) *Runtime {
	rt := &Runtime{
		id:    uuid.New(),
		tasks: newOrdered[task, struct{}](),
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.logger == nil {
		rt.logger = defaultLogger()
	}
	fields := []zap.Field{zap.Stringer("runtime", rt.id)}
	if rt.name != "" {
		fields = append(fields, zap.String("runtime_name", rt.name))
	}
	rt.logger = rt.logger.With(fields...)
	if rt.debug {
		rt.owner = goid.Get()
	}
	return rt
}

func defaultLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func (rt *Runtime) ID() uuid.UUID { return rt.id }

func (rt *Runtime) Name() string { return rt.name }

func (rt *Runtime) Logger() *zap.Logger { return rt.logger }

func (rt *Runtime) reportError(err error) {
	if err == nil {
		return
	}
	if rt.onError != nil {
		rt.onError(err)
		return
	}
	panic(err)
}

func (rt *Runtime) checkOwner() {
	if !rt.debug {
		return
	}
	if gid := goid.Get(); gid != rt.owner {
		rt.logger.Warn("runtime used from a foreign goroutine",
			zap.Int64("owner", rt.owner),
			zap.Int64("goroutine", gid),
		)
	}
}
