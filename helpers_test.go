package reactivity_test

import (
	"testing"

	"github.com/embrajs/reactivity"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// newRuntime returns a runtime whose diagnostics are captured and whose
// implicit flush failures fail the test.
func newRuntime(t *testing.T, opts ...reactivity.Option) (*reactivity.Runtime, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.WarnLevel)
	base := []reactivity.Option{
		reactivity.WithLogger(zap.New(core)),
		reactivity.WithErrorHandler(func(err error) {
			t.Errorf("unexpected flush error: %v", err)
		}),
	}
	return reactivity.New(append(base, opts...)...), logs
}

type recorder[T any] struct {
	calls []T
}

func (r *recorder[T]) record(v T) {
	r.calls = append(r.calls, v)
}

func (r *recorder[T]) count() int {
	return len(r.calls)
}

func (r *recorder[T]) last() T {
	var zero T
	if len(r.calls) == 0 {
		return zero
	}
	return r.calls[len(r.calls)-1]
}
