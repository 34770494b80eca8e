package reactivity_test

import (
	"errors"
	"testing"

	"github.com/embrajs/reactivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should only let the outermost BatchStart own the flush
func TestBatchStartOwnership(t *testing.T) {
	rt, _ := newRuntime(t)

	assert.NoError(t, rt.BatchFlush())
	assert.True(t, rt.BatchStart())
	assert.False(t, rt.BatchStart())
	assert.NoError(t, rt.BatchFlush())
	assert.True(t, rt.BatchStart())
	assert.NoError(t, rt.BatchFlush())
}

// should coalesce writes into one notification
func TestBatchCoalescesWrites(t *testing.T) {
	rt, _ := newRuntime(t)
	w := reactivity.NewWritable(rt, 0)
	rec := &recorder[int]{}
	w.Reaction(rec.record)

	err := rt.Batch(func() {
		w.Set(1)
		w.Set(2)
		w.Set(3)
		assert.Equal(t, 0, rec.count())
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, rec.calls)
}

// should skip delivery when a batch ends on the initial value
func TestBatchRevertedWrite(t *testing.T) {
	rt, _ := newRuntime(t)
	w := reactivity.NewWritable(rt, 1)
	rec := &recorder[int]{}
	w.Reaction(rec.record)

	require.NoError(t, rt.Batch(func() {
		w.Set(2)
		w.Set(1)
	}))
	assert.Equal(t, 0, rec.count())
	assert.Equal(t, 1, w.Get())
}

// should flush only when the outermost batch ends
func TestBatchNested(t *testing.T) {
	rt, _ := newRuntime(t)
	w := reactivity.NewWritable(rt, 0)
	rec := &recorder[int]{}
	w.Reaction(rec.record)

	require.NoError(t, rt.Batch(func() {
		require.NoError(t, rt.Batch(func() {
			w.Set(1)
		}))
		assert.Equal(t, 0, rec.count())
		w.Set(2)
	}))
	assert.Equal(t, []int{2}, rec.calls)
}

// should run every task and return the last failure
func TestBatchLastErrorWins(t *testing.T) {
	rt, _ := newRuntime(t)
	errA, errB := errors.New("a"), errors.New("b")

	a := reactivity.NewWritable(rt, 0)
	b := reactivity.NewWritable(rt, 0)
	after := &recorder[int]{}
	a.Reaction(func(int) { panic(errA) })
	a.Reaction(after.record)
	b.Reaction(func(int) { panic(errB) })

	err := rt.Batch(func() {
		a.Set(1)
		b.Set(1)
	})
	assert.ErrorIs(t, err, errB)
	assert.NotErrorIs(t, err, errA)
	assert.Equal(t, []int{1}, after.calls)
}

// should return a panic raised inside the batch function
func TestBatchReturnsPanic(t *testing.T) {
	rt, _ := newRuntime(t)
	w := reactivity.NewWritable(rt, 0)
	rec := &recorder[int]{}
	w.Reaction(rec.record)

	err := rt.Batch(func() {
		w.Set(1)
		panic("stop")
	})
	var panicErr *reactivity.PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "stop", panicErr.Value)
	// writes made before the panic are still flushed
	assert.Equal(t, []int{1}, rec.calls)
}

// should hand implicit flush failures to the error handler
func TestImplicitFlushErrorHandler(t *testing.T) {
	boom := errors.New("boom")
	var got []error
	rt := reactivity.New(reactivity.WithErrorHandler(func(err error) {
		got = append(got, err)
	}))
	w := reactivity.NewWritable(rt, 0)
	w.Reaction(func(int) { panic(boom) })

	w.Set(1)
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], boom)
}

// should panic on implicit flush failures without an error handler
func TestImplicitFlushPanicsByDefault(t *testing.T) {
	boom := errors.New("boom")
	rt := reactivity.New()
	w := reactivity.NewWritable(rt, 0)
	w.Reaction(func(int) { panic(boom) })

	assert.PanicsWithError(t, boom.Error(), func() {
		w.Set(1)
	})
}
