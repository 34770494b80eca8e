package reactivity

import (
	"errors"
	"fmt"
)

var (
	// ErrCycle is wrapped by every CycleError.
	ErrCycle = errors.New("reactivity: cycle detected")

	// ErrDisposed is attached to diagnostics about disposed nodes and collections.
	ErrDisposed = errors.New("reactivity: use after dispose")
)

// CycleError reports a node that read itself before its first evaluation
// finished.
type CycleError struct {
	Name string
}

func (e *CycleError) Error() string {
	if e.Name == "" {
		return ErrCycle.Error()
	}
	return fmt.Sprintf("%s in %q", ErrCycle.Error(), e.Name)
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// PanicError carries a non-error value recovered from a user callback.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("reactivity: panic: %v", e.Value)
}

// asError converts a recovered panic value into an error.
func asError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &PanicError{Value: r}
}

// catch runs fn and turns a panic into an error.
func catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = asError(r)
		}
	}()
	fn()
	return nil
}
