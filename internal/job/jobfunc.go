package job

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilJobFunc is returned when a JobFunc is nil.
var ErrNilJobFunc = errors.New("nil JobFunc")

// Func is a unit of work that produces a value.
type Func[T any] func(context.Context) (T, error)

// Run invokes f, reporting ErrNilJobFunc instead of panicking on nil.
func (f Func[T]) Run(ctx context.Context) (T, error) {
	if f == nil {
		var zero T
		return zero, fmt.Errorf("jobfunc: %w", ErrNilJobFunc)
	}
	return f(ctx)
}

// Handle is an in-flight call started with Start. The result is written
// exactly once, before Done is closed.
type Handle[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Start runs fn on its own goroutine and returns immediately.
// The call runs under ctx; abandoning the handle does not stop it.
func Start[T any](ctx context.Context, fn Func[T]) *Handle[T] {
	h := &Handle[T]{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		defer func() {
			if r := recover(); r != nil {
				h.err = fmt.Errorf("job panic: %v", r)
			}
		}()
		h.val, h.err = fn.Run(ctx)
	}()
	return h
}

// Done is closed once the call has finished.
func (h *Handle[T]) Done() <-chan struct{} { return h.done }

// Await blocks until the call finishes or ctx is done. Returning early on
// ctx leaves the call running.
func (h *Handle[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-h.done:
		return h.val, h.err
	}
}

// Ready reports whether the call has finished.
func (h *Handle[T]) Ready() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}
