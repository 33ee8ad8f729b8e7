package nativestorage

import (
	"context"
	"sync"
)

// Deferred is a handle to a value that is not available yet. It resolves exactly once.
type Deferred[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

func newDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{done: make(chan struct{})}
}

// resolve settles the deferred. Only the first call has an effect.
func (d *Deferred[T]) resolve(value T, err error) bool {
	resolved := false

	d.once.Do(func() {
		d.value = value
		d.err = err
		resolved = true

		close(d.done)
	})

	return resolved
}

// Done returns a channel that is closed once the deferred is resolved.
func (d *Deferred[T]) Done() <-chan struct{} {
	return d.done
}

// Resolved reports whether the deferred is resolved.
func (d *Deferred[T]) Resolved() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the deferred is resolved or the context is done.
//
// Cancelling the context stops waiting, it does not cancel the pending operation.
func (d *Deferred[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.value, d.err

	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}
