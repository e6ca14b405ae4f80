package batchloader

import (
	"context"
	"sync/atomic"
)

// Thunk is a placeholder for a value that a batch fetch will produce.
// All Load calls for the same key observe the same thunk until the key is
// cleared, so thunks can be compared with == to check deduplication.
type Thunk[V ValueConstraint] struct {
	p *promise[V]
}

// Await blocks until the thunk settles, then returns its outcome.
// If the context is canceled first, it returns the context error; the thunk
// itself stays valid and can be awaited again.
func (t Thunk[V]) Await(ctx context.Context) (V, error) {
	select {
	case <-t.p.done:
		return t.p.deliver()
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// ResolvedThunk creates a thunk that is already resolved with the value.
func ResolvedThunk[V ValueConstraint](value V) Thunk[V] {
	p := newPromise[V](NopValueCloner[V]{})
	p.resolve(value)
	return Thunk[V]{p: p}
}

// RejectedThunk creates a thunk that is already rejected with the error.
func RejectedThunk[V ValueConstraint](err error) Thunk[V] {
	p := newPromise[V](NopValueCloner[V]{})
	p.reject(err)
	return Thunk[V]{p: p}
}

// promise is the single write side of a thunk. It settles exactly once.
type promise[V ValueConstraint] struct {
	done   chan struct{}
	value  V
	err    error
	cloner ValueCloner[V]
	taken  atomic.Bool
}

func newPromise[V ValueConstraint](cloner ValueCloner[V]) *promise[V] {
	return &promise[V]{done: make(chan struct{}), cloner: cloner}
}

func (p *promise[V]) resolve(value V) {
	p.value = value
	close(p.done)
}

func (p *promise[V]) reject(err error) {
	p.err = err
	close(p.done)
}

// deliver returns the settled outcome.
func (p *promise[V]) deliver() (V, error) {
	if p.err != nil {
		var zero V
		return zero, p.err
	}
	if p.taken.CompareAndSwap(false, true) {
		return p.value, nil
	}
	// note: we clone the value only if it is not the first receiver
	// to avoid unnecessary cloning when there is a single receiver.
	return p.cloner.CloneValue(p.value), nil
}
