// Package ctxlock provides a mutual exclusion lock that can be acquired with
// a context.
package ctxlock

import "context"

// Mutex is a mutual exclusion lock whose Lock honors context cancellation.
// Create it with New; the zero value is not usable.
type Mutex struct {
	sem chan struct{}
}

// New creates a new unlocked Mutex.
func New() *Mutex {
	return &Mutex{sem: make(chan struct{}, 1)}
}

// Lock acquires the lock, or gives up when the context is canceled first.
// If the context is canceled before the lock is acquired, it returns the
// context error and the lock is not held.
func (m *Mutex) Lock(ctx context.Context) error {
	select {
	case m.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryLock acquires the lock without blocking and reports whether it succeeded.
func (m *Mutex) TryLock() bool {
	select {
	case m.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

// Unlock releases the lock. It must be called only by the current holder.
func (m *Mutex) Unlock() {
	select {
	case <-m.sem:
	default:
		panic("ctxlock: unlock of unlocked mutex")
	}
}
