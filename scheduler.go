package batchloader

import (
	"sync"
	"time"
)

// FlushScheduler decides when an accumulating batch is dispatched.
// ScheduleFlush is called exactly once per opened batch with a callback that
// closes and dispatches that batch. The callback is idempotent: invoking it
// after the batch was already dispatched (by the max batch size limit or by
// Loader.Dispatch) has no effect.
//
// ScheduleFlush must not invoke the callback synchronously; it is called with
// the loader's internal lock held.
type FlushScheduler interface {
	ScheduleFlush(flush func())
}

// SchedulerFunc is a function type that implements the FlushScheduler interface.
type SchedulerFunc func(flush func())

// ScheduleFlush calls the function.
func (f SchedulerFunc) ScheduleFlush(flush func()) {
	f(flush)
}

// DefaultWait is the default debounce window of TimerScheduler.
var DefaultWait = time.Millisecond

// TimerScheduler dispatches a batch after a short debounce window.
// It is the runtime analogue of deferring the flush to the end of the current
// tick: every load issued while the window is open joins the same batch.
type TimerScheduler struct {
	// Wait is the debounce window. If not positive, DefaultWait is used.
	Wait time.Duration
}

var _ FlushScheduler = (*TimerScheduler)(nil)

// ScheduleFlush runs the callback once the debounce window elapses.
func (s *TimerScheduler) ScheduleFlush(flush func()) {
	wait := s.Wait
	if wait <= 0 {
		wait = DefaultWait
	}
	time.AfterFunc(wait, flush)
}

// ManualScheduler never dispatches on its own: the host decides when batches
// close by calling Dispatch. Use it in hosts with a natural post-collection
// point, such as the end of one resolution pass.
//
// A single ManualScheduler may serve several loaders; Dispatch flushes the
// open batches of all of them.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []func()
}

var _ FlushScheduler = (*ManualScheduler)(nil)

// ScheduleFlush records the callback until the next Dispatch.
func (s *ManualScheduler) ScheduleFlush(flush func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, flush)
}

// Dispatch runs all recorded flush callbacks.
func (s *ManualScheduler) Dispatch() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, flush := range pending {
		flush()
	}
}
