package batchloader

import (
	"errors"

	"github.com/karupanerura/batch-loader/internal/safecall"
)

var errGoexit = errors.New("batch source called runtime.Goexit")

// batch accumulates the pending requests for one dispatch, in first-enqueue
// order. Once dispatched it is immutable: later loads for the same keys go
// into a fresh batch.
type batch[K KeyConstraint, V ValueConstraint] struct {
	keys       []K
	promises   []*promise[V]
	dispatched bool
}

// enqueue appends a pending request to the open batch, opening a new batch
// (and scheduling its flush) when none is open. When the max batch size is
// reached, the batch is dispatched at once and the next enqueue opens a fresh
// one. The caller must hold l.mu.
func (l *Loader[K, V]) enqueue(key K, p *promise[V]) {
	if l.current == nil {
		b := &batch[K, V]{}
		l.current = b
		l.scheduler.ScheduleFlush(func() {
			l.flush(b)
		})
	}

	b := l.current
	b.keys = append(b.keys, key)
	b.promises = append(b.promises, p)
	if l.maxBatchSize > 0 && len(b.keys) >= l.maxBatchSize {
		l.closeBatch(b)
	}
}

// flush dispatches the batch unless it was already dispatched by the max
// batch size limit or by an explicit Dispatch.
func (l *Loader[K, V]) flush(b *batch[K, V]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closeBatch(b)
}

// closeBatch transitions the batch to dispatched and hands it to the
// executor. It is idempotent. The caller must hold l.mu.
func (l *Loader[K, V]) closeBatch(b *batch[K, V]) {
	if b == nil || b.dispatched {
		return
	}
	b.dispatched = true
	if l.current == b {
		l.current = nil
	}
	if len(b.keys) == 0 {
		return
	}
	go l.execute(b)
}

// execute performs the single source call for a closed batch and settles
// every promise in it. Every pending request eventually settles, whatever the
// source does: return, fail, panic, or call runtime.Goexit.
func (l *Loader[K, V]) execute(b *batch[K, V]) {
	ctx := l.context()
	if l.inFlight != nil {
		if err := l.inFlight.Lock(ctx); err != nil {
			l.rejectAll(b, &BatchFetchError{Err: err})
			return
		}
		defer l.inFlight.Unlock()
	}

	guard := safecall.Guard{
		OnGoexit: func() {
			l.rejectAll(b, &BatchFetchError{Err: errGoexit})
		},
	}

	var results []Result[V]
	if err := guard.Run(func() (err error) {
		results, err = l.source.FetchAll(ctx, b.keys)
		return
	}); err != nil {
		l.rejectAll(b, &BatchFetchError{Err: err})
		return
	}

	if len(results) != len(b.keys) {
		l.rejectAll(b, &BatchMismatchError{Keys: len(b.keys), Results: len(results)})
		return
	}

	for i, r := range results {
		if r.Err != nil {
			l.reject(b, i, r.Err)
			continue
		}
		b.promises[i].resolve(r.Value)
	}
}

// rejectAll settles every pending request in the batch with the same error.
func (l *Loader[K, V]) rejectAll(b *batch[K, V], err error) {
	for i := range b.promises {
		l.reject(b, i, err)
	}
}

// reject settles one pending request with an error, optionally evicting the
// key so that a later Load retries it. The eviction happens before the
// promise settles so that a caller retrying right after the error never hits
// the stale entry.
func (l *Loader[K, V]) reject(b *batch[K, V], i int, err error) {
	if l.evictOnError {
		l.mu.Lock()
		// evict only when the entry still belongs to this batch; the caller
		// may have cleared or re-primed the key in the meantime.
		if t, ok := l.cache.Get(b.keys[i]); ok && t.p == b.promises[i] {
			l.cache.Delete(b.keys[i])
		}
		l.mu.Unlock()
	}
	b.promises[i].reject(err)
}
