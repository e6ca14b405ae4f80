package batchloader

import (
	"context"
	"sync"

	"github.com/karupanerura/batch-loader/internal/ctxlock"
)

// Loader coalesces Load calls issued close together into batched fetches
// against a BatchSource, and memoizes every outcome for its own lifetime.
//
// Construct one Loader per logical scope (typically one incoming request) and
// discard it at scope end. Sharing a single instance across unrelated scopes
// leaks cached results between them.
type Loader[K KeyConstraint, V ValueConstraint] struct {
	source    BatchSource[K, V]
	cache     ThunkCache[K, V]
	scheduler FlushScheduler
	cloner    ValueCloner[V]
	context   func() context.Context

	maxBatchSize int
	evictOnError bool
	inFlight     *ctxlock.Mutex // non-nil when batch dispatch is serialized

	configErr error

	mu      sync.Mutex
	current *batch[K, V]
}

// NewLoader creates a new Loader for the given batch source.
// It returns a *ConfigurationError when the source is nil or an option
// carries an invalid value.
func NewLoader[K KeyConstraint, V ValueConstraint](source BatchSource[K, V], opts ...Option[K, V]) (*Loader[K, V], error) {
	if source == nil {
		return nil, &ConfigurationError{Reason: "batch source must not be nil"}
	}

	l := &Loader[K, V]{
		source:  source,
		cloner:  NopValueCloner[V]{},
		context: context.Background,
	}
	for _, o := range opts {
		o.apply(l)
	}
	if l.configErr != nil {
		return nil, l.configErr
	}

	if l.cache == nil {
		l.cache = newMapCache[K, V]()
	}
	if l.scheduler == nil {
		l.scheduler = &TimerScheduler{}
	}
	return l, nil
}

// LoadThunk returns the thunk for the key, creating a pending request and
// enqueueing it into the open batch on a cache miss. It never blocks; await
// the returned thunk for the value.
func (l *Loader[K, V]) LoadThunk(key K) Thunk[V] {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.cache.Get(key); ok {
		return t
	}

	t := Thunk[V]{p: newPromise[V](l.cloner)}
	l.cache.Set(key, t)
	l.enqueue(key, t.p)
	return t
}

// Load retrieves the value for the key, batching the fetch together with
// other Load calls issued while the current batch is open.
func (l *Loader[K, V]) Load(ctx context.Context, key K) (V, error) {
	return l.LoadThunk(key).Await(ctx)
}

// LoadMany retrieves the values for all keys. Every key joins the same open
// batch, so the whole call costs a minimal number of source fetches.
// The returned slices are positional: errs[i] is non-nil when keys[i] failed.
func (l *Loader[K, V]) LoadMany(ctx context.Context, keys []K) ([]V, []error) {
	thunks := make([]Thunk[V], len(keys))
	for i, key := range keys {
		thunks[i] = l.LoadThunk(key)
	}

	values := make([]V, len(keys))
	errs := make([]error, len(keys))
	for i, t := range thunks {
		values[i], errs[i] = t.Await(ctx)
	}
	return values, errs
}

// Clear drops the cache entry for the key so that the next Load fetches it
// again. A batch that already contains the key still settles the old thunk
// for its callers.
func (l *Loader[K, V]) Clear(key K) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache.Delete(key)
}

// ClearAll drops every cache entry.
func (l *Loader[K, V]) ClearAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache.Clear()
}

// Prime seeds the cache with a known value without triggering a fetch.
// It returns false and leaves the cache untouched when the key is already
// cached. To overwrite an existing entry, Clear the key first.
func (l *Loader[K, V]) Prime(key K, value V) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.cache.Get(key); ok {
		return false
	}

	p := newPromise[V](l.cloner)
	p.resolve(value)
	l.cache.Set(key, Thunk[V]{p: p})
	return true
}

// Dispatch closes and dispatches the currently open batch immediately.
// Hosts using ManualScheduler must call it (or ManualScheduler.Dispatch)
// once they finished collecting loads; with other schedulers it merely
// shortens the wait.
func (l *Loader[K, V]) Dispatch() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closeBatch(l.current)
}
