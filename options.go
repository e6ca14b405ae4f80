package batchloader

import (
	"context"

	"github.com/karupanerura/batch-loader/internal/ctxlock"
)

// Option is the interface for the options of the Loader.
type Option[K KeyConstraint, V ValueConstraint] interface {
	apply(*Loader[K, V])
}

type optionFunc[K KeyConstraint, V ValueConstraint] func(*Loader[K, V])

func (f optionFunc[K, V]) apply(l *Loader[K, V]) {
	f(l)
}

// WithCache sets the thunk cache backend of the loader.
// The default cache is a plain in-memory map; see the cache packages for
// sharded and key-normalizing backends.
func WithCache[K KeyConstraint, V ValueConstraint](cache ThunkCache[K, V]) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		if cache == nil {
			l.recordConfigError("cache must not be nil")
			return
		}
		l.cache = cache
	})
}

// WithoutCache disables memoization: every load creates a fresh pending
// request while batching still applies, so duplicate keys may appear within
// one batch. Prime and Clear become no-ops.
func WithoutCache[K KeyConstraint, V ValueConstraint]() Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		l.cache = nopCache[K, V]{}
	})
}

// WithScheduler sets the flush scheduler of the loader.
// The default scheduler is a TimerScheduler with DefaultWait.
func WithScheduler[K KeyConstraint, V ValueConstraint](scheduler FlushScheduler) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		if scheduler == nil {
			l.recordConfigError("scheduler must not be nil")
			return
		}
		l.scheduler = scheduler
	})
}

// WithMaxBatchSize bounds the number of keys in a single source fetch.
// A batch that reaches the limit is dispatched at once and a new batch is
// opened transparently. By default batches are unbounded.
func WithMaxBatchSize[K KeyConstraint, V ValueConstraint](size int) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		if size <= 0 {
			l.recordConfigError("max batch size must be a natural number")
			return
		}
		l.maxBatchSize = size
	})
}

// WithErrorEviction makes the loader evict keys whose requests were rejected,
// so a later Load retries them against the source. By default failed thunks
// stay cached like any other outcome, and a caller must Clear the key to
// retry.
func WithErrorEviction[K KeyConstraint, V ValueConstraint]() Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		l.evictOnError = true
	})
}

// WithSerializedDispatch makes the loader keep at most one batch in flight:
// a closed batch waits for the previous batch's fetch to finish before it
// calls the source. By default successive batches may be fetched
// concurrently.
func WithSerializedDispatch[K KeyConstraint, V ValueConstraint]() Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		l.inFlight = ctxlock.New()
	})
}

// WithValueCloner sets the value cloner used when one resolved value fans out
// to multiple receivers. The default is NopValueCloner, which hands every
// receiver the same value.
func WithValueCloner[K KeyConstraint, V ValueConstraint](cloner ValueCloner[V]) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		if cloner == nil {
			l.recordConfigError("value cloner must not be nil")
			return
		}
		l.cloner = cloner
	})
}

// WithBackgroundContextProvider sets the context provider for batch fetches.
// The provider is called once per dispatched batch. The default provider is
// context.Background, so a batch that dispatches after its scope ended still
// completes and its results are discarded with the loader; supply a provider
// tied to the request context to cancel the fetch on scope teardown instead.
func WithBackgroundContextProvider[K KeyConstraint, V ValueConstraint](provider func() context.Context) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		if provider == nil {
			l.recordConfigError("context provider must not be nil")
			return
		}
		l.context = provider
	})
}

// recordConfigError keeps the first invalid option for NewLoader to report.
func (l *Loader[K, V]) recordConfigError(reason string) {
	if l.configErr == nil {
		l.configErr = &ConfigurationError{Reason: reason}
	}
}
