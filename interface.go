package batchloader

import (
	"context"
)

// KeyConstraint is an interface for key constraints.
type KeyConstraint interface {
	comparable
}

// ValueConstraint is an interface for value constraints.
type ValueConstraint interface {
	any
}

// Result is one position of a batch source response.
// A non-nil Err marks the position as failed; the failure is delivered only
// to the callers waiting on that position's key and never affects siblings.
type Result[V ValueConstraint] struct {
	// Value is the fetched value. It is meaningful only when Err is nil.
	Value V

	// Err is the per-key failure for this position, if any.
	Err error
}

// BatchSource is an interface for fetching many keys in one call.
// This is the only point where persistence or network I/O happens; the loader
// itself never touches a backend.
type BatchSource[K KeyConstraint, V ValueConstraint] interface {
	// FetchAll retrieves the values for the given keys.
	// It must return exactly one Result per key, in the same order as the
	// input keys. A result slice of a different length fails the whole batch
	// with *BatchMismatchError.
	// A non-nil error fails the whole batch with *BatchFetchError; the loader
	// never retries on its own.
	FetchAll(context.Context, []K) ([]Result[V], error)
}

// ThunkCache is an interface for a thunk cache backend.
// Implementations must be thread-safe.
//
// A cache belongs to exactly one Loader instance and lives exactly as long as
// it: entries are removed only by Delete and Clear, never expired.
type ThunkCache[K KeyConstraint, V ValueConstraint] interface {
	// Get retrieves the thunk cached for the key, if any.
	Get(K) (Thunk[V], bool)

	// Set stores the thunk for the key.
	// If the key already exists, it should overwrite the existing thunk.
	Set(K, Thunk[V])

	// Delete removes the entry for the key.
	Delete(K)

	// Clear removes all entries.
	Clear()
}
