package source

import (
	"context"
	"errors"

	batchloader "github.com/karupanerura/batch-loader"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is the per-key error for keys a map-shaped source has no entry for.
var ErrNotFound = errors.New("no result for key in batch source")

// BatchFunc is a batch source that uses a function to fetch the values.
type BatchFunc[K batchloader.KeyConstraint, V batchloader.ValueConstraint] func(context.Context, []K) ([]batchloader.Result[V], error)

var _ batchloader.BatchSource[uint8, struct{}] = (BatchFunc[uint8, struct{}])(nil)

// FetchAll calls the function.
func (f BatchFunc[K, V]) FetchAll(ctx context.Context, keys []K) ([]batchloader.Result[V], error) {
	return f(ctx, keys)
}

// MapFunc is a batch source that uses a map-returning function to fetch the
// values. The positional result contract is satisfied by this adapter: keys
// absent from the returned map yield ErrNotFound results at their positions.
type MapFunc[K batchloader.KeyConstraint, V batchloader.ValueConstraint] func(context.Context, []K) (map[K]V, error)

var _ batchloader.BatchSource[uint8, struct{}] = (MapFunc[uint8, struct{}])(nil)

// FetchAll calls the function and spreads the returned map over the key
// positions.
func (f MapFunc[K, V]) FetchAll(ctx context.Context, keys []K) ([]batchloader.Result[V], error) {
	m, err := f(ctx, keys)
	if err != nil {
		return nil, err
	}

	results := make([]batchloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := m[key]; ok {
			results[i] = batchloader.Result[V]{Value: v}
		} else {
			results[i] = batchloader.Result[V]{Err: ErrNotFound}
		}
	}
	return results, nil
}

// ParallelSource is a batch source that fans a batch out to a per-key fetch
// function with bounded concurrency. It is useful when no batch endpoint
// exists but single-key fetches may run in parallel. A failed fetch is
// reported at its own position and does not affect sibling keys.
type ParallelSource[K batchloader.KeyConstraint, V batchloader.ValueConstraint] struct {
	// Fetch loads a single key.
	Fetch func(context.Context, K) (V, error)

	// Limit bounds the number of concurrent Fetch calls.
	// If not positive, all keys are fetched concurrently.
	Limit int
}

var _ batchloader.BatchSource[uint8, struct{}] = (*ParallelSource[uint8, struct{}])(nil)

// FetchAll fetches every key with the Fetch function, at most Limit at a time.
func (s *ParallelSource[K, V]) FetchAll(ctx context.Context, keys []K) ([]batchloader.Result[V], error) {
	results := make([]batchloader.Result[V], len(keys))

	var eg errgroup.Group
	if s.Limit > 0 {
		eg.SetLimit(s.Limit)
	}
	for i, key := range keys {
		eg.Go(func() error {
			v, err := s.Fetch(ctx, key)
			if err != nil {
				results[i] = batchloader.Result[V]{Err: err}
			} else {
				results[i] = batchloader.Result[V]{Value: v}
			}
			return nil
		})
	}

	// per-key failures are positional, so the group itself never errors
	_ = eg.Wait()
	return results, nil
}

// LintSource is a batch source wrapper that is used for linting purposes.
// It validates the behavior of the wrapped source implementation, ensuring it
// properly follows the BatchSource contract, and panics on violations.
type LintSource[K batchloader.KeyConstraint, V batchloader.ValueConstraint] struct {
	Source batchloader.BatchSource[K, V]
}

var _ batchloader.BatchSource[uint8, struct{}] = (*LintSource[uint8, struct{}])(nil)

// FetchAll retrieves the results from the wrapped source.
// In particular, it checks that FetchAll returns one result per key and that
// results are not mixed with a whole-batch error.
func (s *LintSource[K, V]) FetchAll(ctx context.Context, keys []K) ([]batchloader.Result[V], error) {
	results, err := s.Source.FetchAll(ctx, keys)
	if err != nil {
		if results != nil {
			panic("must not return results together with an error")
		}
		return nil, err
	}
	if len(results) != len(keys) {
		panic("must return one result per key in the same order as the keys")
	}
	return results, nil
}
