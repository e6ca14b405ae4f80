// Package cachetest provides generic test cases for thunk cache implementations.
package cachetest

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	batchloader "github.com/karupanerura/batch-loader"
	"golang.org/x/sync/errgroup"
)

// TestConsistency runs the common consistency cases against the cache
// implementation returned by the provider. The provider must return a fresh,
// empty cache and a release function for each call.
func TestConsistency(t *testing.T, provider func() (batchloader.ThunkCache[uint8, int8], func())) {
	t.Run("Consistency", func(t *testing.T) {
		t.Parallel()

		t.Run("SetAndGet", func(t *testing.T) {
			t.Parallel()

			cache, release := provider()
			defer release()

			patterns := []struct {
				key   uint8
				value int8
			}{
				{0, 1},
				{1, 2},
				{2, 3},
				{3, 4},
				{4, 5},
				{251, 124},
				{252, 125},
				{253, 126},
				{254, 127},
				{255, -128},
			}
			rand.Shuffle(len(patterns), func(i, j int) {
				patterns[i], patterns[j] = patterns[j], patterns[i]
			})

			var eg errgroup.Group
			for _, pattern := range patterns {
				eg.Go(func() error {
					if _, ok := cache.Get(pattern.key); ok {
						return fmt.Errorf("unexpected exists entry for key %d", pattern.key)
					}
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				t.Fatal(err)
			}

			eg = errgroup.Group{}
			for _, pattern := range patterns {
				eg.Go(func() error {
					cache.Set(pattern.key, batchloader.ResolvedThunk(pattern.value))
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				t.Fatal(err)
			}

			eg = errgroup.Group{}
			values := make([]int8, len(patterns))
			for i, pattern := range patterns {
				eg.Go(func() error {
					thunk, ok := cache.Get(pattern.key)
					if !ok {
						return fmt.Errorf("missing entry for key %d", pattern.key)
					}

					value, err := thunk.Await(t.Context())
					if err != nil {
						return err
					}
					values[i] = value
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				t.Fatal(err)
			}

			for i, pattern := range patterns {
				if df := cmp.Diff(pattern.value, values[i]); df != "" {
					t.Errorf("patterns[%d] key=%d value diff=%s", i, pattern.key, df)
				}
			}
		})

		t.Run("ThunkIdentity", func(t *testing.T) {
			t.Parallel()

			cache, release := provider()
			defer release()

			thunk := batchloader.ResolvedThunk[int8](1)
			cache.Set(1, thunk)

			got, ok := cache.Get(1)
			if !ok {
				t.Fatal("missing entry for key 1")
			}
			if got != thunk {
				t.Error("cached thunk must be reference-identical to the stored thunk")
			}
		})

		t.Run("Overwrite", func(t *testing.T) {
			t.Parallel()

			cache, release := provider()
			defer release()

			cache.Set(1, batchloader.ResolvedThunk[int8](1))
			cache.Set(1, batchloader.ResolvedThunk[int8](2))

			thunk, ok := cache.Get(1)
			if !ok {
				t.Fatal("missing entry for key 1")
			}
			value, err := thunk.Await(t.Context())
			if err != nil {
				t.Fatal(err)
			}
			if value != 2 {
				t.Errorf("got %d, want 2", value)
			}
		})

		t.Run("Delete", func(t *testing.T) {
			t.Parallel()

			cache, release := provider()
			defer release()

			cache.Set(1, batchloader.ResolvedThunk[int8](1))
			cache.Set(2, batchloader.ResolvedThunk[int8](2))
			cache.Delete(1)

			if _, ok := cache.Get(1); ok {
				t.Error("entry for key 1 should be deleted")
			}
			if _, ok := cache.Get(2); !ok {
				t.Error("entry for key 2 should survive")
			}
		})

		t.Run("Clear", func(t *testing.T) {
			t.Parallel()

			cache, release := provider()
			defer release()

			keys := []uint8{1, 2, 3, 251, 252, 253}
			for i, key := range keys {
				cache.Set(key, batchloader.ResolvedThunk(int8(i)))
			}
			cache.Clear()

			for _, key := range keys {
				if _, ok := cache.Get(key); ok {
					t.Errorf("entry for key %d should be cleared", key)
				}
			}
		})
	})
}
