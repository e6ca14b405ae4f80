package memcache

import (
	"sync"

	batchloader "github.com/karupanerura/batch-loader"
)

type bucket[K batchloader.KeyConstraint, V batchloader.ValueConstraint] struct {
	m  map[K]batchloader.Thunk[V]
	mu sync.RWMutex
}

// New creates a new in-memory thunk cache.
// The cache can be distributed across multiple buckets for reduced lock
// contention; keys are distributed across the buckets with a hash function.
func New[K batchloader.KeyConstraint, V batchloader.ValueConstraint](opts ...Option[K, V]) batchloader.ThunkCache[K, V] {
	options := defaultOptions[K, V]()
	for _, opt := range opts {
		opt.apply(&options)
	}

	if options.bucketsSize == 1 {
		return &cache[K, V]{
			bucket: bucket[K, V]{m: map[K]batchloader.Thunk[V]{}},
		}
	}

	buckets := make([]*bucket[K, V], options.bucketsSize)
	for i := range buckets {
		buckets[i] = &bucket[K, V]{m: map[K]batchloader.Thunk[V]{}}
	}

	return &distributedCache[K, V]{
		buckets: buckets,
		hashKey: options.hashKey,
	}
}

type distributedCache[K batchloader.KeyConstraint, V batchloader.ValueConstraint] struct {
	buckets []*bucket[K, V]
	hashKey func(K) uint64
}

var _ batchloader.ThunkCache[uint8, struct{}] = (*distributedCache[uint8, struct{}])(nil)

// resolveBucket returns the bucket that corresponds to the given key.
func (c *distributedCache[K, V]) resolveBucket(key K) *bucket[K, V] {
	return c.buckets[c.hashKey(key)%uint64(len(c.buckets))]
}

func (c *distributedCache[K, V]) Get(key K) (batchloader.Thunk[V], bool) {
	bucket := c.resolveBucket(key)
	bucket.mu.RLock()
	defer bucket.mu.RUnlock()

	t, ok := bucket.m[key]
	return t, ok
}

func (c *distributedCache[K, V]) Set(key K, t batchloader.Thunk[V]) {
	bucket := c.resolveBucket(key)
	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	bucket.m[key] = t
}

func (c *distributedCache[K, V]) Delete(key K) {
	bucket := c.resolveBucket(key)
	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	delete(bucket.m, key)
}

func (c *distributedCache[K, V]) Clear() {
	for _, bucket := range c.buckets {
		bucket.mu.Lock()
		bucket.m = map[K]batchloader.Thunk[V]{}
		bucket.mu.Unlock()
	}
}

type cache[K batchloader.KeyConstraint, V batchloader.ValueConstraint] struct {
	bucket[K, V]
}

var _ batchloader.ThunkCache[uint8, struct{}] = (*cache[uint8, struct{}])(nil)

func (c *cache[K, V]) Get(key K) (batchloader.Thunk[V], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.m[key]
	return t, ok
}

func (c *cache[K, V]) Set(key K, t batchloader.Thunk[V]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m[key] = t
}

func (c *cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.m, key)
}

func (c *cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m = map[K]batchloader.Thunk[V]{}
}
