package batchloader

import "sync"

// mapCache is the default ThunkCache backend: a single map guarded by an
// RWMutex. It is suitable for the common case of one loader per request.
type mapCache[K KeyConstraint, V ValueConstraint] struct {
	mu sync.RWMutex
	m  map[K]Thunk[V]
}

var _ ThunkCache[uint8, struct{}] = (*mapCache[uint8, struct{}])(nil)

func newMapCache[K KeyConstraint, V ValueConstraint]() *mapCache[K, V] {
	return &mapCache[K, V]{m: map[K]Thunk[V]{}}
}

func (c *mapCache[K, V]) Get(key K) (Thunk[V], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.m[key]
	return t, ok
}

func (c *mapCache[K, V]) Set(key K, t Thunk[V]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = t
}

func (c *mapCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
}

func (c *mapCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = map[K]Thunk[V]{}
}

// nopCache never stores anything. It backs WithoutCache.
type nopCache[K KeyConstraint, V ValueConstraint] struct{}

var _ ThunkCache[uint8, struct{}] = nopCache[uint8, struct{}]{}

func (nopCache[K, V]) Get(K) (Thunk[V], bool) { return Thunk[V]{}, false }
func (nopCache[K, V]) Set(K, Thunk[V])        {}
func (nopCache[K, V]) Delete(K)               {}
func (nopCache[K, V]) Clear()                 {}
