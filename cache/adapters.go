package cache

import (
	batchloader "github.com/karupanerura/batch-loader"
)

// KeyMappedCache is a thunk cache keyed by a normalized form of the natural
// key. Use it when the natural key is not a stable map key on its own, such
// as a pointer or a compound value identified by one of its fields: without
// normalization, two structurally equal but distinct keys would silently miss
// each other and defeat deduplication.
type KeyMappedCache[K batchloader.KeyConstraint, M batchloader.KeyConstraint, V batchloader.ValueConstraint] struct {
	// MapKey converts a natural key into its stable cache key.
	MapKey func(K) M

	// Cache is the underlying cache keyed by the mapped key.
	Cache batchloader.ThunkCache[M, V]
}

var _ batchloader.ThunkCache[uint8, struct{}] = (*KeyMappedCache[uint8, uint8, struct{}])(nil)

// Get retrieves the thunk cached for the mapped key, if any.
func (c *KeyMappedCache[K, M, V]) Get(key K) (batchloader.Thunk[V], bool) {
	return c.Cache.Get(c.MapKey(key))
}

// Set stores the thunk for the mapped key.
func (c *KeyMappedCache[K, M, V]) Set(key K, t batchloader.Thunk[V]) {
	c.Cache.Set(c.MapKey(key), t)
}

// Delete removes the entry for the mapped key.
func (c *KeyMappedCache[K, M, V]) Delete(key K) {
	c.Cache.Delete(c.MapKey(key))
}

// Clear removes all entries.
func (c *KeyMappedCache[K, M, V]) Clear() {
	c.Cache.Clear()
}

// FunctionsCache is a thunk cache that uses functions for its operations.
type FunctionsCache[K batchloader.KeyConstraint, V batchloader.ValueConstraint] struct {
	// GetFunc retrieves the thunk cached for the key, if any.
	GetFunc func(K) (batchloader.Thunk[V], bool)

	// SetFunc stores the thunk for the key.
	SetFunc func(K, batchloader.Thunk[V])

	// DeleteFunc removes the entry for the key.
	DeleteFunc func(K)

	// ClearFunc removes all entries.
	ClearFunc func()
}

var _ batchloader.ThunkCache[uint8, struct{}] = (*FunctionsCache[uint8, struct{}])(nil)

// Get calls the GetFunc function.
func (c *FunctionsCache[K, V]) Get(key K) (batchloader.Thunk[V], bool) {
	return c.GetFunc(key)
}

// Set calls the SetFunc function.
func (c *FunctionsCache[K, V]) Set(key K, t batchloader.Thunk[V]) {
	c.SetFunc(key, t)
}

// Delete calls the DeleteFunc function.
func (c *FunctionsCache[K, V]) Delete(key K) {
	c.DeleteFunc(key)
}

// Clear calls the ClearFunc function.
func (c *FunctionsCache[K, V]) Clear() {
	c.ClearFunc()
}
