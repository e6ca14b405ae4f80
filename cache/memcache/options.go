package memcache

import (
	batchloader "github.com/karupanerura/batch-loader"
	"github.com/karupanerura/batch-loader/internal/keyhash"
)

// DefaultBucketsSize is the default number of buckets in the cache.
// It suits a request-scoped loader shared by a moderate number of goroutines.
var DefaultBucketsSize = 16

// Option is the interface for the options of the in-memory thunk cache.
type Option[K batchloader.KeyConstraint, V batchloader.ValueConstraint] interface {
	apply(*options[K])
}

type optionFunc[K batchloader.KeyConstraint, V batchloader.ValueConstraint] func(*options[K])

func (f optionFunc[K, V]) apply(o *options[K]) {
	f(o)
}

// WithKeyHash sets the key hash function used to assign keys to buckets.
func WithKeyHash[K batchloader.KeyConstraint, V batchloader.ValueConstraint](f func(K) uint64) Option[K, V] {
	return optionFunc[K, V](func(o *options[K]) {
		o.hashKey = f
	})
}

// WithBucketsSize sets the number of buckets in the cache.
// The number of buckets must be a natural number.
func WithBucketsSize[K batchloader.KeyConstraint, V batchloader.ValueConstraint](bucketsSize int) Option[K, V] {
	if bucketsSize <= 0 {
		panic("bucketsSize must be natural number")
	}
	return optionFunc[K, V](func(o *options[K]) {
		o.bucketsSize = bucketsSize
	})
}

type options[K batchloader.KeyConstraint] struct {
	hashKey     func(K) uint64
	bucketsSize int
}

func defaultOptions[K batchloader.KeyConstraint, V batchloader.ValueConstraint]() options[K] {
	return options[K]{
		hashKey:     keyhash.For[K](),
		bucketsSize: DefaultBucketsSize,
	}
}
