// Package keyhash derives hash functions for comparable key types.
// The hashes are used to spread keys across cache buckets.
package keyhash

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/goccy/go-reflect"
)

// For returns a hash function for the key type K.
// Primitive keys hash their binary representation with FNV-1a; any other
// comparable kind falls back to hashing its formatted representation.
func For[K comparable]() func(K) uint64 {
	var zero K
	switch reflect.TypeOf(&zero).Elem().Kind() {
	case reflect.String:
		return func(key K) uint64 {
			return hashBytes([]byte(reflect.ValueOf(key).String()))
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(key K) uint64 {
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], uint64(reflect.ValueOf(key).Int()))
			return hashBytes(b[:])
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(key K) uint64 {
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], reflect.ValueOf(key).Uint())
			return hashBytes(b[:])
		}

	case reflect.Float32, reflect.Float64:
		return func(key K) uint64 {
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], math.Float64bits(reflect.ValueOf(key).Float()))
			return hashBytes(b[:])
		}

	case reflect.Bool:
		return func(key K) uint64 {
			var b [1]byte
			if reflect.ValueOf(key).Bool() {
				b[0] = 1
			}
			return hashBytes(b[:])
		}

	default:
		return func(key K) uint64 {
			return hashBytes(fmt.Appendf(nil, "%v", key))
		}
	}
}

func hashBytes(b []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}
