// Package memcache provides an in-memory implementation of the
// batchloader.ThunkCache interface.
//
// The cache can be distributed across multiple buckets so that a loader
// shared by many goroutines within one scope does not contend on a single
// lock. Keys are assigned to buckets with a configurable hash function.
package memcache
