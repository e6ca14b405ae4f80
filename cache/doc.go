// Package cache provides thunk cache adapters for the batch-loader library.
//
// This package contains adapters such as KeyMappedCache, which normalizes
// natural keys into stable cache keys, and FunctionsCache, which allows
// building custom cache implementations using function callbacks.
package cache
