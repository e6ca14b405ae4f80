// Package source provides adapters and utilities for implementing the
// BatchSource interface of the batch-loader library.
//
// This package contains adapters such as BatchFunc and MapFunc, which build
// sources from plain functions, ParallelSource, which fans a batch out to a
// per-key fetch function, and LintSource, which validates that a source
// implementation follows the FetchAll contract.
package source
