package batchloader

import "fmt"

// ConfigurationError reports an invalid option passed to NewLoader.
type ConfigurationError struct {
	// Reason describes which option was invalid and why.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid loader configuration: " + e.Reason
}

// BatchMismatchError reports a batch source that returned the wrong number of
// results for a batch. This is a bug in the source implementation, not a data
// error, so the whole batch fails closed: every caller whose key was in the
// batch receives the same error.
type BatchMismatchError struct {
	// Keys is the number of keys the source was called with.
	Keys int

	// Results is the number of results the source returned.
	Results int
}

func (e *BatchMismatchError) Error() string {
	return fmt.Sprintf("batch source returned %d results for %d keys", e.Results, e.Keys)
}

// BatchFetchError reports a batch source call that failed as a whole.
// Every caller whose key was in the batch receives the same error.
type BatchFetchError struct {
	// Err is the failure returned (or recovered) from the batch source.
	Err error
}

func (e *BatchFetchError) Error() string {
	return "batch fetch failed: " + e.Err.Error()
}

func (e *BatchFetchError) Unwrap() error {
	return e.Err
}
