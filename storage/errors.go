package storage

import "errors"

var (
	// ErrLoadFailed is returned when a persisted snapshot cannot be read or decoded.
	ErrLoadFailed = errors.New("storage: failed to load snapshot")

	// ErrSaveFailed is returned when a snapshot cannot be persisted. The
	// previously persisted state remains authoritative.
	ErrSaveFailed = errors.New("storage: failed to save snapshot")
)
