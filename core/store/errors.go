package store

import "errors"

var (
	// ErrKeyNotFound is returned when the requested key has no stored value.
	ErrKeyNotFound = errors.New("store: key not found")
	// ErrEmptyKey is returned when an operation is attempted with an empty key.
	ErrEmptyKey = errors.New("store: empty key")
	// ErrPersistFailed is returned when writing the store to disk fails.
	ErrPersistFailed = errors.New("store: failed to persist")
)
