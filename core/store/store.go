package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known keys for the storefront's persisted client state.
const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyCart  = "cart"
)

// Store defines the durable key-value persistence interface.
// Implementations must be safe for concurrent use within a process.
type Store interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}

// GetJSON reads the value under key and unmarshals it into v.
// Returns ErrKeyNotFound when the key is absent; a JSON decode failure is
// reported as an error wrapping the underlying cause so callers can decide
// to fail open to an empty state.
func GetJSON[T any](ctx context.Context, s Store, key string, v *T) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("store: decode %q: %w", key, err)
	}
	return nil
}

// SetJSON marshals v and stores it under key.
func SetJSON[T any](ctx context.Context, s Store, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %q: %w", key, err)
	}
	return s.Set(ctx, key, data)
}

// IsNotFound reports whether err indicates an absent key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
