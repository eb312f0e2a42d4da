package types

import "context"

// Store is the persisted key/value storage used by the precompute and resume paths.
//
// Keys are dot-separated tokens ([A-Za-z0-9_-] per token). Values are opaque bytes.
// Implementations must return an error wrapping ErrKeyNotFound when a key is absent.
type Store interface {
	// Get returns the value stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
