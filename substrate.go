package registry

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by substrates when a key has no entry.
var ErrKeyNotFound = errors.New("registry: key not found")

// Substrate is the persistent key-value collaborator the registry writes
// through. Every persisted value is a plain string; the registry never
// hands a substrate structured data.
//
// Implementations must be safe for concurrent use, but the registry layers
// no atomicity on top: a value entry and its expiration companion are
// written and removed as two independent operations.
type Substrate interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous entry.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the entry under key. Removing an absent key is a
	// no-op, not an error.
	Remove(ctx context.Context, key string) error

	// Keys returns a snapshot of every stored key in unspecified order.
	Keys(ctx context.Context) ([]string, error)
}
