// Package memstore provides an in-memory registry substrate.
//
// It is the natural default for tests and for processes that do not need
// their registry to outlive them. Entries live in a sharded concurrent
// map, so a single store can back many registries across goroutines.
package memstore

import (
	"context"

	registry "github.com/lesichkovm/registryjs"
	"github.com/lesichkovm/registryjs/pkg/cmap"
)

// Store is an in-memory substrate.
type Store struct {
	entries *cmap.Map[string]
}

// New creates an empty in-memory substrate.
func New() *Store {
	return &Store{entries: cmap.New[string]()}
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	v, ok := s.entries.Get(key)
	if !ok {
		return "", registry.ErrKeyNotFound
	}
	return v, nil
}

// Set stores value under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.entries.Set(key, value)
	return nil
}

// Remove deletes the entry under key, if any.
func (s *Store) Remove(_ context.Context, key string) error {
	s.entries.Delete(key)
	return nil
}

// Keys returns a snapshot of all stored keys.
func (s *Store) Keys(_ context.Context) ([]string, error) {
	return s.entries.Keys(), nil
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return s.entries.Count()
}
