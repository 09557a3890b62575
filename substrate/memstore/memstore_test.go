package memstore

import (
	"context"
	"errors"
	"sort"
	"testing"

	registry "github.com/lesichkovm/registryjs"
)

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, registry.ErrKeyNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrKeyNotFound", err)
	}

	if err := s.Set(ctx, "a", "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, err := s.Get(ctx, "a"); err != nil || v != "1" {
		t.Errorf("Get(a) = %q, %v", v, err)
	}

	if err := s.Set(ctx, "a", "2"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	if v, _ := s.Get(ctx, "a"); v != "2" {
		t.Errorf("Get(a) after overwrite = %q", v)
	}

	if err := s.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, registry.ErrKeyNotFound) {
		t.Errorf("Get(a) after Remove error = %v, want ErrKeyNotFound", err)
	}

	// Removing a never-set key is a no-op.
	if err := s.Remove(ctx, "never"); err != nil {
		t.Errorf("Remove(never) error = %v", err)
	}
}

func TestStoreKeys(t *testing.T) {
	ctx := context.Background()
	s := New()

	want := []string{"alpha", "beta", "gamma"}
	for _, k := range want {
		if err := s.Set(ctx, k, "v"); err != nil {
			t.Fatalf("Set(%s) error = %v", k, err)
		}
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	sort.Strings(keys)
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}
