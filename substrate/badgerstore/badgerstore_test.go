package badgerstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"

	registry "github.com/lesichkovm/registryjs"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(Config{
		InMemory: true,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func TestOpenRequiresDir(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Error("Open without dir should fail")
	}
}

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

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

	if err := s.Remove(ctx, "never"); err != nil {
		t.Errorf("Remove(never) error = %v", err)
	}
}

func TestStoreKeys(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

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
	if len(keys) != 3 {
		t.Fatalf("Keys() = %v, want 3 keys", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestPersistence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfg := DefaultConfig(dir)
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Set(ctx, "durable", "yes"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(cfg)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	if v, err := s.Get(ctx, "durable"); err != nil || v != "yes" {
		t.Errorf("Get(durable) after reopen = %q, %v", v, err)
	}
}
