package cmap

import (
	"fmt"
	"sort"
	"sync"
	"testing"
)

func TestBasicOperations(t *testing.T) {
	m := New[string]()

	if m.Has("a") {
		t.Error("empty map should not have key")
	}

	m.Set("a", "1")
	m.Set("b", "2")

	if v, ok := m.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}
	if !m.Has("b") {
		t.Error("Has(b) = false after Set")
	}
	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}

	m.Set("a", "updated")
	if v, _ := m.Get("a"); v != "updated" {
		t.Errorf("Get(a) after overwrite = %q", v)
	}
	if m.Count() != 2 {
		t.Errorf("Count() after overwrite = %d, want 2", m.Count())
	}

	m.Delete("a")
	if m.Has("a") {
		t.Error("Has(a) = true after Delete")
	}

	// Deleting a missing key is a no-op.
	m.Delete("never-set")
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}
}

func TestNewWithShards(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{16, 16},
		{4, 4},
		{1, 1},
		{0, DefaultShardCount},
		{-8, DefaultShardCount},
		{12, DefaultShardCount}, // not a power of two
	}

	for _, tt := range tests {
		m := NewWithShards[int](tt.in)
		if len(m.shards) != tt.want {
			t.Errorf("NewWithShards(%d) shards = %d, want %d", tt.in, len(m.shards), tt.want)
		}
	}
}

func TestKeysAndClear(t *testing.T) {
	m := New[int]()
	for i := 0; i < 10; i++ {
		m.Set(fmt.Sprintf("key-%d", i), i)
	}

	keys := m.Keys()
	if len(keys) != 10 {
		t.Fatalf("Keys() len = %d, want 10", len(keys))
	}
	sort.Strings(keys)
	if keys[0] != "key-0" || keys[9] != "key-9" {
		t.Errorf("Keys() = %v", keys)
	}

	m.Clear()
	if m.Count() != 0 {
		t.Errorf("Count() after Clear = %d", m.Count())
	}
}

func TestRange(t *testing.T) {
	m := New[int]()
	for i := 0; i < 5; i++ {
		m.Set(fmt.Sprintf("k%d", i), i)
	}

	seen := 0
	m.Range(func(string, int) bool {
		seen++
		return true
	})
	if seen != 5 {
		t.Errorf("Range visited %d entries, want 5", seen)
	}

	// Early termination.
	seen = 0
	m.Range(func(string, int) bool {
		seen++
		return false
	})
	if seen != 1 {
		t.Errorf("Range with early stop visited %d entries, want 1", seen)
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := New[int]()
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("g%d-k%d", g, i)
				m.Set(key, i)
				if v, ok := m.Get(key); !ok || v != i {
					t.Errorf("Get(%s) = %d, %v", key, v, ok)
				}
			}
		}(g)
	}
	wg.Wait()

	if m.Count() != 800 {
		t.Errorf("Count() = %d, want 800", m.Count())
	}
}
