package cache

import (
	"fmt"
	"testing"
	"time"

	"news-engine/domain"
)

func entries(ids ...string) []domain.KnowledgeEntry {
	out := make([]domain.KnowledgeEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.KnowledgeEntry{ID: id})
	}
	return out
}

func TestQueryCache_GetSet(t *testing.T) {
	cache, err := NewQueryCache(5*time.Minute, 16)
	if err != nil {
		t.Fatalf("NewQueryCache() error = %v", err)
	}

	if _, ok := cache.Get("missing"); ok {
		t.Error("Get() on empty cache should miss")
	}

	cache.Set("key", entries("a", "b"))

	got, ok := cache.Get("key")
	if !ok {
		t.Fatal("Get() should hit after Set()")
	}
	if len(got) != 2 || got[0].ID != "a" {
		t.Errorf("Get() = %+v, want the stored entries", got)
	}
}

func TestQueryCache_TTLExpiry(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	current := base

	cache, err := NewQueryCache(5*time.Minute, 16)
	if err != nil {
		t.Fatalf("NewQueryCache() error = %v", err)
	}
	cache.WithClock(func() time.Time { return current })

	cache.Set("key", entries("a"))

	tests := []struct {
		name    string
		elapsed time.Duration
		wantHit bool
	}{
		{"immediately", 0, true},
		{"just under the TTL", 5*time.Minute - time.Second, true},
		{"exactly at the TTL", 5 * time.Minute, false},
		{"past the TTL", 5*time.Minute + time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current = base.Add(tt.elapsed)
			if _, ok := cache.Get("key"); ok != tt.wantHit {
				t.Errorf("Get() hit = %v, want %v", ok, tt.wantHit)
			}
			// Later subtests re-seed after an expiry evicted the entry.
			if !tt.wantHit {
				current = base
				cache.Set("key", entries("a"))
			}
		})
	}
}

func TestQueryCache_ExpiredEntryEvicted(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	current := base

	cache, err := NewQueryCache(time.Minute, 16)
	if err != nil {
		t.Fatalf("NewQueryCache() error = %v", err)
	}
	cache.WithClock(func() time.Time { return current })

	cache.Set("key", entries("a"))
	current = base.Add(2 * time.Minute)

	if _, ok := cache.Get("key"); ok {
		t.Fatal("expected a miss past the TTL")
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after lazy eviction", cache.Len())
	}
}

func TestQueryCache_OverwriteRefreshesTimestamp(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	current := base

	cache, err := NewQueryCache(5*time.Minute, 16)
	if err != nil {
		t.Fatalf("NewQueryCache() error = %v", err)
	}
	cache.WithClock(func() time.Time { return current })

	cache.Set("key", entries("a"))
	current = base.Add(4 * time.Minute)
	cache.Set("key", entries("b"))
	current = base.Add(8 * time.Minute)

	got, ok := cache.Get("key")
	if !ok {
		t.Fatal("expected a hit: the overwrite reset the TTL")
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("Get() = %+v, want the overwritten entries", got)
	}
}

func TestQueryCache_BoundedSize(t *testing.T) {
	cache, err := NewQueryCache(5*time.Minute, 4)
	if err != nil {
		t.Fatalf("NewQueryCache() error = %v", err)
	}

	for i := 0; i < 10; i++ {
		cache.Set(fmt.Sprintf("key-%d", i), entries("a"))
	}

	if cache.Len() > 4 {
		t.Errorf("Len() = %d, want at most 4", cache.Len())
	}
	// The most recent key survives.
	if _, ok := cache.Get("key-9"); !ok {
		t.Error("most recently written key should still be cached")
	}
}

func TestQueryCache_Purge(t *testing.T) {
	cache, err := NewQueryCache(5*time.Minute, 16)
	if err != nil {
		t.Fatalf("NewQueryCache() error = %v", err)
	}

	cache.Set("a", entries("x"))
	cache.Set("b", entries("y"))
	cache.Purge()

	if cache.Len() != 0 {
		t.Errorf("Len() = %d after Purge(), want 0", cache.Len())
	}
}

func TestNewQueryCache_Defaults(t *testing.T) {
	cache, err := NewQueryCache(0, 0)
	if err != nil {
		t.Fatalf("NewQueryCache() error = %v", err)
	}
	if cache.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", cache.ttl, DefaultTTL)
	}
}
