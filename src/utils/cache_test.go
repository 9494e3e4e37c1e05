package utils

import (
	"testing"
	"time"
)

// -----------------------------------------------------------------------------

func TestTTLCacheHitAndMiss(t *testing.T) {
	cache := NewTTLCache[int](time.Minute)

	if _, ok := cache.Get("missing"); ok {
		t.Error("empty cache should miss")
	}

	cache.Put("a", 42)
	got, ok := cache.Get("a")
	if !ok || got != 42 {
		t.Errorf("Get = %d,%v, want 42,true", got, ok)
	}
}

// -----------------------------------------------------------------------------

func TestTTLCacheExpiry(t *testing.T) {
	cache := NewTTLCache[string](10 * time.Millisecond)

	cache.Put("a", "x")
	time.Sleep(25 * time.Millisecond)

	if _, ok := cache.Get("a"); ok {
		t.Error("entry should have expired")
	}
}

// -----------------------------------------------------------------------------

func TestTTLCachePurge(t *testing.T) {
	cache := NewTTLCache[int](10 * time.Millisecond)

	cache.Put("old", 1)
	time.Sleep(25 * time.Millisecond)
	cache.Put("fresh", 2)

	removed := cache.Purge()
	if removed != 1 {
		t.Errorf("Purge removed %d entries, want 1", removed)
	}
	if cache.Len() != 1 {
		t.Errorf("Len = %d, want 1", cache.Len())
	}
	if _, ok := cache.Get("fresh"); !ok {
		t.Error("fresh entry should survive purge")
	}
}

// -----------------------------------------------------------------------------

func TestTTLCacheOverwrite(t *testing.T) {
	cache := NewTTLCache[int](time.Minute)

	cache.Put("a", 1)
	cache.Put("a", 2)

	if got, _ := cache.Get("a"); got != 2 {
		t.Errorf("Get = %d, want 2", got)
	}
	if cache.Len() != 1 {
		t.Errorf("Len = %d, want 1", cache.Len())
	}
}
