package cache

import (
	"testing"
	"time"
)

func TestService_SetAndGet(t *testing.T) {
	c := New[string](3, time.Hour)

	c.Set("disk usage", "prompt1")
	c.Set("memory", "prompt2")

	got, ok := c.Get("disk usage")
	if !ok || got != "prompt1" {
		t.Errorf("Get(disk usage) = %q, %v; want prompt1", got, ok)
	}
}

func TestService_NormalizedKeys(t *testing.T) {
	c := New[string](3, time.Hour)

	c.Set("  Disk   Usage ", "prompt")

	if got, ok := c.Get("disk usage"); !ok || got != "prompt" {
		t.Errorf("Get(disk usage) = %q, %v; want prompt", got, ok)
	}
}

func TestService_Eviction(t *testing.T) {
	c := New[int](2, time.Hour)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // Should evict "a"

	if _, ok := c.Get("a"); ok {
		t.Error("Expected 'a' to be evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("Expected 'b' to exist")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("Expected 'c' to exist")
	}
}

func TestService_GetRefreshesRecency(t *testing.T) {
	c := New[int](2, time.Hour)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")    // "b" is now least recently used
	c.Set("c", 3) // Should evict "b"

	if _, ok := c.Get("b"); ok {
		t.Error("Expected 'b' to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("Expected 'a' to exist")
	}
}

func TestService_UpdateExisting(t *testing.T) {
	c := New[string](2, time.Hour)

	c.Set("key", "value1")
	c.Set("key", "value2")

	if got, _ := c.Get("key"); got != "value2" {
		t.Errorf("Get(key) = %q; want value2", got)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d; want 1", c.Size())
	}
}

func TestService_Expiry(t *testing.T) {
	c := New[string](2, time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("key", "value")
	now = now.Add(2 * time.Minute)

	if _, ok := c.Get("key"); ok {
		t.Error("Expected stale entry to be dropped")
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %d; want 0", c.Size())
	}
}

func TestService_ClearAndStats(t *testing.T) {
	c := New[int](5, 0)

	c.Set("a", 1)
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	if stats.Size != 1 || stats.MaxSize != 5 || stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Stats() = %+v", stats)
	}

	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() after Clear = %d; want 0", c.Size())
	}
}
