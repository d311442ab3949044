package cache

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestTTLGetImmediatelyAfterSet(t *testing.T) {
	clock := newFakeClock()
	store := NewTTLWithClock[string](clock.Now)

	store.Set("byId:42", "event-42", 30*time.Second)

	value, ok := store.Get("byId:42")
	if !ok || value != "event-42" {
		t.Fatalf("Get() = %q, %v; want event-42, true", value, ok)
	}
}

func TestTTLExpiresAtDeadlineWithoutResurrection(t *testing.T) {
	clock := newFakeClock()
	store := NewTTLWithClock[int](clock.Now)

	store.Set("search:abc", 7, 30*time.Second)

	clock.Advance(29 * time.Second)
	if _, ok := store.Get("search:abc"); !ok {
		t.Fatalf("Get() before deadline expected hit")
	}

	clock.Advance(time.Second)
	if _, ok := store.Get("search:abc"); ok {
		t.Fatalf("Get() at deadline expected miss")
	}
	if store.Len() != 0 {
		t.Fatalf("Len() = %d, expired entry should be evicted on read", store.Len())
	}

	clock.Advance(-time.Hour)
	if _, ok := store.Get("search:abc"); ok {
		t.Fatalf("Get() after eviction must stay absent")
	}
}

func TestTTLWithoutExpiryLivesIndefinitely(t *testing.T) {
	clock := newFakeClock()
	store := NewTTLWithClock[string](clock.Now)

	store.Set("filter-dictionaries", "v", 0)
	store.Set("negative", "v", -time.Second)

	for i := 0; i < 5; i++ {
		clock.Advance(24 * time.Hour)
		if _, ok := store.Get("filter-dictionaries"); !ok {
			t.Fatalf("Get() #%d expected hit for entry without ttl", i)
		}
		if _, ok := store.Get("negative"); !ok {
			t.Fatalf("Get() #%d expected hit for entry with negative ttl", i)
		}
	}
}

func TestTTLExpiredUnreadEntriesStayUntilRead(t *testing.T) {
	clock := newFakeClock()
	store := NewTTLWithClock[string](clock.Now)

	store.Set("a", "1", time.Second)
	store.Set("b", "2", time.Second)
	clock.Advance(time.Minute)

	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (no background sweep)", store.Len())
	}
	store.Get("a")
	if store.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after reading one expired key", store.Len())
	}
}

func TestTTLOverwriteResetsExpiry(t *testing.T) {
	clock := newFakeClock()
	store := NewTTLWithClock[string](clock.Now)

	store.Set("k", "old", time.Second)
	store.Set("k", "new", 0)
	clock.Advance(time.Hour)

	value, ok := store.Get("k")
	if !ok || value != "new" {
		t.Fatalf("Get() = %q, %v; want new, true", value, ok)
	}

	store.Delete("k")
	if _, ok := store.Get("k"); ok {
		t.Fatalf("Get() after Delete expected miss")
	}
}

func TestTTLConcurrentAccess(t *testing.T) {
	store := NewTTL[int]()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				store.Set("shared", i, time.Millisecond)
				store.Get("shared")
			}
		}(i)
	}
	wg.Wait()
}
