package timezone

import (
	"testing"
	"time"
)

func TestDisplayCacheTTL(t *testing.T) {
	cache := NewDisplayCache(10, 20*time.Millisecond)
	utc := time.Date(2026, time.January, 6, 23, 30, 0, 0, time.UTC)

	cache.set(utc, "America/New_York", DisplayTime{LocalTime: "2026-01-06T18:30:00"})
	if got := cache.get(utc, "America/New_York"); got == nil {
		t.Fatal("fresh entry should hit")
	}

	time.Sleep(30 * time.Millisecond)
	if got := cache.get(utc, "America/New_York"); got != nil {
		t.Error("expired entry should be treated as absent")
	}
	if cache.Len() != 0 {
		t.Error("expired entry should be dropped on lookup")
	}
}

func TestDisplayCacheKeyTruncatesToMinute(t *testing.T) {
	cache := NewDisplayCache(10, time.Minute)
	base := time.Date(2026, time.January, 6, 23, 30, 0, 0, time.UTC)

	cache.set(base, "America/New_York", DisplayTime{LocalTime: "a"})
	if got := cache.get(base.Add(30*time.Second), "America/New_York"); got == nil {
		t.Error("same minute should share a cache entry")
	}
	if got := cache.get(base.Add(90*time.Second), "America/New_York"); got != nil {
		t.Error("different minute should not share a cache entry")
	}
}

func TestDisplayCacheEvictsOldestTenth(t *testing.T) {
	cache := NewDisplayCache(10, time.Hour)
	base := time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		cache.set(base.Add(time.Duration(i)*time.Minute), "UTC", DisplayTime{})
	}
	if cache.Len() != 10 {
		t.Fatalf("len = %d", cache.Len())
	}

	// at capacity: inserting one more drops the oldest entry first
	cache.set(base.Add(10*time.Minute), "UTC", DisplayTime{})
	if cache.Len() != 10 {
		t.Errorf("len after eviction = %d", cache.Len())
	}
	if got := cache.get(base, "UTC"); got != nil {
		t.Error("oldest entry should have been evicted")
	}
	if got := cache.get(base.Add(10*time.Minute), "UTC"); got == nil {
		t.Error("newest entry should be present")
	}
}

func TestDisplayCacheLazyExpiryKeepsOrderClean(t *testing.T) {
	cache := NewDisplayCache(10, 20*time.Millisecond)
	base := time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)
	expiring := base.Add(-time.Hour)

	cache.set(expiring, "UTC", DisplayTime{LocalTime: "old"})
	time.Sleep(30 * time.Millisecond)
	if got := cache.get(expiring, "UTC"); got != nil {
		t.Fatal("entry should have expired")
	}

	// refill to capacity with the expired key re-set last; the eviction for
	// the next insert must take the oldest live entry, not the re-set one
	for i := 0; i < 9; i++ {
		cache.set(base.Add(time.Duration(i)*time.Minute), "UTC", DisplayTime{})
	}
	cache.set(expiring, "UTC", DisplayTime{LocalTime: "fresh"})
	cache.set(base.Add(9*time.Minute), "UTC", DisplayTime{})

	if got := cache.get(expiring, "UTC"); got == nil || got.LocalTime != "fresh" {
		t.Error("re-set entry evicted ahead of its turn")
	}
	if got := cache.get(base, "UTC"); got != nil {
		t.Error("oldest live entry should have been evicted instead")
	}
}
