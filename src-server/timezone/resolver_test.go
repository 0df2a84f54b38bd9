package timezone_test

import (
	"tangocal/src-server/timezone"
	"testing"
	"time"
)

func TestResolveRejectsBadInput(t *testing.T) {
	resolver := timezone.NewResolver(nil)

	if got := resolver.Resolve(time.Time{}, "America/New_York"); got != nil {
		t.Error("zero instant should resolve to nil")
	}
	if got := resolver.Resolve(time.Now(), ""); got != nil {
		t.Error("blank zone should resolve to nil")
	}
	if got := resolver.Resolve(time.Now(), "Not/AZone"); got != nil {
		t.Error("unknown zone should resolve to nil")
	}
}

func TestResolveWinter(t *testing.T) {
	resolver := timezone.NewResolver(nil)

	utc := time.Date(2026, time.January, 6, 23, 30, 0, 0, time.UTC)
	got := resolver.Resolve(utc, "America/New_York")
	if got == nil {
		t.Fatal("expected a display time")
	}
	if got.LocalTime != "2026-01-06T18:30:00" {
		t.Errorf("local time = %s", got.LocalTime)
	}
	if got.TimezoneAbbr != "EST" {
		t.Errorf("abbr = %s", got.TimezoneAbbr)
	}
	if got.UTCOffset != -300 {
		t.Errorf("offset = %d", got.UTCOffset)
	}
	if got.IsDST {
		t.Error("January should not be DST")
	}
	if got.Disambiguation != "" {
		t.Errorf("disambiguation = %s", got.Disambiguation)
	}
}

func TestResolveSummer(t *testing.T) {
	resolver := timezone.NewResolver(nil)

	utc := time.Date(2026, time.July, 7, 23, 30, 0, 0, time.UTC)
	got := resolver.Resolve(utc, "America/New_York")
	if got == nil {
		t.Fatal("expected a display time")
	}
	if got.LocalTime != "2026-07-07T19:30:00" {
		t.Errorf("local time = %s", got.LocalTime)
	}
	if got.TimezoneAbbr != "EDT" {
		t.Errorf("abbr = %s", got.TimezoneAbbr)
	}
	if got.UTCOffset != -240 {
		t.Errorf("offset = %d", got.UTCOffset)
	}
	if !got.IsDST {
		t.Error("July should be DST")
	}
}

func TestResolveSpringForwardGap(t *testing.T) {
	resolver := timezone.NewResolver(nil)

	// 07:30Z is 03:30 EDT, the first hour after the 2026-03-08 spring-forward
	// in New York; its naive pre-transition reading (2:30) never existed
	gap := time.Date(2026, time.March, 8, 7, 30, 0, 0, time.UTC)

	got := resolver.Resolve(gap, "America/New_York")
	if got == nil {
		t.Fatal("expected a display time")
	}
	if got.Disambiguation != timezone.DisambiguationGapAdjusted {
		t.Errorf("disambiguation = %q", got.Disambiguation)
	}
	if got.LocalTime != "2026-03-08T03:30:00" {
		t.Errorf("local time = %s, want naive reading plus one hour", got.LocalTime)
	}
	if !got.IsDST {
		t.Error("gap-adjusted instant should report DST")
	}

	// one hour later the shadow has passed and nothing is flagged
	after := resolver.Resolve(gap.Add(time.Hour), "America/New_York")
	if after == nil {
		t.Fatal("expected a display time")
	}
	if after.Disambiguation != "" {
		t.Errorf("instant past the shadow flagged: %q", after.Disambiguation)
	}
}

func TestResolveCacheIdempotent(t *testing.T) {
	resolver := timezone.NewResolver(nil)

	utc := time.Date(2026, time.January, 6, 23, 30, 0, 0, time.UTC)
	first := resolver.Resolve(utc, "America/New_York")
	if first == nil {
		t.Fatal("expected a display time")
	}

	// mutating the returned value must not poison the cache
	first.IsDST = true
	first.UTCOffset = 999

	second := resolver.Resolve(utc, "America/New_York")
	if second == nil {
		t.Fatal("expected a display time")
	}
	if second.IsDST || second.UTCOffset != -300 {
		t.Errorf("cached value changed between calls: %+v", second)
	}

	hits, _ := resolver.Cache().Stats()
	if hits == 0 {
		t.Error("second resolve should be served from cache")
	}
}
