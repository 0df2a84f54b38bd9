package timezone_test

import (
	"tangocal/src-server/timezone"
	"testing"
	"time"
)

func TestEnrichFields(t *testing.T) {
	resolver := timezone.NewResolver(nil)

	start := time.Date(2026, time.January, 6, 23, 30, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)

	fields := resolver.EnrichFields(start, &end, "America/New_York")
	if !fields.HasTimezoneData {
		t.Fatal("expected timezone data")
	}
	if fields.DisplayStartTime != "2026-01-06T18:30:00" {
		t.Errorf("displayStartTime = %s", fields.DisplayStartTime)
	}
	if fields.DisplayEndTime == nil || *fields.DisplayEndTime != "2026-01-06T21:30:00" {
		t.Errorf("displayEndTime = %v", fields.DisplayEndTime)
	}
	if fields.VenueStartDisplay != fields.DisplayStartTime {
		t.Error("legacy and venue start fields should agree")
	}
	if fields.VenueTZ != "America/New_York" || fields.VenueAbbr != "EST" {
		t.Errorf("venueTZ/venueAbbr = %s/%s", fields.VenueTZ, fields.VenueAbbr)
	}
	if fields.Display == nil {
		t.Fatal("nested display object missing")
	}
	if fields.Display.StartTime != fields.DisplayStartTime ||
		fields.Display.UTCOffset != -300 ||
		fields.Display.IsDST {
		t.Errorf("nested display = %+v", fields.Display)
	}
}

func TestEnrichFieldsWithoutEnd(t *testing.T) {
	resolver := timezone.NewResolver(nil)

	start := time.Date(2026, time.January, 6, 23, 30, 0, 0, time.UTC)
	fields := resolver.EnrichFields(start, nil, "America/New_York")
	if !fields.HasTimezoneData {
		t.Fatal("expected timezone data")
	}
	if fields.DisplayEndTime != nil || fields.VenueEndDisplay != nil {
		t.Error("end display should stay null without an end date")
	}
	if fields.Display == nil || fields.Display.EndTime != nil {
		t.Error("nested end time should stay null without an end date")
	}
}

func TestEnrichFieldsBadZone(t *testing.T) {
	resolver := timezone.NewResolver(nil)

	start := time.Date(2026, time.January, 6, 23, 30, 0, 0, time.UTC)
	fields := resolver.EnrichFields(start, nil, "Not/AZone")
	if fields.HasTimezoneData {
		t.Error("unknown zone should degrade to hasTimezoneData=false")
	}
	if fields.Display != nil || fields.DisplayStartTime != "" {
		t.Error("no display fields should be populated for an unknown zone")
	}
}

func TestForLocation(t *testing.T) {
	cases := []struct {
		city, state, country string
		want                 string
	}{
		{"Boston", "", "", "America/New_York"},
		{"", "TX", "", "America/Chicago"},
		{"", "az", "", "America/Phoenix"},
		{"", "", "JP", "Asia/Tokyo"},
		{"Unknown City", "ZZ", "ZZ", timezone.DefaultZone},
		{"seattle", "MA", "", "America/Los_Angeles"}, // city wins over state
	}
	for _, tc := range cases {
		if got := timezone.ForLocation(tc.city, tc.state, tc.country); got != tc.want {
			t.Errorf("ForLocation(%q,%q,%q) = %s, want %s", tc.city, tc.state, tc.country, got, tc.want)
		}
	}
}
