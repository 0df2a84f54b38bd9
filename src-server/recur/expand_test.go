package recur_test

import (
	"testing"
	"time"

	"tangocal/src-server/model"
	"tangocal/src-server/recur"
)

func weeklyTuesdayEvent() model.Event {
	// Tuesday 2026-01-06 23:30Z = Tuesday 18:30 in New York
	return model.Event{
		ID:               "evt-1",
		Title:            "Milonga La Yumba",
		StartDateUnixUTC: time.Date(2026, time.January, 6, 23, 30, 45, 0, time.UTC).Unix(),
		RecurrenceRule:   "FREQ=WEEKLY;BYDAY=TU",
	}
}

func TestExpandNonRecurringPassthrough(t *testing.T) {
	for _, rule := range []string{"", "   "} {
		event := weeklyTuesdayEvent()
		event.RecurrenceRule = rule

		result := recur.Expand(
			event,
			time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC),
			"America/New_York",
		)
		if result.Err != nil {
			t.Errorf("rule %q: unexpected error %v", rule, result.Err)
		}
		if len(result.Occurrences) != 1 {
			t.Fatalf("rule %q: got %d occurrences", rule, len(result.Occurrences))
		}
		got := result.Occurrences[0]
		if got.StartDateUnixUTC != event.StartDateUnixUTC {
			t.Errorf("rule %q: start date mutated", rule)
		}
		if got.Generated {
			t.Errorf("rule %q: passthrough marked as generated", rule)
		}
	}
}

func TestExpandWeeklyJanuary(t *testing.T) {
	event := weeklyTuesdayEvent()
	result := recur.Expand(
		event,
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC),
		"America/New_York",
	)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}

	wantDays := []int{6, 13, 20, 27}
	if len(result.Occurrences) != len(wantDays) {
		t.Fatalf("got %d occurrences, want %d", len(result.Occurrences), len(wantDays))
	}
	for i, occurrence := range result.Occurrences {
		start := time.Unix(occurrence.StartDateUnixUTC, 0).UTC()
		if start.Day() != wantDays[i] || start.Month() != time.January {
			t.Errorf("occurrence %d on %s, want Jan %d", i, start, wantDays[i])
		}
		if start.Hour() != 23 || start.Minute() != 30 || start.Second() != 0 {
			t.Errorf("occurrence %d time-of-day = %s, want 23:30:00", i, start)
		}
		if !occurrence.Generated {
			t.Errorf("occurrence %d not marked generated", i)
		}
		if occurrence.AnchorStartDateUnix != event.StartDateUnixUTC {
			t.Errorf("occurrence %d lost anchor back-reference", i)
		}
	}
}

func TestExpandAcrossDSTTransition(t *testing.T) {
	nyc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	// window spans the 2026-03-08 spring-forward transition
	event := weeklyTuesdayEvent()
	result := recur.Expand(
		event,
		time.Date(2026, time.February, 24, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 17, 23, 59, 59, 0, time.UTC),
		"America/New_York",
	)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Occurrences) == 0 {
		t.Fatal("expected occurrences across the transition")
	}

	for _, occurrence := range result.Occurrences {
		start := time.Unix(occurrence.StartDateUnixUTC, 0).UTC()
		if start.Hour() != 23 || start.Minute() != 30 {
			t.Errorf("UTC time-of-day drifted: %s", start)
		}
		if local := start.In(nyc); local.Weekday() != time.Tuesday {
			t.Errorf("occurrence %s is a local %s, want Tuesday", start, local.Weekday())
		}
	}
}

func TestExpandPreservesEndTimeOfDay(t *testing.T) {
	event := weeklyTuesdayEvent()
	// crosses UTC midnight: ends 02:30Z the next day
	event.EndDateUnixUTC = time.Date(2026, time.January, 7, 2, 30, 0, 0, time.UTC).Unix()

	result := recur.Expand(
		event,
		time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 18, 23, 59, 59, 0, time.UTC),
		"America/New_York",
	)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Occurrences) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(result.Occurrences))
	}

	end := time.Unix(result.Occurrences[0].EndDateUnixUTC, 0).UTC()
	want := time.Date(2026, time.January, 14, 2, 30, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("end = %s, want %s", end, want)
	}
}

func TestExpandEmptyWindow(t *testing.T) {
	result := recur.Expand(
		weeklyTuesdayEvent(),
		time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, time.January, 31, 0, 0, 0, 0, time.UTC),
		"America/New_York",
	)
	if result.Err != nil {
		t.Fatalf("no-occurrence window is not an error: %v", result.Err)
	}
	if len(result.Occurrences) != 0 {
		t.Errorf("got %d occurrences, want 0", len(result.Occurrences))
	}
}

func TestExpandMalformedRuleFailSoft(t *testing.T) {
	event := weeklyTuesdayEvent()
	event.RecurrenceRule = "NOT-A-RULE"

	result := recur.Expand(
		event,
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC),
		"America/New_York",
	)
	if result.Err == nil {
		t.Error("expected a parse error to be reported")
	}
	if len(result.Occurrences) != 1 {
		t.Fatalf("got %d occurrences, want the original event", len(result.Occurrences))
	}
	if result.Occurrences[0].StartDateUnixUTC != event.StartDateUnixUTC {
		t.Error("fail-soft path mutated the original event")
	}
	if result.Occurrences[0].Generated {
		t.Error("fail-soft passthrough marked as generated")
	}
}

func TestExpandDefaultsVenueZone(t *testing.T) {
	withZone := recur.Expand(
		weeklyTuesdayEvent(),
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC),
		"America/New_York",
	)
	withoutZone := recur.Expand(
		weeklyTuesdayEvent(),
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC),
		"",
	)
	if len(withZone.Occurrences) != len(withoutZone.Occurrences) {
		t.Fatalf("default zone expansion differs: %d vs %d",
			len(withZone.Occurrences), len(withoutZone.Occurrences))
	}
	for i := range withZone.Occurrences {
		if withZone.Occurrences[i].StartDateUnixUTC != withoutZone.Occurrences[i].StartDateUnixUTC {
			t.Errorf("occurrence %d differs under default zone", i)
		}
	}
}
