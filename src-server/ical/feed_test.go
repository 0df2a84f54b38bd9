package ical_test

import (
	"strings"
	"testing"
	"time"

	"tangocal/src-server/ical"
)

func TestMarshalBasicFeed(t *testing.T) {
	events := []ical.FeedEvent{
		{
			ID:             "evt-1",
			Title:          "Milonga La Nacional",
			Description:    "Weekly milonga; beginners welcome, come early",
			Location:       "La Nacional, New York",
			StartUTC:       time.Date(2026, 1, 6, 23, 30, 0, 0, time.UTC),
			EndUTC:         time.Date(2026, 1, 7, 2, 30, 0, 0, time.UTC),
			RecurrenceRule: "FREQ=WEEKLY;BYDAY=TU",
		},
	}
	out := ical.Marshal("Tango Calendar", events)

	for _, want := range []string{
		"BEGIN:VCALENDAR\r\n",
		"X-WR-CALNAME:Tango Calendar\r\n",
		"UID:evt-1\r\n",
		"DTSTART:20260106T233000Z\r\n",
		"DTEND:20260107T023000Z\r\n",
		"SUMMARY:Milonga La Nacional\r\n",
		"RRULE:FREQ=WEEKLY;BYDAY=TU\r\n",
		"END:VCALENDAR\r\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("feed missing %q:\n%s", want, out)
		}
	}

	// commas and semicolons in text fields must be escaped
	if !strings.Contains(out, "DESCRIPTION:Weekly milonga\\; beginners welcome\\, come early\r\n") {
		t.Errorf("description not escaped:\n%s", out)
	}
	if !strings.Contains(out, "LOCATION:La Nacional\\, New York\r\n") {
		t.Errorf("location not escaped:\n%s", out)
	}
}

func TestMarshalOmitsEmptyFields(t *testing.T) {
	out := ical.Marshal("", []ical.FeedEvent{{
		ID:       "evt-2",
		Title:    "Practica",
		StartUTC: time.Date(2026, 2, 1, 19, 0, 0, 0, time.UTC),
	}})
	for _, unwanted := range []string{"DTEND", "DESCRIPTION", "LOCATION", "URL:", "RRULE", "X-WR-CALNAME"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("feed should not contain %q:\n%s", unwanted, out)
		}
	}
}

func TestMarshalFoldsLongLines(t *testing.T) {
	out := ical.Marshal("", []ical.FeedEvent{{
		ID:          "evt-3",
		Title:       "Grand Tango Festival",
		Description: strings.Repeat("tango ", 40),
		StartUTC:    time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC),
	}})
	for _, line := range strings.Split(out, "\r\n") {
		if len(line) > 76 {
			t.Errorf("line longer than 75 octets plus fold space: %q", line)
		}
	}
	if !strings.Contains(out, "\r\n ") {
		t.Error("long description should produce a folded continuation line")
	}
}
