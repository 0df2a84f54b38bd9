package route

import (
	"testing"
	"time"
)

func TestParseStartEndParams(t *testing.T) {
	start, err := parseStartParam("2026-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if !start.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("date-only start should be start of day UTC", start)
	}

	end, err := parseEndParam("2026-01-31")
	if err != nil {
		t.Fatal(err)
	}
	if !end.Equal(time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)) {
		t.Error("date-only end should be end of day UTC", end)
	}

	exact, err := parseStartParam("2026-01-06T23:30:00Z")
	if err != nil {
		t.Fatal(err)
	}
	if !exact.Equal(time.Date(2026, 1, 6, 23, 30, 0, 0, time.UTC)) {
		t.Error("RFC 3339 input should parse as-is", exact)
	}

	if _, err := parseStartParam("01/06/2026"); err == nil {
		t.Error("slash dates should be rejected")
	}
}

func TestClampLimit(t *testing.T) {
	for _, testCase := range []struct{ raw, fallback, max, want int }{
		{0, 100, 500, 100},
		{-5, 100, 500, 100},
		{50, 100, 500, 50},
		{9999, 100, 500, 500},
		{0, 20, 50, 20},
		{51, 20, 50, 50},
	} {
		if got := clampLimit(testCase.raw, testCase.fallback, testCase.max); got != testCase.want {
			t.Errorf("clampLimit(%d, %d, %d) = %d, want %d",
				testCase.raw, testCase.fallback, testCase.max, got, testCase.want)
		}
	}
}

func TestResolveTimeframe(t *testing.T) {
	nyc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	// Tuesday evening
	now := time.Date(2026, 1, 6, 19, 0, 0, 0, nyc)

	start, end, label, ok := resolveTimeframe("any milongas tonight", now)
	if !ok || label != "tonight" {
		t.Fatal("tonight should match", label, ok)
	}
	if start.Day() != 6 || end.Day() != 6 {
		t.Error("tonight should stay on the same day", start, end)
	}

	start, _, label, ok = resolveTimeframe("what about tomorrow", now)
	if !ok || label != "tomorrow" || start.Day() != 7 {
		t.Error("tomorrow should be the 7th", start, label, ok)
	}

	start, end, label, ok = resolveTimeframe("tango this weekend", now)
	if !ok || label != "this weekend" {
		t.Fatal("this weekend should match", label, ok)
	}
	if start.Weekday() != time.Saturday || end.Weekday() != time.Sunday {
		t.Error("weekend should span Saturday to Sunday", start, end)
	}

	start, _, label, ok = resolveTimeframe("classes next week", now)
	if !ok || label != "next week" || start.Weekday() != time.Monday {
		t.Error("next week should start on Monday", start, label, ok)
	}

	if _, _, _, ok := resolveTimeframe("anything on january 20", now); ok {
		t.Error("free-form dates are the parser's job, not the keyword map's")
	}
}

func TestDetectCategory(t *testing.T) {
	for _, testCase := range []struct{ query, want string }{
		{"any milongas tonight?", "Milonga"},
		{"where is the practica", "Practica"},
		{"beginner lessons this week", "Class"},
		{"tango festival next month", "Festival"},
		{"just tango stuff", ""},
	} {
		if got := detectCategory(testCase.query); got != testCase.want {
			t.Errorf("detectCategory(%q) = %q, want %q", testCase.query, got, testCase.want)
		}
	}
}
