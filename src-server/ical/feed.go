// The `ical` package serializes events into an iCalendar subscription feed.
//
// # References:
// - RFC5545: https://datatracker.ietf.org/doc/html/rfc5545
//
// # Notes:
// - Write-only. Recurrence rules are passed through verbatim as RRULE lines;
//   subscribing clients do their own expansion, so the feed emits one VEVENT
//   per stored event, not per occurrence.
// - All datetimes are emitted in UTC.
package ical

import (
	"fmt"
	"strings"
	"time"
)

type FeedEvent struct {
	ID             string
	Title          string
	Description    string
	URL            string
	Location       string
	StartUTC       time.Time
	EndUTC         time.Time
	RecurrenceRule string
}

// Convert a time to a string in iCalendar format: YYYYMMDD or YYYYMMDDTHHMMSSZ
func icalDatetime(t time.Time) string {
	hour, min, sec := t.Clock()
	if hour == 0 && min == 0 && sec == 0 {
		return t.Format("20060102")
	}
	return t.Format("20060102T150405Z")
}

// Escape per RFC 5545 §3.3.11: backslash, semicolon, comma, newline.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// Transform a normal writer into a writer that folds content lines at 75
// octets, continuation lines prefixed with a space.
func fold75wrapper(writer func(string) (int, error)) func(string) (int, error) {
	return func(str string) (int, error) {
		if len(str) <= 75 {
			if i, err := writer(str + "\r\n"); err != nil {
				return i, err
			}
			return len(str), nil
		}
		for i := 0; i < len(str); i += 75 {
			end := i + 75
			if end > len(str) {
				end = len(str)
			}
			line := str[i:end]
			if i > 0 {
				line = " " + line
			}
			if n, err := writer(line + "\r\n"); err != nil {
				return n, err
			}
		}
		return len(str), nil
	}
}

// Marshal a batch of events into an iCalendar document.
func Marshal(calendarName string, events []FeedEvent) string {
	var sb strings.Builder
	writer := fold75wrapper(sb.WriteString)

	writer("BEGIN:VCALENDAR")
	writer("VERSION:2.0")
	writer("PRODID:-//tangocal//calendar//EN")
	writer("CALSCALE:GREGORIAN")
	if calendarName != "" {
		writer(fmt.Sprintf("X-WR-CALNAME:%s", escapeText(calendarName)))
	}

	now := time.Now().UTC()
	for _, event := range events {
		writer("BEGIN:VEVENT")
		writer(fmt.Sprintf("UID:%s", event.ID))
		writer(fmt.Sprintf("DTSTAMP:%s", icalDatetime(now)))
		writer(fmt.Sprintf("DTSTART:%s", icalDatetime(event.StartUTC)))
		if !event.EndUTC.IsZero() {
			writer(fmt.Sprintf("DTEND:%s", icalDatetime(event.EndUTC)))
		}
		writer(fmt.Sprintf("SUMMARY:%s", escapeText(event.Title)))
		if event.Description != "" {
			writer(fmt.Sprintf("DESCRIPTION:%s", escapeText(event.Description)))
		}
		if event.Location != "" {
			writer(fmt.Sprintf("LOCATION:%s", escapeText(event.Location)))
		}
		if event.URL != "" {
			writer(fmt.Sprintf("URL:%s", event.URL))
		}
		if event.RecurrenceRule != "" {
			writer(fmt.Sprintf("RRULE:%s", event.RecurrenceRule))
		}
		writer("END:VEVENT")
	}

	writer("END:VCALENDAR")
	return sb.String()
}
