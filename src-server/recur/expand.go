package recur

import (
	"fmt"
	"time"

	"tangocal/src-server/model"
	"tangocal/src-server/timezone"

	"github.com/xyedo/rrule"
)

const icalLocalLayout = "20060102T150405"

// Result of expanding one event. When the rule string failed to parse, Err
// carries the reason and Occurrences holds the original event un-expanded:
// one malformed rule degrades to "show the event once" instead of failing
// the listing. The caller decides whether to log or alert on Err.
type Result struct {
	Occurrences []model.Event
	Err         error
}

// Expand projects an event's recurrence rule into concrete occurrences
// intersecting [queryStart, queryEnd]. Non-recurring events pass through
// unchanged. The rule is anchored at the event's start converted to the venue
// zone, so BYDAY=TU means Tuesday at the venue rather than Tuesday in UTC.
// Every occurrence keeps the anchor's UTC hour and minute.
func Expand(event model.Event, queryStart, queryEnd time.Time, venueZone string) Result {
	if !event.IsRecurring() {
		return Result{Occurrences: []model.Event{event}}
	}

	zone := venueZone
	if zone == "" {
		zone = timezone.DefaultZone
	}
	loc, err := timezone.Zone(zone)
	if err != nil {
		return Result{
			Occurrences: []model.Event{event},
			Err:         fmt.Errorf("recur.Expand: %w", err),
		}
	}

	anchor := time.Unix(event.StartDateUnixUTC, 0).UTC()
	localAnchor := anchor.In(loc)

	src := fmt.Sprintf(
		"DTSTART;TZID=%s:%s\nRRULE:%s",
		zone, localAnchor.Format(icalLocalLayout), event.RecurrenceRule,
	)
	set, err := rrule.StrToRRuleSet(src)
	if err != nil {
		return Result{
			Occurrences: []model.Event{event},
			Err:         fmt.Errorf("recur.Expand: %w", err),
		}
	}

	// pad the end by one day so a late-day local occurrence isn't dropped by
	// the UTC window comparison; the start is never padded
	occurrenceTimes := set.Between(queryStart, queryEnd.AddDate(0, 0, 1), true)
	if len(occurrenceTimes) == 0 {
		return Result{Occurrences: []model.Event{}}
	}

	// the stored anchor's UTC hour/minute is authoritative; the rule
	// evaluator already placed the date correctly in local time, and
	// re-imposing the anchor's time-of-day keeps the displayed local time
	// stable across a DST transition inside the series
	anchorDay := time.Date(
		anchor.Year(), anchor.Month(), anchor.Day(),
		anchor.Hour(), anchor.Minute(), 0, 0, time.UTC,
	)

	occurrences := make([]model.Event, 0, len(occurrenceTimes))
	for _, occurrenceTime := range occurrenceTimes {
		utc := occurrenceTime.UTC()
		start := time.Date(
			utc.Year(), utc.Month(), utc.Day(),
			anchor.Hour(), anchor.Minute(), 0, 0, time.UTC,
		)

		occurrence := event
		occurrence.StartDateUnixUTC = start.Unix()
		if event.EndDateUnixUTC != 0 {
			// shift the end by the same whole-day delta as the start, which
			// preserves the anchor end's UTC hour/minute
			delta := start.Sub(anchorDay)
			end := time.Unix(event.EndDateUnixUTC, 0).UTC().
				Truncate(time.Minute).
				Add(delta)
			occurrence.EndDateUnixUTC = end.Unix()
		}
		occurrence.Generated = true
		occurrence.AnchorStartDateUnix = event.StartDateUnixUTC
		occurrences = append(occurrences, occurrence)
	}

	return Result{Occurrences: occurrences}
}
