package route

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"time"

	"tangocal/src-server/model"
	"tangocal/src-server/recur"
	"tangocal/src-server/utils"

	"github.com/uptrace/bun"
)

var dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// parseStartParam accepts YYYY-MM-DD (start of day UTC) or RFC 3339.
func parseStartParam(s string) (time.Time, error) {
	if dateOnlyRe.MatchString(s) {
		return time.Parse(time.RFC3339, s+"T00:00:00Z")
	}
	return time.Parse(time.RFC3339, s)
}

// parseEndParam accepts YYYY-MM-DD (end of day UTC, so boundary-day events
// are included) or RFC 3339.
func parseEndParam(s string) (time.Time, error) {
	if dateOnlyRe.MatchString(s) {
		return time.Parse(time.RFC3339, s+"T23:59:59Z")
	}
	return time.Parse(time.RFC3339, s)
}

func clampLimit(raw, fallback, max int) int {
	if raw < 1 {
		return fallback
	}
	if raw > max {
		return max
	}
	return raw
}

// queryWindowEvents fetches candidate events for a window: non-recurring
// events inside [start, end] plus every recurring event regardless of its
// anchor date, since only expansion can tell whether a rule produces
// occurrences inside the window.
func queryWindowEvents(
	ctx context.Context,
	db bun.IDB,
	appID string,
	start, end time.Time,
	categoryID, venueID string,
) ([]model.Event, error) {
	events := make([]model.Event, 0)
	q := db.NewSelect().
		Model(&events).
		Where("app_id = ?", appID).
		Where("is_active = ?", true).
		Where("is_canceled = ?", false).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereGroup(" OR ", func(q *bun.SelectQuery) *bun.SelectQuery {
					return q.
						Where("start_date >= ?", start.Unix()).
						Where("start_date <= ?", end.Unix()).
						Where("(recurrence_rule IS NULL OR recurrence_rule = '')")
				}).
				WhereOr("(recurrence_rule IS NOT NULL AND recurrence_rule != '')")
		})
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	if venueID != "" {
		q = q.Where("venue_id = ?", venueID)
	}
	if err := q.Order("start_date ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

// venuesByID loads the venues referenced by a batch of events.
func venuesByID(ctx context.Context, db bun.IDB, events []model.Event) (map[string]*model.Venue, error) {
	idSet := make(map[string]struct{})
	for _, event := range events {
		if event.VenueID != "" {
			idSet[event.VenueID] = struct{}{}
		}
	}
	venueMap := make(map[string]*model.Venue)
	if len(idSet) == 0 {
		return venueMap, nil
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	venues := make([]model.Venue, 0, len(ids))
	if err := db.NewSelect().
		Model(&venues).
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx); err != nil {
		return nil, err
	}
	for i := range venues {
		venueMap[venues[i].ID] = &venues[i]
	}
	return venueMap, nil
}

// expandAll runs recurrence expansion over a candidate set and returns the
// flat occurrence list sorted by start date. Expansion failures degrade to
// the un-expanded event and are logged here, per event, so one malformed rule
// can't fail the listing.
func expandAll(
	as *utils.AppState,
	events []model.Event,
	venueMap map[string]*model.Venue,
	start, end time.Time,
) []model.Event {
	expanded := make([]model.Event, 0, len(events))
	for _, event := range events {
		venueZone := ""
		if venue, ok := venueMap[event.VenueID]; ok {
			venueZone = venue.Timezone
		}
		result := recur.Expand(event, start, end, venueZone)
		if result.Err != nil {
			slog.Warn("can't expand recurrence rule",
				"event", event.ID, "rule", event.RecurrenceRule, "error", result.Err)
		}
		expanded = append(expanded, result.Occurrences...)
	}

	sort.Slice(expanded, func(i, j int) bool {
		return expanded[i].StartDateUnixUTC < expanded[j].StartDateUnixUTC
	})

	select {
	case as.MetricChans.RecurrenceExpansion <- float64(len(expanded)):
	default:
	}
	return expanded
}
