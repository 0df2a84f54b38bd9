package route

import (
	"log/slog"
	"net/http"
	"time"

	"tangocal/src-server/ical"
	"tangocal/src-server/utils"
)

// Ics serves the calendar as an iCalendar subscription feed. Recurring events
// keep their RRULE so subscribing clients expand occurrences themselves.
func Ics(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /api/calendar.ics", MetricMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			appID := r.URL.Query().Get("appId")
			if appID == "" {
				appID = "1"
			}

			// non-recurring events of the next twelve weeks plus every
			// recurring event, same candidate rule as the JSON listing
			start := time.Now().UTC().Truncate(24 * time.Hour)
			end := start.AddDate(0, 0, 84)
			events, err := queryWindowEvents(r.Context(), as.BunDB, appID, start, end, "", "")
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get events"))
				slog.Error("can't get events", "error", err)
				return
			}
			venueMap, err := venuesByID(r.Context(), as.BunDB, events)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get venues"))
				slog.Error("can't get venues", "error", err)
				return
			}

			feedEvents := make([]ical.FeedEvent, 0, len(events))
			for _, event := range events {
				feedEvent := ical.FeedEvent{
					ID:             event.ID,
					Title:          event.Title,
					Description:    event.Description,
					URL:            event.URL,
					StartUTC:       time.Unix(event.StartDateUnixUTC, 0).UTC(),
					RecurrenceRule: event.RecurrenceRule,
				}
				if event.EndDateUnixUTC != 0 {
					feedEvent.EndUTC = time.Unix(event.EndDateUnixUTC, 0).UTC()
				}
				if venue, ok := venueMap[event.VenueID]; ok {
					feedEvent.Location = venue.Name
					if venue.City != "" {
						feedEvent.Location += ", " + venue.City
					}
				}
				feedEvents = append(feedEvents, feedEvent)
			}

			w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(ical.Marshal("Tango Calendar", feedEvents)))
		}))
}
