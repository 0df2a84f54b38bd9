package route

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tangocal/src-server/model"
	"tangocal/src-server/recur"
	"tangocal/src-server/timezone"
	"tangocal/src-server/utils"
)

// spoken-friendly event shape for voice assistants: pre-formatted venue-local
// date/time strings instead of machine timestamps
type voiceEventItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	SpokenDate  string `json:"spokenDate"`
	SpokenTime  string `json:"spokenTime"`
	VenueName   string `json:"venueName,omitempty"`
	City        string `json:"city,omitempty"`
	IsRecurring bool   `json:"isRecurring"`
	Recurrence  string `json:"recurrence,omitempty"`
	Until       string `json:"until,omitempty"`
}

func toVoiceItem(event model.Event, venueMap map[string]*model.Venue) voiceEventItem {
	item := voiceEventItem{
		ID:          event.ID,
		Title:       event.Title,
		IsRecurring: event.IsRecurring(),
	}

	zoneName := timezone.DefaultZone
	if venue, ok := venueMap[event.VenueID]; ok {
		item.VenueName = venue.Name
		item.City = venue.City
		if venue.Timezone != "" {
			zoneName = venue.Timezone
		}
	}
	loc, err := timezone.Zone(zoneName)
	if err != nil {
		loc = time.UTC
	}

	local := time.Unix(event.StartDateUnixUTC, 0).In(loc)
	item.SpokenDate = local.Format("Monday, January 2")
	item.SpokenTime = local.Format("3:04 PM")

	if event.IsRecurring() {
		item.Recurrence, item.Until = recur.Describe(event.RecurrenceRule)
	}
	return item
}

// timeframe keywords understood without the natural-language parser; windows
// are computed in the default display zone then converted to UTC
var timeframeKeywords = []string{
	"tonight", "today", "tomorrow", "this weekend",
	"this week", "next week", "this month",
}

func resolveTimeframe(normalized string, nowLocal time.Time) (start, end time.Time, label string, ok bool) {
	dayStart := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, nowLocal.Location())
	endOfDay := func(t time.Time) time.Time { return t.AddDate(0, 0, 1).Add(-time.Second) }

	for _, keyword := range timeframeKeywords {
		if !strings.Contains(normalized, keyword) {
			continue
		}
		switch keyword {
		case "tonight", "today":
			return dayStart, endOfDay(dayStart), keyword, true
		case "tomorrow":
			tomorrow := dayStart.AddDate(0, 0, 1)
			return tomorrow, endOfDay(tomorrow), keyword, true
		case "this weekend":
			// Saturday through Sunday; already-started weekends keep today
			daysUntilSaturday := (int(time.Saturday) - int(dayStart.Weekday()) + 7) % 7
			saturday := dayStart.AddDate(0, 0, daysUntilSaturday)
			if dayStart.Weekday() == time.Sunday {
				saturday = dayStart.AddDate(0, 0, -1)
			}
			return saturday, endOfDay(saturday.AddDate(0, 0, 1)), keyword, true
		case "this week":
			daysUntilSunday := (int(time.Sunday) - int(dayStart.Weekday()) + 7) % 7
			if daysUntilSunday == 0 {
				daysUntilSunday = 7
			}
			return dayStart, endOfDay(dayStart.AddDate(0, 0, daysUntilSunday)), keyword, true
		case "next week":
			daysUntilMonday := (int(time.Monday) - int(dayStart.Weekday()) + 7) % 7
			if daysUntilMonday == 0 {
				daysUntilMonday = 7
			}
			monday := dayStart.AddDate(0, 0, daysUntilMonday)
			return monday, endOfDay(monday.AddDate(0, 0, 6)), keyword, true
		case "this month":
			firstOfNext := time.Date(nowLocal.Year(), nowLocal.Month(), 1, 0, 0, 0, 0, nowLocal.Location()).AddDate(0, 1, 0)
			return dayStart, firstOfNext.Add(-time.Second), keyword, true
		}
	}
	return time.Time{}, time.Time{}, "", false
}

// category aliases a voice query might use, mapped to canonical category names
var categoryAliases = map[string]string{
	"milongas":     "Milonga",
	"milonga":      "Milonga",
	"practicas":    "Practica",
	"practica":     "Practica",
	"classes":      "Class",
	"class":        "Class",
	"lessons":      "Class",
	"lesson":       "Class",
	"workshops":    "Class",
	"workshop":     "Class",
	"festivals":    "Festival",
	"festival":     "Festival",
	"performances": "Performance",
	"performance":  "Performance",
	"shows":        "Performance",
	"show":         "Performance",
}

func detectCategory(normalized string) string {
	// scan word by word so "practicas" doesn't double-match "practica"
	for _, word := range strings.Fields(normalized) {
		if canonical, ok := categoryAliases[strings.Trim(word, ".,!?")]; ok {
			return canonical
		}
	}
	return ""
}

func Voice(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /api/voice/events", MetricMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			appID := r.URL.Query().Get("appId")
			startParam := r.URL.Query().Get("start")
			endParam := r.URL.Query().Get("end")
			if appID == "" || startParam == "" || endParam == "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("appId, start and end are required"))
				return
			}

			start, err := parseStartParam(startParam)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid start date, use YYYY-MM-DD"))
				return
			}
			end, err := parseEndParam(endParam)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid end date, use YYYY-MM-DD"))
				return
			}
			if end.Before(start) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("End date must be after start date"))
				return
			}

			rawLimit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			limit := clampLimit(rawLimit, 20, 50)

			events, err := queryWindowEvents(
				r.Context(), as.BunDB, appID, start, end,
				r.URL.Query().Get("categoryId"), "")
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

			expanded := expandAll(as, events, venueMap, start, end)
			if len(expanded) > limit {
				expanded = expanded[:limit]
			}

			items := make([]voiceEventItem, 0, len(expanded))
			for _, event := range expanded {
				items = append(items, toVoiceItem(event, venueMap))
			}
			respBodyJson, err := json.Marshal(struct {
				Count  int              `json:"count"`
				Events []voiceEventItem `json:"events"`
			}{len(items), items})
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	askHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		query := r.URL.Query().Get("q")
		if r.Method == http.MethodPost {
			var reqBody struct {
				Query string `json:"query"`
			}
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			query = reqBody.Query
		}
		if strings.TrimSpace(query) == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Query is required"))
			return
		}

		appID := r.URL.Query().Get("appId")
		if appID == "" {
			appID = "1"
		}

		normalized := utils.NormalizeQuery(query)

		loc, err := timezone.Zone(timezone.DefaultZone)
		if err != nil {
			loc = time.UTC
		}
		nowLocal := time.Now().In(loc)

		start, end, timeframe, matched := resolveTimeframe(normalized, nowLocal)
		if !matched {
			// fall back to the natural-language parser for things like
			// "next friday" or "on january 6"
			if result, err := as.When.Parse(normalized, nowLocal); err == nil && result != nil {
				day := time.Date(result.Time.Year(), result.Time.Month(), result.Time.Day(), 0, 0, 0, 0, loc)
				start, end = day, day.AddDate(0, 0, 1).Add(-time.Second)
				timeframe = result.Time.Format("Monday, January 2")
				matched = true
			}
		}
		if !matched {
			// no date in the query, default to the next six weeks
			dayStart := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)
			start, end = dayStart, dayStart.AddDate(0, 0, 42)
			timeframe = "the next six weeks"
		}

		categoryName := detectCategory(normalized)
		categoryID := ""
		if categoryName != "" {
			categoryModel := new(model.Category)
			if err := as.BunDB.NewSelect().
				Model(categoryModel).
				Where("app_id = ?", appID).
				Where("LOWER(category_name) = ?", strings.ToLower(categoryName)).
				Scan(r.Context()); err == nil {
				categoryID = categoryModel.ID
			}
		}

		events, err := queryWindowEvents(r.Context(), as.BunDB, appID, start.UTC(), end.UTC(), categoryID, "")
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

		// city filter matches against the cities of the venues we loaded
		city := ""
		for _, venue := range venueMap {
			if venue.City != "" && strings.Contains(normalized, strings.ToLower(venue.City)) {
				city = venue.City
				break
			}
		}

		expanded := expandAll(as, events, venueMap, start.UTC(), end.UTC())
		items := make([]voiceEventItem, 0, len(expanded))
		for _, event := range expanded {
			if city != "" {
				venue, ok := venueMap[event.VenueID]
				if !ok || !strings.EqualFold(venue.City, city) {
					continue
				}
			}
			items = append(items, toVoiceItem(event, venueMap))
			if len(items) == 20 {
				break
			}
		}

		noun := "events"
		if categoryName != "" {
			noun = strings.ToLower(categoryName) + "s"
			if len(items) == 1 {
				noun = strings.ToLower(categoryName)
			}
		} else if len(items) == 1 {
			noun = "event"
		}
		where := ""
		if city != "" {
			where = " in " + city
		}
		spoken := fmt.Sprintf("I found %d %s%s for %s.", len(items), noun, where, timeframe)
		if len(items) == 0 {
			spoken = fmt.Sprintf("I couldn't find any %s%s for %s.", noun, where, timeframe)
		}

		respBodyJson, err := json.Marshal(struct {
			Query           string `json:"query"`
			NormalizedQuery string `json:"normalizedQuery"`
			Parsed          struct {
				Category  string `json:"category,omitempty"`
				Timeframe string `json:"timeframe"`
				City      string `json:"city,omitempty"`
				Start     string `json:"start"`
				End       string `json:"end"`
			} `json:"parsed"`
			SpokenResponse string           `json:"spokenResponse"`
			Count          int              `json:"count"`
			Events         []voiceEventItem `json:"events"`
		}{
			Query:           query,
			NormalizedQuery: normalized,
			Parsed: struct {
				Category  string `json:"category,omitempty"`
				Timeframe string `json:"timeframe"`
				City      string `json:"city,omitempty"`
				Start     string `json:"start"`
				End       string `json:"end"`
			}{categoryName, timeframe, city, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)},
			SpokenResponse: spoken,
			Count:          len(items),
			Events:         items,
		})
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't marshal response body"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	}

	muxer.HandleFunc("GET /api/voice/ask", MetricMiddleware(as, askHandler))
	muxer.HandleFunc("POST /api/voice/ask", MetricMiddleware(as, askHandler))
}
