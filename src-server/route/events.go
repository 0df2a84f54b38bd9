package route

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"tangocal/src-server/model"
	"tangocal/src-server/timezone"
	"tangocal/src-server/utils"

	"github.com/google/uuid"
)

func Events(muxer *http.ServeMux, as *utils.AppState) {
	type OneEventRespBody struct {
		ID             string  `json:"id"`
		AppID          string  `json:"appId"`
		Title          string  `json:"title"`
		Description    string  `json:"description,omitempty"`
		URL            string  `json:"url,omitempty"`
		VenueID        string  `json:"venueID,omitempty"`
		VenueName      string  `json:"venueName,omitempty"`
		OrganizerID    string  `json:"organizerID,omitempty"`
		CategoryID     string  `json:"categoryID,omitempty"`
		StartDate      string  `json:"startDate"`
		EndDate        *string `json:"endDate"`
		RecurrenceRule string  `json:"recurrenceRule,omitempty"`

		IsGeneratedOccurrence bool    `json:"isGeneratedOccurrence,omitempty"`
		OriginalStartDate     *string `json:"originalStartDate,omitempty"`

		timezone.EventDisplayFields
	}

	// attach the venue-local display fields; events at venues with bad
	// timezone data serialize without them instead of failing the response
	toRespBody := func(event model.Event, venueMap map[string]*model.Venue) OneEventRespBody {
		start := time.Unix(event.StartDateUnixUTC, 0).UTC()
		resp := OneEventRespBody{
			ID:             event.ID,
			AppID:          event.AppID,
			Title:          event.Title,
			Description:    event.Description,
			URL:            event.URL,
			VenueID:        event.VenueID,
			OrganizerID:    event.OrganizerID,
			CategoryID:     event.CategoryID,
			StartDate:      start.Format(time.RFC3339),
			RecurrenceRule: event.RecurrenceRule,

			IsGeneratedOccurrence: event.Generated,
		}

		var end *time.Time
		if event.EndDateUnixUTC != 0 {
			endTime := time.Unix(event.EndDateUnixUTC, 0).UTC()
			end = &endTime
			endStr := endTime.Format(time.RFC3339)
			resp.EndDate = &endStr
		}
		if event.Generated {
			anchorStr := time.Unix(event.AnchorStartDateUnix, 0).UTC().Format(time.RFC3339)
			resp.OriginalStartDate = &anchorStr
		}

		venueZone := ""
		if venue, ok := venueMap[event.VenueID]; ok {
			resp.VenueName = venue.Name
			venueZone = venue.Timezone
		}
		resp.EventDisplayFields = as.TzResolver.EnrichFields(start, end, venueZone)
		return resp
	}

	// list events in a window, recurring events expanded into occurrences
	muxer.HandleFunc("GET /api/events", MetricMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			appID := r.URL.Query().Get("appId")
			if appID == "" {
				appID = "1"
			}

			start := time.Now().UTC().Truncate(24 * time.Hour)
			end := start.AddDate(0, 0, 42)
			if startParam := r.URL.Query().Get("start"); startParam != "" {
				var err error
				if start, err = parseStartParam(startParam); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					w.Write([]byte("Invalid start date, use YYYY-MM-DD"))
					return
				}
			}
			if endParam := r.URL.Query().Get("end"); endParam != "" {
				var err error
				if end, err = parseEndParam(endParam); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					w.Write([]byte("Invalid end date, use YYYY-MM-DD"))
					return
				}
			}
			if end.Before(start) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("End date must be after start date"))
				return
			}

			rawLimit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			limit := clampLimit(rawLimit, 100, 500)

			events, err := queryWindowEvents(
				r.Context(), as.BunDB, appID, start, end,
				r.URL.Query().Get("categoryId"), r.URL.Query().Get("venueId"))
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

			respBody := make([]OneEventRespBody, 0, len(expanded))
			for _, event := range expanded {
				respBody = append(respBody, toRespBody(event, venueMap))
			}
			respBodyJson, err := json.Marshal(respBody)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	// single event by id, no expansion
	muxer.HandleFunc("GET /api/events/{id}", MetricMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			eventModel := new(model.Event)
			err := as.BunDB.NewSelect().
				Model(eventModel).
				Where("id = ?", r.PathValue("id")).
				Scan(r.Context())
			switch {
			case errors.Is(err, sql.ErrNoRows):
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Event not found"))
				return
			case err != nil:
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get event"))
				slog.Error("can't get event", "error", err)
				return
			}

			venueMap, err := venuesByID(r.Context(), as.BunDB, []model.Event{*eventModel})
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get venue"))
				slog.Error("can't get venue", "error", err)
				return
			}

			respBodyJson, err := json.Marshal(toRespBody(*eventModel, venueMap))
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	type CreateEventReqBody struct {
		AppID          string `json:"appId"`
		Title          string `json:"title"`
		Description    string `json:"description"`
		URL            string `json:"url"`
		VenueID        string `json:"venueID"`
		OrganizerID    string `json:"organizerID"`
		CategoryID     string `json:"categoryID"`
		StartDate      string `json:"startDate"`
		EndDate        string `json:"endDate"`
		RecurrenceRule string `json:"recurrenceRule"`
	}

	parseReqDates := func(reqBody CreateEventReqBody) (startUnix int64, endUnix int64, err error) {
		start, err := time.Parse(time.RFC3339, reqBody.StartDate)
		if err != nil {
			return 0, 0, err
		}
		if reqBody.EndDate != "" {
			end, err := time.Parse(time.RFC3339, reqBody.EndDate)
			if err != nil {
				return 0, 0, err
			}
			endUnix = end.UTC().Unix()
		}
		return start.UTC().Unix(), endUnix, nil
	}

	// create a new event, the success response is the event ID
	muxer.HandleFunc("POST /api/events", MetricMiddleware(as, AdminAuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody CreateEventReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			startUnix, endUnix, err := parseReqDates(reqBody)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid start/end date, use RFC 3339"))
				return
			}

			newEvent := model.Event{
				ID:               uuid.NewString(),
				AppID:            reqBody.AppID,
				Title:            reqBody.Title,
				Description:      reqBody.Description,
				URL:              reqBody.URL,
				VenueID:          reqBody.VenueID,
				OrganizerID:      reqBody.OrganizerID,
				CategoryID:       reqBody.CategoryID,
				StartDateUnixUTC: startUnix,
				EndDateUnixUTC:   endUnix,
				RecurrenceRule:   reqBody.RecurrenceRule,
				IsActive:         true,
			}
			if err := newEvent.Upsert(r.Context(), as.BunDB); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Can't create event"))
				slog.Warn("can't create event", "error", err)
				return
			}
			if err := model.LogActivity(r.Context(), as.BunDB, newEvent.AppID, "event", newEvent.ID, "created"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(newEvent.ID))
		})))

	// modify an existing event
	muxer.HandleFunc("PUT /api/events/{id}", MetricMiddleware(as, AdminAuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			eventModel := new(model.Event)
			err := as.BunDB.NewSelect().
				Model(eventModel).
				Where("id = ?", r.PathValue("id")).
				Scan(r.Context())
			switch {
			case errors.Is(err, sql.ErrNoRows):
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Event not found"))
				return
			case err != nil:
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get event"))
				slog.Error("can't get event", "error", err)
				return
			}

			var reqBody CreateEventReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			startUnix, endUnix, err := parseReqDates(reqBody)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid start/end date, use RFC 3339"))
				return
			}

			eventModel.Title = reqBody.Title
			eventModel.Description = reqBody.Description
			eventModel.URL = reqBody.URL
			eventModel.VenueID = reqBody.VenueID
			eventModel.OrganizerID = reqBody.OrganizerID
			eventModel.CategoryID = reqBody.CategoryID
			eventModel.StartDateUnixUTC = startUnix
			eventModel.EndDateUnixUTC = endUnix
			eventModel.RecurrenceRule = reqBody.RecurrenceRule
			if err := eventModel.Upsert(r.Context(), as.BunDB); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Can't modify event"))
				slog.Warn("can't modify event", "error", err)
				return
			}
			if err := model.LogActivity(r.Context(), as.BunDB, eventModel.AppID, "event", eventModel.ID, "updated"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(eventModel.ID))
		})))

	// delete an event
	muxer.HandleFunc("DELETE /api/events/{id}", MetricMiddleware(as, AdminAuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			eventID := r.PathValue("id")
			result, err := as.BunDB.NewDelete().
				Model((*model.Event)(nil)).
				Where("id = ?", eventID).
				Exec(r.Context())
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't delete event"))
				slog.Error("can't delete event", "error", err)
				return
			}
			if affected, _ := result.RowsAffected(); affected == 0 {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Event not found"))
				return
			}
			if err := model.LogActivity(r.Context(), as.BunDB, "1", "event", eventID, "deleted"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(eventID))
		})))
}
