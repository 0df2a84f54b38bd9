package route

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"tangocal/src-server/model"
	"tangocal/src-server/utils"

	"github.com/google/uuid"
)

func Venues(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /api/venues", MetricMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			appID := r.URL.Query().Get("appId")
			if appID == "" {
				appID = "1"
			}

			venues := make([]model.Venue, 0)
			q := as.BunDB.NewSelect().
				Model(&venues).
				Where("app_id = ?", appID)
			if r.URL.Query().Get("includeArchived") != "true" {
				q = q.Where("is_archived = ?", false)
			}
			if err := q.Order("name ASC").Scan(r.Context()); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get venues"))
				slog.Error("can't get venues", "error", err)
				return
			}

			respBodyJson, err := json.Marshal(venues)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	muxer.HandleFunc("GET /api/venues/{id}", MetricMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			venueModel := new(model.Venue)
			err := as.BunDB.NewSelect().
				Model(venueModel).
				Where("id = ?", r.PathValue("id")).
				Scan(r.Context())
			switch {
			case errors.Is(err, sql.ErrNoRows):
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Venue not found"))
				return
			case err != nil:
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get venue"))
				slog.Error("can't get venue", "error", err)
				return
			}

			respBodyJson, err := json.Marshal(venueModel)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	type VenueReqBody struct {
		AppID    string  `json:"appId"`
		Name     string  `json:"name"`
		Address  string  `json:"address"`
		City     string  `json:"city"`
		State    string  `json:"state"`
		Country  string  `json:"country"`
		Timezone string  `json:"timezone"`
		Lat      float64 `json:"lat"`
		Lng      float64 `json:"lng"`
	}

	muxer.HandleFunc("POST /api/venues", MetricMiddleware(as, AdminAuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody VenueReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}

			newVenue := model.Venue{
				ID:       uuid.NewString(),
				AppID:    reqBody.AppID,
				Name:     reqBody.Name,
				Address:  reqBody.Address,
				City:     reqBody.City,
				State:    reqBody.State,
				Country:  reqBody.Country,
				Timezone: reqBody.Timezone,
				Lat:      reqBody.Lat,
				Lng:      reqBody.Lng,
				IsActive: true,
			}
			if err := newVenue.Upsert(r.Context(), as.BunDB); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Can't create venue"))
				slog.Warn("can't create venue", "error", err)
				return
			}
			if err := model.LogActivity(r.Context(), as.BunDB, newVenue.AppID, "venue", newVenue.ID, "created"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(newVenue.ID))
		})))

	muxer.HandleFunc("PUT /api/venues/{id}", MetricMiddleware(as, AdminAuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			venueModel := new(model.Venue)
			err := as.BunDB.NewSelect().
				Model(venueModel).
				Where("id = ?", r.PathValue("id")).
				Scan(r.Context())
			switch {
			case errors.Is(err, sql.ErrNoRows):
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Venue not found"))
				return
			case err != nil:
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get venue"))
				slog.Error("can't get venue", "error", err)
				return
			}

			var reqBody VenueReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}

			wasInactive := !venueModel.IsActive || venueModel.IsArchived
			venueModel.Name = reqBody.Name
			venueModel.Address = reqBody.Address
			venueModel.City = reqBody.City
			venueModel.State = reqBody.State
			venueModel.Country = reqBody.Country
			venueModel.Timezone = reqBody.Timezone
			venueModel.Lat = reqBody.Lat
			venueModel.Lng = reqBody.Lng
			if wasInactive {
				venueModel.IsActive = true
				venueModel.IsArchived = false
				venueModel.ReactivatedAtUnixUTC = time.Now().UTC().Unix()
				venueModel.ReactivationReason = "manual-update"
			}
			if err := venueModel.Upsert(r.Context(), as.BunDB); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Can't modify venue"))
				slog.Warn("can't modify venue", "error", err)
				return
			}
			if err := model.LogActivity(r.Context(), as.BunDB, venueModel.AppID, "venue", venueModel.ID, "updated"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(venueModel.ID))
		})))

	muxer.HandleFunc("DELETE /api/venues/{id}", MetricMiddleware(as, AdminAuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			venueID := r.PathValue("id")
			result, err := as.BunDB.NewDelete().
				Model((*model.Venue)(nil)).
				Where("id = ?", venueID).
				Exec(r.Context())
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't delete venue"))
				slog.Error("can't delete venue", "error", err)
				return
			}
			if affected, _ := result.RowsAffected(); affected == 0 {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Venue not found"))
				return
			}
			if err := model.LogActivity(r.Context(), as.BunDB, "1", "venue", venueID, "deleted"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(venueID))
		})))
}
