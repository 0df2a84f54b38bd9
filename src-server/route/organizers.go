package route

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tangocal/src-server/model"
	"tangocal/src-server/utils"

	"github.com/google/uuid"
)

func Organizers(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /api/organizers", MetricMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			appID := r.URL.Query().Get("appId")
			if appID == "" {
				appID = "1"
			}

			organizers := make([]model.Organizer, 0)
			if err := as.BunDB.NewSelect().
				Model(&organizers).
				Where("app_id = ?", appID).
				Order("name ASC").
				Scan(r.Context()); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get organizers"))
				slog.Error("can't get organizers", "error", err)
				return
			}

			respBodyJson, err := json.Marshal(organizers)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	type OrganizerReqBody struct {
		AppID   string `json:"appId"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Website string `json:"website"`
	}

	muxer.HandleFunc("POST /api/organizers", MetricMiddleware(as, AdminAuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody OrganizerReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}

			newOrganizer := model.Organizer{
				ID:       uuid.NewString(),
				AppID:    reqBody.AppID,
				Name:     reqBody.Name,
				Email:    reqBody.Email,
				Phone:    reqBody.Phone,
				URL:      reqBody.Website,
				IsActive: true,
			}
			if err := newOrganizer.Upsert(r.Context(), as.BunDB); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Can't create organizer"))
				slog.Warn("can't create organizer", "error", err)
				return
			}
			if err := model.LogActivity(r.Context(), as.BunDB, newOrganizer.AppID, "organizer", newOrganizer.ID, "created"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(newOrganizer.ID))
		})))

	muxer.HandleFunc("PUT /api/organizers/{id}", MetricMiddleware(as, AdminAuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			organizerModel := new(model.Organizer)
			err := as.BunDB.NewSelect().
				Model(organizerModel).
				Where("id = ?", r.PathValue("id")).
				Scan(r.Context())
			switch {
			case errors.Is(err, sql.ErrNoRows):
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Organizer not found"))
				return
			case err != nil:
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get organizer"))
				slog.Error("can't get organizer", "error", err)
				return
			}

			var reqBody OrganizerReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}

			organizerModel.Name = reqBody.Name
			organizerModel.Email = reqBody.Email
			organizerModel.Phone = reqBody.Phone
			organizerModel.URL = reqBody.Website
			if err := organizerModel.Upsert(r.Context(), as.BunDB); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Can't modify organizer"))
				slog.Warn("can't modify organizer", "error", err)
				return
			}
			if err := model.LogActivity(r.Context(), as.BunDB, organizerModel.AppID, "organizer", organizerModel.ID, "updated"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(organizerModel.ID))
		})))

	muxer.HandleFunc("DELETE /api/organizers/{id}", MetricMiddleware(as, AdminAuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			organizerID := r.PathValue("id")
			result, err := as.BunDB.NewDelete().
				Model((*model.Organizer)(nil)).
				Where("id = ?", organizerID).
				Exec(r.Context())
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't delete organizer"))
				slog.Error("can't delete organizer", "error", err)
				return
			}
			if affected, _ := result.RowsAffected(); affected == 0 {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Organizer not found"))
				return
			}
			if err := model.LogActivity(r.Context(), as.BunDB, "1", "organizer", organizerID, "deleted"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(organizerID))
		})))
}
