package route

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"tangocal/src-server/model"
	"tangocal/src-server/utils"
)

func Analytics(muxer *http.ServeMux, as *utils.AppState) {
	type OneDayRespBody struct {
		Date    string         `json:"date"`
		Total   int            `json:"total"`
		Actions map[string]int `json:"actions"`
	}

	// per-day activity counts from the activity log, newest day first
	muxer.HandleFunc("GET /api/analytics/event-activity", MetricMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			appID := r.URL.Query().Get("appId")
			if appID == "" {
				appID = "1"
			}
			rawDays, _ := strconv.Atoi(r.URL.Query().Get("days"))
			days := clampLimit(rawDays, 30, 365)

			since := time.Now().UTC().AddDate(0, 0, -days)
			entries := make([]model.ActivityLog, 0)
			if err := as.BunDB.NewSelect().
				Model(&entries).
				Where("app_id = ?", appID).
				Where("entity_type = ?", "event").
				Where("at >= ?", since.Unix()).
				Order("at DESC").
				Scan(r.Context()); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get activity log"))
				slog.Error("can't get activity log", "error", err)
				return
			}

			byDay := make(map[string]*OneDayRespBody)
			order := make([]string, 0)
			for _, entry := range entries {
				day := time.Unix(entry.AtUnixUTC, 0).UTC().Format(time.DateOnly)
				bucket, ok := byDay[day]
				if !ok {
					bucket = &OneDayRespBody{Date: day, Actions: make(map[string]int)}
					byDay[day] = bucket
					order = append(order, day)
				}
				bucket.Total++
				bucket.Actions[entry.Action]++
			}

			respBody := make([]OneDayRespBody, 0, len(order))
			for _, day := range order {
				respBody = append(respBody, *byDay[day])
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
}
