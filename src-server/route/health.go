package route

import (
	"encoding/json"
	"net/http"
	"time"

	"tangocal/src-server/utils"
)

func Health(muxer *http.ServeMux, as *utils.AppState) {
	startedAt := time.Now().UTC()

	muxer.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		respBodyJson, _ := json.Marshal(struct {
			Status string `json:"status"`
			Uptime string `json:"uptime"`
		}{"ok", time.Since(startedAt).Truncate(time.Second).String()})
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})

	muxer.HandleFunc("GET /api/health/db", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		startTimer := time.Now()
		err := as.RawDB.PingContext(r.Context())
		latency := time.Since(startTimer)

		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			respBodyJson, _ := json.Marshal(struct {
				Status string `json:"status"`
				Error  string `json:"error"`
			}{"unavailable", err.Error()})
			w.Write(respBodyJson)
			return
		}
		respBodyJson, _ := json.Marshal(struct {
			Status    string `json:"status"`
			LatencyMs int64  `json:"latencyMs"`
		}{"ok", latency.Milliseconds()})
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})
}
