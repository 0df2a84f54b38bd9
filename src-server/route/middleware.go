package route

import (
	"context"
	"net/http"
	"strings"
	"time"

	"tangocal/src-server/jwt"
	"tangocal/src-server/utils"
)

type AdminCtxKeyType string

const AdminCtxKey AdminCtxKeyType = "admin"

// AdminAuthMiddleware guards mutating endpoints with a bearer token minted by
// the jwt package. Read endpoints stay public.
func AdminAuthMiddleware(as *utils.AppState, next func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization bearer token not found"))
			return
		}

		payload, err := jwt.Decode(token, as.Config.GetAdminTokenSecret())
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid token"))
			return
		}
		if payload.Role != jwt.RoleAdmin {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("Admin role required"))
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), AdminCtxKey, payload)))
	}
}

// MetricMiddleware reports request latency; the send never blocks so routes
// keep working when the metric collector isn't running (tests, dev).
func MetricMiddleware(as *utils.AppState, next func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		startTimer := time.Now()
		next(w, r)
		select {
		case as.MetricChans.HttpRequest <- float64(time.Since(startTimer).Microseconds()):
		default:
		}
	}
}
