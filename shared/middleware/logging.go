package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/itchan-dev/bbs/shared/logger"
	"github.com/itchan-dev/bbs/shared/middleware/metrics"
)

// AccessLog logs one line per request through the global logger.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := metrics.NewStatusRecorder(w)
		next.ServeHTTP(rec, r)

		level := logger.Log.Info
		if rec.Status >= http.StatusInternalServerError {
			level = logger.Log.Error
		}
		level("request",
			"component", "http",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"route", metrics.RoutePattern(r),
			"status", rec.Status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
