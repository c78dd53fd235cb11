package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/bbs/backend/internal/setup"
	mw "github.com/itchan-dev/bbs/shared/middleware"
	"github.com/itchan-dev/bbs/shared/middleware/metrics"
)

// New creates the chi router with all routes.
// Write endpoints under /v1 share one per-IP limiter.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(mw.AccessLog)
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	// Backend CSP: strict policy (JSON API only, no scripts/styles needed)
	r.Use(mw.SecurityHeaders(deps.Config.Public.SecureHeaders, mw.APIContentSecurityPolicy))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(handlers.CompressHandler)
		v1.Use(mw.RateLimitWrites(deps.WriteLimiter, mw.GetIP))

		v1.Route("/boards", func(b chi.Router) {
			b.Post("/", h.CreateBoard)
			b.Get("/", h.ListBoards)
			b.Get("/search", h.SearchBoards)
			b.Get("/{id}", h.GetBoard)
			b.Patch("/{id}", h.UpdateBoard)
			b.Delete("/{id}", h.DeleteBoard)
		})

		v1.Post("/comments", h.CreateComment)
		v1.Get("/comments/board/{id}", h.ListComments)

		v1.Post("/alerts", h.CreateAlert)
		v1.Get("/alerts", h.ListAlerts)
		v1.Delete("/alerts/{id}", h.DeleteAlert)
	})

	return r
}
