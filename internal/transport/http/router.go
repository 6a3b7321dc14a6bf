package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"mhtidy/internal/config"
	"mhtidy/internal/middleware"
	"mhtidy/internal/store"
)

// NewRouter assembles the dataset read API. metricsHandler may be nil when
// Prometheus is not wired up.
func NewRouter(st *store.Store, logger *slog.Logger, cfg config.ServerConfig, metricsHandler http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	health := NewHealthHandler()
	data := NewDataHandler(st, logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.Handle)
		r.Route("/datasets", func(r chi.Router) {
			r.Get("/", data.List)
			r.Get("/{name}", data.GetJSON)
			r.Get("/{name}/csv", data.GetCSV)
		})
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	return r
}
