package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/pocketledger/internal/adapter/http/handler"
	"github.com/iho/pocketledger/internal/adapter/http/middleware"
	"github.com/iho/pocketledger/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PageHandler   *handler.PageHandler
	APIHandler    *handler.APIHandler
	HealthHandler *handler.HealthHandler
	Logger        zerolog.Logger

	// Metrics and Gatherer are optional; /metrics is mounted only when both are set.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.Metrics != nil && cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// Widget page
	r.Get("/", cfg.PageHandler.Show)
	r.Post("/filter", cfg.PageHandler.SetFilter)
	r.Route("/entries", func(r chi.Router) {
		r.Post("/", cfg.PageHandler.Create)
		r.Post("/reset", cfg.PageHandler.Reset)
		r.Post("/{id}/edit", cfg.PageHandler.BeginEdit)
		r.Post("/{id}/cancel", cfg.PageHandler.CancelEdit)
		r.Post("/{id}/save", cfg.PageHandler.SaveEdit)
		r.Post("/{id}/delete", cfg.PageHandler.Delete)
	})

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))

		r.Get("/widget", cfg.APIHandler.Widget)
		r.Get("/totals", cfg.APIHandler.Totals)
		r.Put("/filter", cfg.APIHandler.SetFilter)

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", cfg.APIHandler.List)
			r.Post("/", cfg.APIHandler.Create)
			r.Put("/{id}", cfg.APIHandler.Update)
			r.Delete("/{id}", cfg.APIHandler.Delete)
			r.Post("/{id}/draft", cfg.APIHandler.BeginEdit)
			r.Delete("/{id}/draft", cfg.APIHandler.CancelEdit)
			r.Post("/{id}/draft/save", cfg.APIHandler.SaveEdit)
		})
	})

	return r
}
