package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/findash/internal/adapter/http/handler"
	"github.com/iho/findash/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ReportHandler   *handler.ReportHandler
	ForecastHandler *handler.ForecastHandler
	HealthHandler   *handler.HealthHandler
	Logger          zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and telemetry endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/reports", func(r chi.Router) {
			r.Get("/overview", cfg.ReportHandler.Overview)
			r.Get("/balances", cfg.ReportHandler.Balances)
			r.Get("/breakdown", cfg.ReportHandler.Breakdown)
			r.Get("/months", cfg.ReportHandler.Months)
			r.Get("/table/year", cfg.ReportHandler.TableByYear)
			r.Get("/table/month", cfg.ReportHandler.TableByMonth)
			r.Get("/netchange", cfg.ReportHandler.NetChange)
			r.Get("/heatmap", cfg.ReportHandler.Heatmap)
			r.Get("/milestones", cfg.ReportHandler.Milestones)
			r.Get("/forecast", cfg.ForecastHandler.Forecast)
		})
	})

	return r
}
