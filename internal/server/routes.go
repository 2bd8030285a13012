package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobmetrics/internal/handlers/api"
)

// Handlers groups the route handlers registered on the server.
type Handlers struct {
	Metrics *api.MetricsHandler
	Health  *api.HealthHandler
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(h Handlers) {
	s.App.Get("/api/metrics", h.Metrics.Get)
	s.App.Get("/api/metrics/:series/csv", h.Metrics.ExportCSV)

	s.App.Get("/healthz", h.Health.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
