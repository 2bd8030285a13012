package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"jobmetrics/internal/cache"
	"jobmetrics/internal/models"
)

// Computer produces a fresh metrics bundle.
type Computer interface {
	Compute(ctx context.Context) (*models.Metrics, error)
}

// MetricsHandler serves the aggregate bundle.
type MetricsHandler struct {
	svc   Computer
	snaps *cache.Snapshots
}

// NewMetricsHandler creates a new metrics handler. snaps may be nil.
func NewMetricsHandler(svc Computer, snaps *cache.Snapshots) *MetricsHandler {
	return &MetricsHandler{svc: svc, snaps: snaps}
}

// Get returns the metrics bundle for the current window.
func (h *MetricsHandler) Get(c fiber.Ctx) error {
	body, err := h.load(c.Context())
	if err != nil {
		slog.Error("failed to compute metrics", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to load metrics")
	}

	c.Set(fiber.HeaderCacheControl, CacheControl)
	return jsonBody(c, body)
}

// load returns the cached bundle if present, otherwise computes and caches it.
func (h *MetricsHandler) load(ctx context.Context) ([]byte, error) {
	body, err := h.snaps.Load()
	if err == nil {
		return body, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("metrics cache read failed", "error", err)
	}

	m, err := h.svc.Compute(ctx)
	if err != nil {
		return nil, err
	}

	body, err = json.Marshal(m)
	if err != nil {
		return nil, err
	}

	if err := h.snaps.Save(body); err != nil {
		slog.Warn("metrics cache write failed", "error", err)
	}
	return body, nil
}

// metrics decodes the current bundle.
func (h *MetricsHandler) metrics(ctx context.Context) (*models.Metrics, error) {
	body, err := h.load(ctx)
	if err != nil {
		return nil, err
	}
	var m models.Metrics
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
