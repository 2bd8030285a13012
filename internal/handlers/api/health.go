package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
)

// Pinger checks connectivity to the data store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the data store is reachable.
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler creates a new API health handler.
func NewHealthHandler(database Pinger) *HealthHandler {
	return &HealthHandler{db: database, timeout: 2 * time.Second}
}

// Check pings the database and returns 200 or 503.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "database unreachable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
