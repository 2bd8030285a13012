package api

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"jobmetrics/internal/models"
	"jobmetrics/internal/validation"
)

// ExportCSV returns one series as a Name,Jobs CSV file, optionally filtered
// by a case-insensitive substring match on the label (?q=).
func (h *MetricsHandler) ExportCSV(c fiber.Ctx) error {
	series := c.Params("series")

	q := c.Query("q")
	if ok, msg := validation.ValidateQuery(q); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	m, err := h.metrics(c.Context())
	if err != nil {
		slog.Error("failed to compute metrics", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to load metrics")
	}

	rows, ok := m.Series(series)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "unknown series")
	}

	body, err := encodeCSV(filterCounts(rows, validation.NormalizeQuery(q)))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to encode csv")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+series+`.csv"`)
	c.Set(fiber.HeaderCacheControl, CacheControl)
	return c.Send(body)
}

func filterCounts(rows []models.Count, needle string) []models.Count {
	if needle == "" {
		return rows
	}
	var out []models.Count
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Label), needle) {
			out = append(out, r)
		}
	}
	return out
}

func encodeCSV(rows []models.Count) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Name", "Jobs"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Label, strconv.Itoa(r.N)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
