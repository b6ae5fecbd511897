package http

import (
	"bytes"
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"weather-history/internal/services/history"
)

// ExportJSON godoc
// @Summary Export as JSON
// @Description With id: the search and its latest snapshot. Without: every search (up to 1000), newest first.
// @Tags Export
// @Produce json
// @Param id query integer false "Search id"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Router /export/json [get]
func (r *routes) handleExportJSON(c *fiber.Ctx) error {
	return r.export(c, "json", r.service.WriteJSON)
}

// ExportCSV godoc
// @Summary Export as CSV
// @Description One row per search with the columns id, input_text, resolved_name, lat, lon, date_start, date_end, label, created_at.
// @Tags Export
// @Produce text/csv
// @Param id query integer false "Search id"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Router /export/csv [get]
func (r *routes) handleExportCSV(c *fiber.Ctx) error {
	return r.export(c, "csv", r.service.WriteCSV)
}

func (r *routes) export(c *fiber.Ctx, ext string, write func(context.Context, io.Writer, int64) error) error {
	id, ok := exportID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msgInvalidID})
	}

	var buf bytes.Buffer
	if err := write(c.UserContext(), &buf, id); err != nil {
		return r.fail(c, err, map[string]any{"id": id, "format": ext})
	}

	c.Attachment(history.ExportFilename(id, ext))
	if ext == "csv" {
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	}
	return c.Send(buf.Bytes())
}
