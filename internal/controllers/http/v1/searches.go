package http

import (
	"github.com/gofiber/fiber/v2"

	"weather-history/internal/services/history"
)

// CreateSearch godoc
// @Summary Search and store
// @Description Runs a lookup and stores the query together with a snapshot of the weather returned.
// @Tags Searches
// @Accept json
// @Produce json
// @Param search body history.SearchRequest true "Search"
// @Success 201 {object} models.SearchRecord
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /searches [post]
func (r *routes) handleCreateSearch(c *fiber.Ctx) error {
	var req history.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}
	if msg, ok := r.check(req); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
	}

	rec, err := r.service.Search(c.UserContext(), req)
	if err != nil {
		return r.fail(c, err, map[string]any{"q": req.Query})
	}

	return c.Status(fiber.StatusCreated).JSON(rec)
}

// ListSearches godoc
// @Summary List stored searches
// @Description Newest first.
// @Tags Searches
// @Produce json
// @Param limit query integer false "Maximum rows (default 50, max 1000)" minimum(1) maximum(1000)
// @Success 200 {array} models.SearchQuery
// @Router /searches [get]
func (r *routes) handleListSearches(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", history.DefaultListLimit)

	rows, err := r.service.List(c.UserContext(), limit)
	if err != nil {
		return r.fail(c, err, map[string]any{"limit": limit})
	}

	return c.JSON(rows)
}

// GetSearch godoc
// @Summary Get a stored search
// @Description Returns the query and its most recent snapshot.
// @Tags Searches
// @Produce json
// @Param id path integer true "Search id"
// @Success 200 {object} models.SearchRecord
// @Failure 404 {object} ErrorResponse
// @Router /searches/{id} [get]
func (r *routes) handleGetSearch(c *fiber.Ctx) error {
	id, ok := searchID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msgInvalidID})
	}

	rec, err := r.service.Get(c.UserContext(), id)
	if err != nil {
		return r.fail(c, err, map[string]any{"id": id})
	}

	return c.JSON(rec)
}

// UpdateSearch godoc
// @Summary Edit a stored search
// @Description Re-resolves the location, fetches fresh weather, rewrites the search and appends a snapshot. Leaving out start and end clears the stored range.
// @Tags Searches
// @Accept json
// @Produce json
// @Param id path integer true "Search id"
// @Param search body history.UpdateRequest true "New values"
// @Success 200 {object} models.SearchRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /searches/{id} [put]
func (r *routes) handleUpdateSearch(c *fiber.Ctx) error {
	id, ok := searchID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msgInvalidID})
	}

	var req history.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}
	if msg, ok := r.check(req); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
	}

	rec, err := r.service.Update(c.UserContext(), id, req)
	if err != nil {
		return r.fail(c, err, map[string]any{"id": id})
	}

	return c.JSON(rec)
}

// RefreshSearch godoc
// @Summary Refresh a stored search
// @Description Fetches fresh weather for the stored location and range and appends it as a new snapshot.
// @Tags Searches
// @Produce json
// @Param id path integer true "Search id"
// @Success 200 {object} models.SearchRecord
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /searches/{id}/refresh [post]
func (r *routes) handleRefreshSearch(c *fiber.Ctx) error {
	id, ok := searchID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msgInvalidID})
	}

	rec, err := r.service.Refresh(c.UserContext(), id)
	if err != nil {
		return r.fail(c, err, map[string]any{"id": id})
	}

	return c.JSON(rec)
}

// DeleteSearch godoc
// @Summary Delete a stored search
// @Description Removes the search and all of its snapshots.
// @Tags Searches
// @Param id path integer true "Search id"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Router /searches/{id} [delete]
func (r *routes) handleDeleteSearch(c *fiber.Ctx) error {
	id, ok := searchID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msgInvalidID})
	}

	if err := r.service.Delete(c.UserContext(), id); err != nil {
		return r.fail(c, err, map[string]any{"id": id})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
