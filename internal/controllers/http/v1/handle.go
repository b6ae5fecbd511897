package http

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weather-history/internal/models"
	"weather-history/internal/services/history"
	"weather-history/internal/services/location"
)

const (
	msgLocationNotFound   = "Could not resolve that location. Try a city, ZIP, or 'lat,lon'."
	msgEmptyQuery         = "Enter a city, ZIP, or 'lat,lon'."
	msgWeatherUnavailable = "Weather lookup failed. Please try again."
	msgRangeUnavailable   = "Could not fetch date-range data."
	msgNotFound           = "Record not found."
	msgInvalidID          = "Invalid id."
	msgInternal           = "Internal server error"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Could not resolve that location. Try a city, ZIP, or 'lat,lon'."`
}

// GetWeather godoc
// @Summary Look up weather for a location
// @Description Resolves free text (city, ZIP or "lat,lon") and returns current conditions plus either a 5-day forecast or, when start and end are given, one row per day of the range. Nothing is stored.
// @Tags Weather
// @Produce json
// @Param q query string false "Location text" example(Berlin)
// @Param lat query number false "Latitude, used when q is empty" minimum(-90) maximum(90)
// @Param lon query number false "Longitude, used when q is empty" minimum(-180) maximum(180)
// @Param start query string false "Range start (YYYY-MM-DD)" example(2025-07-01)
// @Param end query string false "Range end (YYYY-MM-DD)" example(2025-07-10)
// @Success 200 {object} history.Report "Successful response"
// @Failure 400 {object} ErrorResponse "Invalid dates or unresolvable location"
// @Failure 502 {object} ErrorResponse "Upstream weather provider failed"
// @Router /weather [get]
// @Example {curl} Example usage:
//
//	curl -X GET "http://localhost:8080/weather?q=Berlin&start=2025-07-01&end=2025-07-10"
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	req := history.LookupRequest{
		Query: c.Query("q"),
		Start: c.Query("start"),
		End:   c.Query("end"),
	}

	var err error
	if req.Lat, err = optionalFloat(c.Query("lat")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid latitude format"})
	}
	if req.Lon, err = optionalFloat(c.Query("lon")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid longitude format"})
	}

	if msg, ok := r.check(req); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
	}

	report, err := r.service.Lookup(c.UserContext(), req)
	if err != nil {
		return r.fail(c, err, map[string]any{"q": req.Query})
	}

	return c.JSON(report)
}

// fail maps a service error to a status and a user facing message.
func (r *routes) fail(c *fiber.Ctx, err error, fields map[string]any) error {
	status, msg := fiber.StatusInternalServerError, msgInternal

	var rangeErr *models.DateRangeError
	switch {
	case errors.As(err, &rangeErr):
		status, msg = fiber.StatusBadRequest, rangeErr.Message
	case errors.Is(err, history.ErrEmptyQuery):
		status, msg = fiber.StatusBadRequest, msgEmptyQuery
	case errors.Is(err, location.ErrLocationNotFound):
		status, msg = fiber.StatusBadRequest, msgLocationNotFound
	case errors.Is(err, history.ErrNotFound):
		status, msg = fiber.StatusNotFound, msgNotFound
	case errors.Is(err, history.ErrRangeUnavailable):
		status, msg = fiber.StatusBadGateway, msgRangeUnavailable
	case errors.Is(err, history.ErrWeatherUnavailable):
		status, msg = fiber.StatusBadGateway, msgWeatherUnavailable
	case errors.Is(err, context.Canceled):
		status, msg = fiber.StatusRequestTimeout, "Request cancelled"
	}

	if fields == nil {
		fields = map[string]any{}
	}
	fields["path"] = c.Path()
	fields["status"] = status

	if status >= fiber.StatusInternalServerError {
		r.l.Error(err, fields)
	} else {
		fields["err"] = err.Error()
		r.l.Debug("request rejected", fields)
	}

	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

// check runs struct validation and renders the first failure.
func (r *routes) check(v any) (string, bool) {
	err := r.validate.Struct(v)
	if err == nil {
		return "", true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error(), false
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Missing required field: %s", fe.Field()), false
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()), false
	case "latitude":
		return "Latitude must be between -90 and 90", false
	case "longitude":
		return "Longitude must be between -180 and 180", false
	}
	return fmt.Sprintf("Invalid value for %s", fe.Field()), false
}

func optionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// searchID parses the :id route parameter.
func searchID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// exportID parses the optional ?id= query parameter; absent means all.
func exportID(c *fiber.Ctx) (int64, bool) {
	raw := strings.TrimSpace(c.Query("id"))
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
