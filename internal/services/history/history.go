package history

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"weather-history/internal/models"
	"weather-history/internal/storage"
	"weather-history/pkg/logger"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 1000

	// geolocationInput is stored as the input text when the caller sent
	// bare coordinates instead of typing a location.
	geolocationInput = "direct-latlon/geolocation"
)

var (
	ErrNotFound = storage.ErrNotFound

	// ErrWeatherUnavailable means current conditions could not be fetched.
	ErrWeatherUnavailable = errors.New("weather lookup failed")
	// ErrRangeUnavailable means neither source produced date-range data.
	ErrRangeUnavailable = errors.New("date-range fetch failed")
	// ErrEmptyQuery means neither location text nor coordinates were given.
	ErrEmptyQuery = errors.New("location is required")
)

type WeatherFetcher interface {
	FetchCurrent(ctx context.Context, coord models.Coordinate) (*models.CurrentConditions, error)
	FetchForecast5d(ctx context.Context, coord models.Coordinate) (models.DailySeries, error)
	FetchRange(ctx context.Context, coord models.Coordinate, r models.DateRange) (models.DailySeries, error)
}

type LocationResolver interface {
	Resolve(ctx context.Context, text string) (*models.ResolvedLocation, error)
}

type LookupRequest struct {
	Query string   `json:"q" validate:"max=256" example:"Berlin"`
	Lat   *float64 `json:"lat,omitempty" validate:"omitempty,latitude" example:"52.52"`
	Lon   *float64 `json:"lon,omitempty" validate:"omitempty,longitude" example:"13.41"`
	Start string   `json:"start,omitempty" example:"2025-07-01"`
	End   string   `json:"end,omitempty" example:"2025-07-10"`
}

type SearchRequest struct {
	LookupRequest
	Label *string `json:"label,omitempty" validate:"omitempty,max=128" example:"summer trip"`
}

type UpdateRequest struct {
	Query string  `json:"input_text" validate:"required,max=256" example:"Hamburg"`
	Label *string `json:"label,omitempty" validate:"omitempty,max=128" example:"work"`
	Start string  `json:"start,omitempty" example:"2025-08-01"`
	End   string  `json:"end,omitempty" example:"2025-08-03"`
}

// Report is a live lookup. Forecast carries the 5-day forecast in point
// mode and Range the merged daily rows in range mode.
type Report struct {
	Location  models.ResolvedLocation   `json:"location"`
	DateStart *string                   `json:"date_start"`
	DateEnd   *string                   `json:"date_end"`
	Current   *models.CurrentConditions `json:"current"`
	Forecast  models.DailySeries        `json:"forecast,omitempty"`
	Range     models.DailySeries        `json:"range_rows,omitempty"`
}

// Rows is the daily series a snapshot of this report stores.
func (r *Report) Rows() models.DailySeries {
	if r.Range != nil {
		return r.Range
	}
	if r.Forecast == nil {
		return models.DailySeries{}
	}
	return r.Forecast
}

type Service struct {
	store        storage.Store
	resolver     LocationResolver
	weather      WeatherFetcher
	maxRangeDays int
	l            *logger.Logger
}

func NewService(
	store storage.Store,
	resolver LocationResolver,
	weather WeatherFetcher,
	maxRangeDays int,
	l *logger.Logger,
) *Service {
	return &Service{
		store:        store,
		resolver:     resolver,
		weather:      weather,
		maxRangeDays: maxRangeDays,
		l:            l,
	}
}

// Lookup validates, resolves and fetches without persisting anything.
func (s *Service) Lookup(ctx context.Context, req LookupRequest) (*Report, error) {
	dr, err := models.ValidateDateRange(req.Start, req.End, s.maxRangeDays)
	if err != nil {
		return nil, err
	}

	text, err := locationText(req)
	if err != nil {
		return nil, err
	}

	loc, err := s.resolver.Resolve(ctx, text)
	if err != nil {
		return nil, err
	}

	return s.report(ctx, *loc, dr)
}

func (s *Service) report(ctx context.Context, loc models.ResolvedLocation, dr *models.DateRange) (*Report, error) {
	rep := &Report{Location: loc}
	coord := loc.Coordinate()

	if dr != nil {
		rows, err := s.weather.FetchRange(ctx, coord, *dr)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRangeUnavailable, err)
		}
		rep.Range = rows

		start, end := dr.StartString(), dr.EndString()
		rep.DateStart, rep.DateEnd = &start, &end
	}

	cur, err := s.weather.FetchCurrent(ctx, coord)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWeatherUnavailable, err)
	}
	rep.Current = cur

	if dr == nil {
		forecast, err := s.weather.FetchForecast5d(ctx, coord)
		if err != nil {
			s.l.Warning("forecast unavailable, storing current conditions only", map[string]any{
				"location": loc.DisplayName,
				"err":      err.Error(),
			})
			forecast = models.DailySeries{}
		}
		rep.Forecast = forecast
	}

	return rep, nil
}

// Search runs a lookup and stores the query with its first snapshot.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*models.SearchRecord, error) {
	rep, err := s.Lookup(ctx, req.LookupRequest)
	if err != nil {
		return nil, err
	}

	input := strings.TrimSpace(req.Query)
	if input == "" {
		input = geolocationInput
	}

	q := &models.SearchQuery{
		InputText:    input,
		ResolvedName: rep.Location.DisplayName,
		Latitude:     rep.Location.Latitude,
		Longitude:    rep.Location.Longitude,
		DateStart:    rep.DateStart,
		DateEnd:      rep.DateEnd,
		Label:        cleanLabel(req.Label),
	}
	snap := &models.Snapshot{
		Current:  rep.Current,
		Forecast: rep.Rows(),
	}

	if err := s.store.CreateSearch(ctx, q, snap); err != nil {
		return nil, pkgerrors.Wrap(err, "store search")
	}

	s.l.Info("search stored", map[string]any{
		"id":       q.ID,
		"location": q.ResolvedName,
	})

	return &models.SearchRecord{Query: *q, Snapshot: snap}, nil
}

// Get returns the query and its most recent snapshot.
func (s *Service) Get(ctx context.Context, id int64) (*models.SearchRecord, error) {
	q, err := s.store.GetSearch(ctx, id)
	if err != nil {
		return nil, err
	}

	snap, err := s.store.LatestSnapshot(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	return &models.SearchRecord{Query: *q, Snapshot: snap}, nil
}

// List returns stored searches newest first. limit <= 0 means
// DefaultListLimit; it is capped at MaxListLimit.
func (s *Service) List(ctx context.Context, limit int) ([]models.SearchQuery, error) {
	return s.store.ListSearches(ctx, clampLimit(limit))
}

// Update re-resolves and re-fetches an existing search, rewrites it and
// appends a new snapshot. An absent date range clears the stored one.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*models.SearchRecord, error) {
	if _, err := s.store.GetSearch(ctx, id); err != nil {
		return nil, err
	}

	rep, err := s.Lookup(ctx, LookupRequest{
		Query: req.Query,
		Start: req.Start,
		End:   req.End,
	})
	if err != nil {
		return nil, err
	}

	q := &models.SearchQuery{
		ID:           id,
		InputText:    strings.TrimSpace(req.Query),
		ResolvedName: rep.Location.DisplayName,
		Latitude:     rep.Location.Latitude,
		Longitude:    rep.Location.Longitude,
		DateStart:    rep.DateStart,
		DateEnd:      rep.DateEnd,
		Label:        cleanLabel(req.Label),
	}
	snap := &models.Snapshot{
		Current:  rep.Current,
		Forecast: rep.Rows(),
	}

	if err := s.store.UpdateSearch(ctx, q, snap); err != nil {
		return nil, pkgerrors.Wrapf(err, "update search %d", id)
	}

	return s.Get(ctx, id)
}

// Refresh fetches fresh weather for a stored search and appends it as a
// new snapshot. The stored location is reused as is.
func (s *Service) Refresh(ctx context.Context, id int64) (*models.SearchRecord, error) {
	q, err := s.store.GetSearch(ctx, id)
	if err != nil {
		return nil, err
	}

	var dr *models.DateRange
	if q.HasDateRange() {
		// the span limit was enforced when the search was written
		dr, err = models.ValidateDateRange(*q.DateStart, *q.DateEnd, math.MaxInt32)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "stored range of search %d", id)
		}
	}

	rep, err := s.report(ctx, models.ResolvedLocation{
		DisplayName: q.ResolvedName,
		Latitude:    q.Latitude,
		Longitude:   q.Longitude,
	}, dr)
	if err != nil {
		return nil, err
	}

	snap := &models.Snapshot{
		QueryID:  id,
		Current:  rep.Current,
		Forecast: rep.Rows(),
	}
	if err := s.store.AppendSnapshot(ctx, snap); err != nil {
		return nil, pkgerrors.Wrapf(err, "append snapshot to search %d", id)
	}

	return &models.SearchRecord{Query: *q, Snapshot: snap}, nil
}

// RefreshRecent refreshes the newest limit searches and reports how many
// succeeded. Individual failures are logged and do not stop the batch.
func (s *Service) RefreshRecent(ctx context.Context, limit int) (int, error) {
	queries, err := s.store.ListSearches(ctx, clampLimit(limit))
	if err != nil {
		return 0, pkgerrors.Wrap(err, "list searches to refresh")
	}

	refreshed := 0
	for _, q := range queries {
		if ctx.Err() != nil {
			return refreshed, ctx.Err()
		}
		if _, err := s.Refresh(ctx, q.ID); err != nil {
			s.l.Warning("failed to refresh search", map[string]any{
				"id":  q.ID,
				"err": err.Error(),
			})
			continue
		}
		refreshed++
	}

	return refreshed, nil
}

// Delete removes a search and all of its snapshots.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteSearch(ctx, id); err != nil {
		return err
	}
	s.l.Info("search deleted", map[string]any{"id": id})
	return nil
}

func locationText(req LookupRequest) (string, error) {
	if text := strings.TrimSpace(req.Query); text != "" {
		return text, nil
	}
	if req.Lat != nil && req.Lon != nil {
		return fmt.Sprintf("%f,%f", *req.Lat, *req.Lon), nil
	}
	return "", ErrEmptyQuery
}

func cleanLabel(label *string) *string {
	if label == nil {
		return nil
	}
	v := strings.TrimSpace(*label)
	if v == "" {
		return nil
	}
	return &v
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
