package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"weather-history/config"
	"weather-history/internal/models"
	"weather-history/internal/repositories"
	"weather-history/pkg/logger"
)

const forecastWindow = 5

// WeatherService fetches point-in-time weather and merges archive and
// forecast data into one daily series for arbitrary date ranges.
type WeatherService struct {
	forecast repositories.ForecastRepository
	archive  repositories.ArchiveRepository
	l        *logger.Logger

	now      func() time.Time
	boundary string
}

type Option func(*WeatherService)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *WeatherService) {
		s.now = now
	}
}

// WithBoundary selects what happens to today's record when a range spans
// both sources: config.BoundaryDedupe keeps only the forecast copy,
// config.BoundaryKeep returns both.
func WithBoundary(policy string) Option {
	return func(s *WeatherService) {
		if policy == config.BoundaryKeep || policy == config.BoundaryDedupe {
			s.boundary = policy
		}
	}
}

func NewWeatherService(
	forecast repositories.ForecastRepository,
	archive repositories.ArchiveRepository,
	l *logger.Logger,
	opts ...Option,
) *WeatherService {
	s := &WeatherService{
		forecast: forecast,
		archive:  archive,
		l:        l,
		now:      time.Now,
		boundary: config.BoundaryDedupe,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *WeatherService) FetchCurrent(ctx context.Context, coord models.Coordinate) (*models.CurrentConditions, error) {
	cur, err := s.forecast.FetchCurrent(ctx, coord)
	if err != nil {
		s.l.Warning("failed to fetch current conditions", map[string]any{
			"coordinate": coord.String(),
			"err":        err.Error(),
		})
		return nil, errors.Wrap(err, "fetch current conditions")
	}
	return cur, nil
}

// FetchForecast5d returns at most five daily records starting today.
func (s *WeatherService) FetchForecast5d(ctx context.Context, coord models.Coordinate) (models.DailySeries, error) {
	series, err := s.forecast.FetchForecastDays(ctx, coord, forecastWindow)
	if err != nil {
		s.l.Warning("failed to fetch forecast", map[string]any{
			"coordinate": coord.String(),
			"err":        err.Error(),
		})
		return nil, errors.Wrap(err, "fetch 5 day forecast")
	}
	return series.Truncate(forecastWindow), nil
}

// FetchRange returns one record per day of r in ascending order. Days before
// today come from the archive, days after it from the forecast; a range
// containing today is split and both halves are fetched concurrently.
func (s *WeatherService) FetchRange(ctx context.Context, coord models.Coordinate, r models.DateRange) (models.DailySeries, error) {
	today := s.today()
	start, end := r.Start(), r.End()

	s.l.Info("starting range fetch", map[string]any{
		"coordinate": coord.String(),
		"range":      r.String(),
		"today":      today.Format(models.DateLayout),
	})

	switch {
	case end.Before(today):
		series, err := s.archive.FetchArchive(ctx, coord, r.StartString(), r.EndString())
		if err != nil {
			return nil, errors.Wrap(err, "fetch archive range")
		}
		return series, nil

	case start.After(today):
		series, err := s.forecast.FetchForecastRange(ctx, coord, r.StartString(), r.EndString())
		if err != nil {
			return nil, errors.Wrap(err, "fetch forecast range")
		}
		return series, nil
	}

	return s.fetchStraddling(ctx, coord, r, today.Format(models.DateLayout))
}

func (s *WeatherService) fetchStraddling(ctx context.Context, coord models.Coordinate, r models.DateRange, today string) (models.DailySeries, error) {
	var (
		past, future       models.DailySeries
		pastErr, futureErr error
	)

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		past, pastErr = s.archive.FetchArchive(ctx, coord, r.StartString(), today)
	}()

	go func() {
		defer wg.Done()
		future, futureErr = s.forecast.FetchForecastRange(ctx, coord, today, r.EndString())
	}()

	wg.Wait()

	if pastErr != nil && futureErr != nil {
		return nil, fmt.Errorf("fetch range %s: archive: %w; forecast: %w", r, pastErr, futureErr)
	}

	if pastErr != nil {
		s.l.Warning("archive half of range failed, returning forecast only", map[string]any{
			"coordinate": coord.String(),
			"range":      r.String(),
			"err":        pastErr.Error(),
		})
		past = nil
	}
	if futureErr != nil {
		s.l.Warning("forecast half of range failed, returning archive only", map[string]any{
			"coordinate": coord.String(),
			"range":      r.String(),
			"err":        futureErr.Error(),
		})
		future = nil
	}

	if s.boundary == config.BoundaryDedupe {
		past = withoutDates(past, future)
	}

	merged := make(models.DailySeries, 0, len(past)+len(future))
	merged = append(merged, past...)
	merged = append(merged, future...)

	s.l.Info("completed range fetch", map[string]any{
		"range":    r.String(),
		"archive":  len(past),
		"forecast": len(future),
	})

	return merged, nil
}

// withoutDates drops every record of series whose date also appears in other.
func withoutDates(series, other models.DailySeries) models.DailySeries {
	if len(series) == 0 || len(other) == 0 {
		return series
	}

	seen := make(map[string]struct{}, len(other))
	for _, rec := range other {
		seen[rec.Date] = struct{}{}
	}

	kept := make(models.DailySeries, 0, len(series))
	for _, rec := range series {
		if _, dup := seen[rec.Date]; !dup {
			kept = append(kept, rec)
		}
	}
	return kept
}

// today is the clock's calendar date as a UTC midnight, comparable with
// DateRange bounds.
func (s *WeatherService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
