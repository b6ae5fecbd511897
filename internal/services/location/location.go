package location

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"weather-history/internal/models"
	"weather-history/internal/repositories"
	"weather-history/pkg/logger"
)

var (
	// ErrLocationNotFound means no strategy could place the input text.
	ErrLocationNotFound = errors.New("location not found")

	// ErrNoMatch lets a strategy decline without it counting as a failure.
	ErrNoMatch = repositories.ErrNoMatch
)

// Accepts "lat,lon" or "lat lon" with optional spaces and signs.
var coordinatePattern = regexp.MustCompile(`^\s*([-+]?\d+(?:\.\d+)?)\s*[, ]\s*([-+]?\d+(?:\.\d+)?)\s*$`)

type Strategy interface {
	Name() string
	TryResolve(ctx context.Context, text string) (*models.ResolvedLocation, error)
}

// CoordinateStrategy parses literal coordinates without touching the network.
type CoordinateStrategy struct{}

func (CoordinateStrategy) Name() string {
	return "coordinates"
}

func (CoordinateStrategy) TryResolve(_ context.Context, text string) (*models.ResolvedLocation, error) {
	m := coordinatePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, ErrNoMatch
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil, ErrNoMatch
	}

	return &models.ResolvedLocation{
		DisplayName: fmt.Sprintf("%.4f,%.4f", lat, lon),
		Latitude:    lat,
		Longitude:   lon,
		Source:      models.SourceCoordinates,
	}, nil
}

// GeocoderStrategy adapts a remote geocoder and stamps its results with
// the chain position it was registered under.
type GeocoderStrategy struct {
	geocoder repositories.Geocoder
	source   models.LocationSource
}

func NewGeocoderStrategy(g repositories.Geocoder, source models.LocationSource) *GeocoderStrategy {
	return &GeocoderStrategy{
		geocoder: g,
		source:   source,
	}
}

func (s *GeocoderStrategy) Name() string {
	return s.geocoder.Name()
}

func (s *GeocoderStrategy) TryResolve(ctx context.Context, text string) (*models.ResolvedLocation, error) {
	loc, err := s.geocoder.Geocode(ctx, text)
	if err != nil {
		return nil, err
	}
	loc.Source = s.source
	return loc, nil
}

// Resolver walks its strategies in order and returns the first hit.
type Resolver struct {
	strategies []Strategy
	l          *logger.Logger
}

func NewResolver(l *logger.Logger, strategies ...Strategy) *Resolver {
	return &Resolver{
		strategies: strategies,
		l:          l,
	}
}

// NewDefaultResolver puts coordinate parsing first, then the geocoders in
// order. The first geocoder is the primary, every later one a fallback.
func NewDefaultResolver(l *logger.Logger, geocoders ...repositories.Geocoder) *Resolver {
	strategies := []Strategy{CoordinateStrategy{}}
	for i, g := range geocoders {
		source := models.SourceFallbackGeocoder
		if i == 0 {
			source = models.SourcePrimaryGeocoder
		}
		strategies = append(strategies, NewGeocoderStrategy(g, source))
	}
	return NewResolver(l, strategies...)
}

func (r *Resolver) Resolve(ctx context.Context, text string) (*models.ResolvedLocation, error) {
	for _, s := range r.strategies {
		loc, err := s.TryResolve(ctx, text)
		if err == nil && loc != nil {
			r.l.Debug("location resolved", map[string]any{
				"strategy": s.Name(),
				"query":    text,
				"name":     loc.DisplayName,
			})
			return loc, nil
		}

		if err != nil && !errors.Is(err, ErrNoMatch) {
			r.l.Warning("location strategy failed", map[string]any{
				"strategy": s.Name(),
				"query":    text,
				"err":      err.Error(),
			})
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	r.l.Info("geocoding failed", map[string]any{
		"query": text,
	})

	return nil, ErrLocationNotFound
}
