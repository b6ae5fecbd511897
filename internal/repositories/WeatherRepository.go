package repositories

import (
	"context"

	"weather-history/config"
	"weather-history/internal/models"
	"weather-history/pkg/logger"
)

type ForecastRepository interface {
	Name() string
	FetchCurrent(ctx context.Context, coord models.Coordinate) (*models.CurrentConditions, error)
	FetchForecastDays(ctx context.Context, coord models.Coordinate, days int) (models.DailySeries, error)
	FetchForecastRange(ctx context.Context, coord models.Coordinate, start, end string) (models.DailySeries, error)
}

type ArchiveRepository interface {
	Name() string
	FetchArchive(ctx context.Context, coord models.Coordinate, start, end string) (models.DailySeries, error)
}

// InitWeatherRepositories builds the forecast and archive clients sharing
// one HTTP client.
func InitWeatherRepositories(cfg *config.Config, l *logger.Logger) (ForecastRepository, ArchiveRepository) {
	httpClient := NewHTTPClient(cfg.Weather.RequestTimeout())

	return NewOpenMeteoRepository(cfg.Weather.ForecastURL, l, httpClient),
		NewOpenMeteoArchiveRepository(cfg.Weather.ArchiveURL, l, httpClient)
}

// InitGeocoders returns the geocoders in the order configured. Unknown
// names are rejected by config validation.
func InitGeocoders(cfg *config.Config, l *logger.Logger) []Geocoder {
	var geocoders []Geocoder
	for _, name := range cfg.Geocoding.Providers {
		switch name {
		case config.GeocoderOpenMeteo:
			geocoders = append(geocoders, NewOpenMeteoGeocoder(
				cfg.Geocoding.OpenMeteoURL,
				cfg.Geocoding.RequestTimeout(),
				l,
			))
		case config.GeocoderNominatim:
			geocoders = append(geocoders, NewNominatimGeocoder(
				cfg.Geocoding.NominatimURL,
				cfg.Geocoding.UserAgent,
				cfg.Geocoding.RequestTimeout(),
				l,
			))
			// Add more cases for new providers to extend the chain
		}
	}

	return geocoders
}
