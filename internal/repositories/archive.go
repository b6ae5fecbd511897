package repositories

import (
	"context"

	"weather-history/internal/models"
	"weather-history/pkg/logger"
)

const OpenMeteoArchiveURL = "https://archive-api.open-meteo.com/v1/era5"

// OpenMeteoArchiveRepository reads the ERA5 reanalysis archive. It lags
// real time by a few days, so recent dates may come back as nulls.
type OpenMeteoArchiveRepository struct {
	baseURL    string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenMeteoArchiveRepository(baseURL string, l *logger.Logger, httpClient HTTPClient) *OpenMeteoArchiveRepository {
	if baseURL == "" {
		baseURL = OpenMeteoArchiveURL
	}
	return &OpenMeteoArchiveRepository{
		baseURL:    baseURL,
		httpClient: httpClient,
		l:          l,
	}
}

func (a *OpenMeteoArchiveRepository) Name() string {
	return "open-meteo-archive"
}

func (a *OpenMeteoArchiveRepository) FetchArchive(ctx context.Context, coord models.Coordinate, start, end string) (models.DailySeries, error) {
	params := coordinateParams(coord)
	params.Set("daily", dailyFields)
	params.Set("start_date", start)
	params.Set("end_date", end)

	a.l.Debug("making archive request", map[string]any{
		"coordinate": coord.String(),
		"start":      start,
		"end":        end,
	})

	var response struct {
		Daily openMeteoDaily `json:"daily"`
	}
	if err := getJSON(ctx, a.httpClient, a.Name(), a.baseURL, params, &response); err != nil {
		return nil, err
	}

	return response.Daily.toSeries(), nil
}
