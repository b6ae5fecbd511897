package repositories

import (
	"context"
	"net/url"
	"strconv"

	"weather-history/internal/models"
	"weather-history/pkg/logger"
	"weather-history/pkg/units"
)

const (
	OpenMeteoForecastURL = "https://api.open-meteo.com/v1/forecast"

	currentFields = "temperature_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m"
)

// OpenMeteoRepository talks to the Open-Meteo forecast endpoint.
type OpenMeteoRepository struct {
	baseURL    string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenMeteoRepository(baseURL string, l *logger.Logger, httpClient HTTPClient) *OpenMeteoRepository {
	if baseURL == "" {
		baseURL = OpenMeteoForecastURL
	}
	return &OpenMeteoRepository{
		baseURL:    baseURL,
		httpClient: httpClient,
		l:          l,
	}
}

func (o *OpenMeteoRepository) Name() string {
	return "open-meteo"
}

type openMeteoCurrent struct {
	Temperature2m       *float64 `json:"temperature_2m"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
	Precipitation       *float64 `json:"precipitation"`
	WeatherCode         *int     `json:"weather_code"`
	WindSpeed10m        *float64 `json:"wind_speed_10m"`
}

func (o *OpenMeteoRepository) FetchCurrent(ctx context.Context, coord models.Coordinate) (*models.CurrentConditions, error) {
	params := coordinateParams(coord)
	params.Set("current", currentFields)
	params.Set("wind_speed_unit", "ms")

	o.l.Debug("making openmeteo current request", map[string]any{
		"coordinate": coord.String(),
	})

	var response struct {
		Current openMeteoCurrent `json:"current"`
	}
	if err := getJSON(ctx, o.httpClient, o.Name(), o.baseURL, params, &response); err != nil {
		return nil, err
	}

	cur := response.Current
	return &models.CurrentConditions{
		TemperatureC:    cur.Temperature2m,
		TemperatureF:    units.CelsiusToFahrenheit(cur.Temperature2m),
		ApparentC:       cur.ApparentTemperature,
		ApparentF:       units.CelsiusToFahrenheit(cur.ApparentTemperature),
		WindSpeedMS:     cur.WindSpeed10m,
		PrecipitationMM: cur.Precipitation,
		WeatherCode:     cur.WeatherCode,
		WeatherDesc:     models.DescribeCode(cur.WeatherCode),
	}, nil
}

// FetchForecastDays returns the next days daily records starting today.
func (o *OpenMeteoRepository) FetchForecastDays(ctx context.Context, coord models.Coordinate, days int) (models.DailySeries, error) {
	params := coordinateParams(coord)
	params.Set("daily", dailyFields)
	params.Set("forecast_days", strconv.Itoa(days))

	return o.fetchDaily(ctx, coord, params)
}

// FetchForecastRange returns forecast records for the inclusive window
// [start, end], both formatted as YYYY-MM-DD.
func (o *OpenMeteoRepository) FetchForecastRange(ctx context.Context, coord models.Coordinate, start, end string) (models.DailySeries, error) {
	params := coordinateParams(coord)
	params.Set("daily", dailyFields)
	params.Set("start_date", start)
	params.Set("end_date", end)

	return o.fetchDaily(ctx, coord, params)
}

func (o *OpenMeteoRepository) fetchDaily(ctx context.Context, coord models.Coordinate, params url.Values) (models.DailySeries, error) {
	o.l.Debug("making openmeteo daily request", map[string]any{
		"coordinate": coord.String(),
		"params":     params,
	})

	var response struct {
		Daily openMeteoDaily `json:"daily"`
	}
	if err := getJSON(ctx, o.httpClient, o.Name(), o.baseURL, params, &response); err != nil {
		return nil, err
	}

	o.l.Debug("parsed openmeteo daily response", map[string]any{
		"days": len(response.Daily.Time),
	})

	return response.Daily.toSeries(), nil
}
