package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"weather-history/internal/models"
	"weather-history/pkg/units"
)

const dailyFields = "temperature_2m_max,temperature_2m_min,precipitation_sum,weather_code"

// openMeteoDaily is the "daily" block shared by the forecast and archive
// endpoints. Values are pointers because upstream sends null for gaps.
type openMeteoDaily struct {
	Time             []string   `json:"time"`
	Temperature2mMax []*float64 `json:"temperature_2m_max"`
	Temperature2mMin []*float64 `json:"temperature_2m_min"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
	WeatherCode      []*int     `json:"weather_code"`
}

// toSeries builds one record per entry of Time. Shorter arrays leave the
// missing fields nil.
func (d openMeteoDaily) toSeries() models.DailySeries {
	series := make(models.DailySeries, 0, len(d.Time))
	for i, date := range d.Time {
		tmax := at(d.Temperature2mMax, i)
		tmin := at(d.Temperature2mMin, i)
		precip := at(d.PrecipitationSum, i)
		code := at(d.WeatherCode, i)

		series = append(series, models.DailyRecord{
			Date:        date,
			TmaxC:       tmax,
			TmaxF:       units.CelsiusToFahrenheit(tmax),
			TminC:       tmin,
			TminF:       units.CelsiusToFahrenheit(tmin),
			PrecipMM:    precip,
			PrecipIn:    units.MillimetersToInches(precip),
			WeatherCode: code,
			WeatherDesc: models.DescribeCode(code),
		})
	}
	return series
}

func at[T any](values []*T, i int) *T {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func coordinateParams(coord models.Coordinate) url.Values {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", coord.Latitude))
	params.Set("longitude", fmt.Sprintf("%f", coord.Longitude))
	params.Set("timezone", "auto")
	return params
}

// getJSON issues a GET and decodes a 2xx body into out. Any failure is
// returned as an *UpstreamError.
func getJSON(ctx context.Context, client HTTPClient, provider, baseURL string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return upstreamError(provider, 0, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := client.Do(req)
	if err != nil {
		return upstreamError(provider, 0, fmt.Errorf("failed to do request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return upstreamError(provider, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return upstreamError(provider, resp.StatusCode, fmt.Errorf("%s", resp.Status))
	}

	if err = json.Unmarshal(body, out); err != nil {
		return upstreamError(provider, resp.StatusCode, fmt.Errorf("failed to parse JSON response: %w", err))
	}

	return nil
}
