package repositories

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-history/config"
)

type recordedRequest struct {
	query     url.Values
	userAgent string
}

func newGeocodingServer(t *testing.T, status int, body string) (*httptest.Server, *int32, *recordedRequest) {
	t.Helper()
	var hits int32
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		rec.query = r.URL.Query()
		rec.userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits, rec
}

func TestOpenMeteoGeocoder_Geocode(t *testing.T) {
	srv, hits, rec := newGeocodingServer(t, http.StatusOK, `{
		"results": [{"name": "Springfield", "admin1": "Illinois", "country": "United States", "latitude": 39.80, "longitude": -89.64}]
	}`)

	g := NewOpenMeteoGeocoder(srv.URL, time.Second, testLogger())
	loc, err := g.Geocode(context.Background(), "Springfield")
	require.NoError(t, err)

	assert.EqualValues(t, 1, *hits)
	assert.Equal(t, "Springfield", rec.query.Get("name"))
	assert.Equal(t, "1", rec.query.Get("count"))
	assert.Equal(t, "en", rec.query.Get("language"))
	assert.Equal(t, "json", rec.query.Get("format"))

	assert.Equal(t, "Springfield, Illinois, United States", loc.DisplayName)
	assert.Equal(t, 39.80, loc.Latitude)
	assert.Equal(t, -89.64, loc.Longitude)
	assert.Empty(t, loc.Source)
}

func TestOpenMeteoGeocoder_SkipsEmptyParts(t *testing.T) {
	srv, _, _ := newGeocodingServer(t, http.StatusOK, `{
		"results": [{"name": "Monaco", "country": "Monaco", "latitude": 43.73, "longitude": 7.42}]
	}`)

	loc, err := NewOpenMeteoGeocoder(srv.URL, time.Second, testLogger()).Geocode(context.Background(), "Monaco")
	require.NoError(t, err)
	assert.Equal(t, "Monaco, Monaco", loc.DisplayName)
}

func TestOpenMeteoGeocoder_NoResults(t *testing.T) {
	for _, body := range []string{`{}`, `{"results": []}`, `{"results": [{"name": "x"}]}`} {
		srv, _, _ := newGeocodingServer(t, http.StatusOK, body)

		_, err := NewOpenMeteoGeocoder(srv.URL, time.Second, testLogger()).Geocode(context.Background(), "nowhere")
		assert.ErrorIs(t, err, ErrNoMatch, body)
	}
}

func TestOpenMeteoGeocoder_UpstreamFailure(t *testing.T) {
	srv, _, _ := newGeocodingServer(t, http.StatusServiceUnavailable, `down`)

	_, err := NewOpenMeteoGeocoder(srv.URL, time.Second, testLogger()).Geocode(context.Background(), "Paris")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.NotErrorIs(t, err, ErrNoMatch)
}

func TestOpenMeteoGeocoder_DoesNotRetry(t *testing.T) {
	srv, hits, _ := newGeocodingServer(t, http.StatusInternalServerError, `{}`)

	_, err := NewOpenMeteoGeocoder(srv.URL, time.Second, testLogger()).Geocode(context.Background(), "Paris")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.EqualValues(t, 1, *hits)
}

func TestNominatimGeocoder_Geocode(t *testing.T) {
	srv, hits, rec := newGeocodingServer(t, http.StatusOK, `[
		{"display_name": "10001, Manhattan, New York, United States", "lat": "40.7484", "lon": "-73.9967"}
	]`)

	g := NewNominatimGeocoder(srv.URL, "weather-history-test/1.0", time.Second, testLogger())
	assert.Equal(t, "nominatim", g.Name())

	loc, err := g.Geocode(context.Background(), "10001")
	require.NoError(t, err)

	assert.EqualValues(t, 1, *hits)
	assert.Equal(t, "weather-history-test/1.0", rec.userAgent)
	assert.Equal(t, "10001", rec.query.Get("q"))
	assert.Equal(t, "jsonv2", rec.query.Get("format"))
	assert.Equal(t, "1", rec.query.Get("limit"))

	assert.Equal(t, "10001, Manhattan, New York, United States", loc.DisplayName)
	assert.Equal(t, 40.7484, loc.Latitude)
	assert.Equal(t, -73.9967, loc.Longitude)
}

func TestNominatimGeocoder_FallsBackToQueryName(t *testing.T) {
	srv, _, _ := newGeocodingServer(t, http.StatusOK, `[{"lat": "1.5", "lon": "2.5"}]`)

	loc, err := NewNominatimGeocoder(srv.URL, "ua", time.Second, testLogger()).Geocode(context.Background(), "somewhere")
	require.NoError(t, err)
	assert.Equal(t, "somewhere", loc.DisplayName)
}

func TestNominatimGeocoder_NoMatch(t *testing.T) {
	for _, body := range []string{`[]`, `[{"display_name": "x", "lat": "north", "lon": "2"}]`} {
		srv, _, _ := newGeocodingServer(t, http.StatusOK, body)

		_, err := NewNominatimGeocoder(srv.URL, "ua", time.Second, testLogger()).Geocode(context.Background(), "x")
		assert.ErrorIs(t, err, ErrNoMatch, body)
	}
}

func TestNominatimGeocoder_InvalidJSON(t *testing.T) {
	srv, _, _ := newGeocodingServer(t, http.StatusOK, `<html>`)

	_, err := NewNominatimGeocoder(srv.URL, "ua", time.Second, testLogger()).Geocode(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestInitGeocoders_FollowsConfiguredOrder(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Geocoding.Providers = []string{config.GeocoderNominatim, config.GeocoderOpenMeteo}

	geocoders := InitGeocoders(cfg, testLogger())
	require.Len(t, geocoders, 2)
	assert.Equal(t, "nominatim", geocoders[0].Name())
	assert.Equal(t, "open-meteo-geocoding", geocoders[1].Name())
}

func TestInitWeatherRepositories(t *testing.T) {
	forecast, archive := InitWeatherRepositories(config.DefaultConfig(), testLogger())
	assert.Equal(t, "open-meteo", forecast.Name())
	assert.Equal(t, "open-meteo-archive", archive.Name())
}
