package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastBody = `{
	"current": {
		"temperature_2m": 18.0,
		"apparent_temperature": 17.0,
		"precipitation": 0.0,
		"weather_code": 3,
		"wind_speed_10m": 2.5
	},
	"daily": {
		"time": ["2025-07-01", "2025-07-02"],
		"temperature_2m_max": [24.0, 25.0],
		"temperature_2m_min": [14.0, 15.0],
		"precipitation_sum": [0.0, 1.2],
		"weather_code": [1, 61]
	}
}`

// writeConfig points storage at a temp sqlite file and every upstream at url.
func writeConfig(t *testing.T, url string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`
weather:
  forecast_url: %[1]s/forecast
  archive_url: %[1]s/archive
geocoding:
  open_meteo_url: %[1]s/geocode
  nominatim_url: %[1]s/search
storage:
  driver: sqlite
  dsn: %[2]s
log:
  level: error
`, url, filepath.Join(dir, "weather.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newUpstream(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var geocodeHits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/forecast":
			_, _ = io.WriteString(w, forecastBody)
		case "/geocode":
			atomic.AddInt32(&geocodeHits, 1)
			_, _ = io.WriteString(w, `{"results": []}`)
		case "/search":
			atomic.AddInt32(&geocodeHits, 1)
			_, _ = io.WriteString(w, `[]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &geocodeHits
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"serve", "lookup", "export"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	flag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "config/config.yaml", flag.DefValue)
}

func TestLookupCmd_Coordinates(t *testing.T) {
	srv, geocodeHits := newUpstream(t)
	cfgPath := writeConfig(t, srv.URL)

	out, err := run(t, "lookup", "52.52,13.41", "--config", cfgPath)
	require.NoError(t, err)

	var report struct {
		Location struct {
			DisplayName string `json:"display_name"`
			Source      string `json:"source_provider"`
		} `json:"location"`
		Current struct {
			TemperatureC float64 `json:"temperature_c"`
		} `json:"current"`
		Forecast []struct {
			Date string `json:"date"`
		} `json:"forecast"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, "52.5200,13.4100", report.Location.DisplayName)
	assert.Equal(t, "coordinates", report.Location.Source)
	assert.InDelta(t, 18.0, report.Current.TemperatureC, 0.001)
	require.Len(t, report.Forecast, 2)
	assert.Equal(t, "2025-07-01", report.Forecast[0].Date)
	assert.Zero(t, atomic.LoadInt32(geocodeHits))
}

func TestLookupCmd_UnknownLocation(t *testing.T) {
	srv, geocodeHits := newUpstream(t)
	cfgPath := writeConfig(t, srv.URL)

	_, err := run(t, "lookup", "Atlantis", "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(geocodeHits))
}

func TestLookupCmd_InvalidRange(t *testing.T) {
	srv, _ := newUpstream(t)
	cfgPath := writeConfig(t, srv.URL)

	_, err := run(t, "lookup", "52.52,13.41", "--start", "2025-07-10", "--end", "2025-07-01", "--config", cfgPath)
	require.Error(t, err)
}

func TestLookupCmd_RequiresLocation(t *testing.T) {
	_, err := run(t, "lookup")
	require.Error(t, err)
}

func TestExportCmd_SavedSearch(t *testing.T) {
	srv, _ := newUpstream(t)
	cfgPath := writeConfig(t, srv.URL)

	_, err := run(t, "lookup", "52.52,13.41", "--save", "--label", "home", "--config", cfgPath)
	require.NoError(t, err)

	out, err := run(t, "export", "--format", "csv", "--config", cfgPath)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewBufferString(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "input_text", "resolved_name", "lat", "lon", "date_start", "date_end", "label", "created_at"}, rows[0])
	assert.Equal(t, "52.52,13.41", rows[1][1])
	assert.Equal(t, "home", rows[1][7])

	out, err = run(t, "export", "--id", rows[1][0], "--config", cfgPath)
	require.NoError(t, err)

	var record struct {
		Query struct {
			InputText string `json:"input_text"`
		} `json:"query"`
		Snapshot struct {
			Forecast []json.RawMessage `json:"forecast"`
		} `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, "52.52,13.41", record.Query.InputText)
	assert.Len(t, record.Snapshot.Forecast, 2)
}

func TestExportCmd_EmptyHistory(t *testing.T) {
	srv, _ := newUpstream(t)
	cfgPath := writeConfig(t, srv.URL)

	out, err := run(t, "export", "--config", cfgPath)
	require.NoError(t, err)

	var queries []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &queries))
	assert.Empty(t, queries)
}

func TestExportCmd_Errors(t *testing.T) {
	srv, _ := newUpstream(t)
	cfgPath := writeConfig(t, srv.URL)

	_, err := run(t, "export", "--format", "xml", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")

	_, err = run(t, "export", "--id", "42", "--config", cfgPath)
	require.Error(t, err)
}

func TestBuildDeps_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: mysql\n"), 0o600))

	_, err := buildDeps(context.Background(), path, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.driver must be one of")
}
