package history

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"weather-history/internal/models"
)

var csvHeader = []string{"id", "input_text", "resolved_name", "lat", "lon", "date_start", "date_end", "label", "created_at"}

type exportSnapshot struct {
	Current  *models.CurrentConditions `json:"current"`
	Forecast models.DailySeries        `json:"forecast"`
}

type exportRecord struct {
	Query    models.SearchQuery `json:"query"`
	Snapshot exportSnapshot     `json:"snapshot"`
}

// ExportFilename is the download name for an export; id <= 0 means the
// whole history.
func ExportFilename(id int64, ext string) string {
	if id > 0 {
		return "weather_" + strconv.FormatInt(id, 10) + "." + ext
	}
	return "weather_queries." + ext
}

// WriteJSON writes one search with its latest snapshot, or when id <= 0
// the newest MaxListLimit searches without snapshots.
func (s *Service) WriteJSON(ctx context.Context, w io.Writer, id int64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if id <= 0 {
		queries, err := s.store.ListSearches(ctx, MaxListLimit)
		if err != nil {
			return err
		}
		return enc.Encode(queries)
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	out := exportRecord{Query: rec.Query, Snapshot: exportSnapshot{Forecast: models.DailySeries{}}}
	if rec.Snapshot != nil {
		out.Snapshot.Current = rec.Snapshot.Current
		if rec.Snapshot.Forecast != nil {
			out.Snapshot.Forecast = rec.Snapshot.Forecast
		}
	}
	return enc.Encode(out)
}

// WriteCSV writes a header and one row per search: a single search when
// id > 0, otherwise the newest MaxListLimit.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, id int64) error {
	var queries []models.SearchQuery
	if id > 0 {
		q, err := s.store.GetSearch(ctx, id)
		if err != nil {
			return err
		}
		queries = []models.SearchQuery{*q}
	} else {
		var err error
		if queries, err = s.store.ListSearches(ctx, MaxListLimit); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, q := range queries {
		if err := cw.Write(csvRow(q)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(q models.SearchQuery) []string {
	return []string{
		strconv.FormatInt(q.ID, 10),
		q.InputText,
		q.ResolvedName,
		strconv.FormatFloat(q.Latitude, 'f', -1, 64),
		strconv.FormatFloat(q.Longitude, 'f', -1, 64),
		deref(q.DateStart),
		deref(q.DateEnd),
		deref(q.Label),
		q.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
