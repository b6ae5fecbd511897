package models

import "time"

// SearchQuery is a persisted search: what the user typed and where it resolved to.
type SearchQuery struct {
	ID           int64     `json:"id" example:"12"`
	InputText    string    `json:"input_text" example:"Berlin"`
	ResolvedName string    `json:"resolved_name" example:"Berlin, State of Berlin, Germany"`
	Latitude     float64   `json:"lat" example:"52.52437"`
	Longitude    float64   `json:"lon" example:"13.41053"`
	DateStart    *string   `json:"date_start" example:"2025-07-01"`
	DateEnd      *string   `json:"date_end" example:"2025-07-10"`
	Label        *string   `json:"label" example:"summer trip"`
	CreatedAt    time.Time `json:"created_at"`
}

func (q SearchQuery) Coordinate() Coordinate {
	return Coordinate{Latitude: q.Latitude, Longitude: q.Longitude}
}

// HasDateRange reports whether the search was made in range mode.
func (q SearchQuery) HasDateRange() bool {
	return q.DateStart != nil && q.DateEnd != nil
}

// SetDateRange stores r on the query; a nil range clears both bounds.
func (q *SearchQuery) SetDateRange(r *DateRange) {
	if r == nil {
		q.DateStart, q.DateEnd = nil, nil
		return
	}
	start, end := r.StartString(), r.EndString()
	q.DateStart, q.DateEnd = &start, &end
}

// Snapshot is the weather data captured when a search was made or refreshed.
// Forecast holds the 5-day forecast, or the range rows for range searches.
type Snapshot struct {
	ID        int64              `json:"id" example:"31"`
	QueryID   int64              `json:"query_id" example:"12"`
	Current   *CurrentConditions `json:"current"`
	Forecast  DailySeries        `json:"forecast"`
	CreatedAt time.Time          `json:"created_at"`
}

type SearchRecord struct {
	Query    SearchQuery `json:"query"`
	Snapshot *Snapshot   `json:"snapshot"`
}
