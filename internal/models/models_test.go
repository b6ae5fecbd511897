package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestDescribeCode_KnownCodes(t *testing.T) {
	expected := map[int]string{
		0:  "Clear sky",
		1:  "Mainly clear",
		2:  "Partly cloudy",
		3:  "Overcast",
		45: "Fog",
		48: "Depositing rime fog",
		51: "Light drizzle",
		53: "Moderate drizzle",
		55: "Dense drizzle",
		61: "Slight rain",
		63: "Moderate rain",
		65: "Heavy rain",
		71: "Slight snow",
		73: "Moderate snow",
		75: "Heavy snow",
		80: "Rain showers",
		81: "Moderate rain showers",
		82: "Violent rain showers",
		95: "Thunderstorm",
		96: "Thunderstorm w/ slight hail",
		99: "Thunderstorm w/ heavy hail",
	}

	for code, want := range expected {
		assert.Equal(t, want, DescribeCode(intPtr(code)), "code %d", code)
	}
}

func TestDescribeCode_Fallbacks(t *testing.T) {
	assert.Equal(t, "Code 9999", DescribeCode(intPtr(9999)))
	assert.Equal(t, "Code -1", DescribeCode(intPtr(-1)))
	assert.Equal(t, "—", DescribeCode(nil))
}

func TestValidateDateRange_NoRange(t *testing.T) {
	r, err := ValidateDateRange("", "", DefaultMaxRangeDays)
	assert.NoError(t, err)
	assert.Nil(t, r)

	r, err = ValidateDateRange("  ", "", DefaultMaxRangeDays)
	assert.NoError(t, err)
	assert.Nil(t, r)
}

func TestValidateDateRange_Valid(t *testing.T) {
	r, err := ValidateDateRange("2025-01-01", "2025-01-10", DefaultMaxRangeDays)
	require.NoError(t, err)
	require.NotNil(t, r)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), r.Start())
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), r.End())
	assert.Equal(t, "2025-01-01", r.StartString())
	assert.Equal(t, "2025-01-10", r.EndString())
	assert.Equal(t, 10, r.Days())
}

func TestValidateDateRange_SingleDay(t *testing.T) {
	r, err := ValidateDateRange("2025-03-04", "2025-03-04", DefaultMaxRangeDays)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Days())
}

func TestValidateDateRange_Errors(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		maxDays int
		kind    error
		message string
	}{
		{"only start", "2025-01-01", "", 31, ErrInvalidFormat, "dates must be in YYYY-MM-DD format"},
		{"only end", "", "2025-01-01", 31, ErrInvalidFormat, "dates must be in YYYY-MM-DD format"},
		{"bad layout", "01/02/2025", "2025-01-05", 31, ErrInvalidFormat, "dates must be in YYYY-MM-DD format"},
		{"impossible date", "2025-02-30", "2025-03-01", 31, ErrInvalidFormat, "dates must be in YYYY-MM-DD format"},
		{"reversed", "2025-01-10", "2025-01-05", 31, ErrInvalidOrder, "start date must be on or before end date"},
		{"too large", "2025-01-01", "2025-02-05", 31, ErrRangeTooLarge, "date range too large (36 days), max 31 days"},
		{"custom limit", "2025-01-01", "2025-01-08", 7, ErrRangeTooLarge, "date range too large (8 days), max 7 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ValidateDateRange(tt.start, tt.end, tt.maxDays)
			assert.Nil(t, r)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind))
			assert.Equal(t, tt.message, err.Error())

			var rangeErr *DateRangeError
			assert.True(t, errors.As(err, &rangeErr))
		})
	}
}

func TestValidateDateRange_ExactLimit(t *testing.T) {
	r, err := ValidateDateRange("2025-01-01", "2025-01-31", DefaultMaxRangeDays)
	require.NoError(t, err)
	assert.Equal(t, 31, r.Days())
}

func TestValidateDateRange_DefaultLimit(t *testing.T) {
	_, err := ValidateDateRange("2025-01-01", "2025-02-05", 0)
	assert.ErrorIs(t, err, ErrRangeTooLarge)
}

func TestDailySeries_Truncate(t *testing.T) {
	s := DailySeries{{Date: "2025-01-01"}, {Date: "2025-01-02"}, {Date: "2025-01-03"}}

	assert.Len(t, s.Truncate(2), 2)
	assert.Len(t, s.Truncate(5), 3)
	assert.Equal(t, []string{"2025-01-01", "2025-01-02"}, s.Truncate(2).Dates())
}

func TestSearchQuery_SetDateRange(t *testing.T) {
	r, err := ValidateDateRange("2025-05-01", "2025-05-03", DefaultMaxRangeDays)
	require.NoError(t, err)

	q := SearchQuery{}
	q.SetDateRange(r)
	require.True(t, q.HasDateRange())
	assert.Equal(t, "2025-05-01", *q.DateStart)
	assert.Equal(t, "2025-05-03", *q.DateEnd)

	q.SetDateRange(nil)
	assert.False(t, q.HasDateRange())
	assert.Nil(t, q.DateStart)
}

func TestResolvedLocation_Coordinate(t *testing.T) {
	loc := ResolvedLocation{DisplayName: "x", Latitude: 1.5, Longitude: -2.25}
	assert.Equal(t, Coordinate{Latitude: 1.5, Longitude: -2.25}, loc.Coordinate())
	assert.Equal(t, "1.5000,-2.2500", loc.Coordinate().String())
}
