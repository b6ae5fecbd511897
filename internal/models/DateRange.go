package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout          = "2006-01-02"
	DefaultMaxRangeDays = 31
)

var (
	ErrInvalidFormat = errors.New("invalid date format")
	ErrInvalidOrder  = errors.New("invalid date order")
	ErrRangeTooLarge = errors.New("date range too large")
)

// DateRangeError carries a user facing message; Kind is one of the
// ErrInvalid*/ErrRangeTooLarge sentinels and is reachable through errors.Is.
type DateRangeError struct {
	Kind    error
	Message string
}

func (e *DateRangeError) Error() string {
	return e.Message
}

func (e *DateRangeError) Unwrap() error {
	return e.Kind
}

// DateRange is an inclusive span of calendar days. Values are only produced
// by ValidateDateRange, so start <= end and the span limit always hold.
type DateRange struct {
	start time.Time
	end   time.Time
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

func (r DateRange) StartString() string { return r.start.Format(DateLayout) }
func (r DateRange) EndString() string   { return r.end.Format(DateLayout) }

// Days returns the inclusive number of days in the range.
func (r DateRange) Days() int {
	return int(r.end.Sub(r.start).Hours()/24) + 1
}

func (r DateRange) String() string {
	return r.StartString() + ".." + r.EndString()
}

// ValidateDateRange parses a pair of YYYY-MM-DD strings. Both empty means no
// range was requested and returns (nil, nil).
func ValidateDateRange(startText, endText string, maxDays int) (*DateRange, error) {
	startText = strings.TrimSpace(startText)
	endText = strings.TrimSpace(endText)

	if startText == "" && endText == "" {
		return nil, nil
	}

	if maxDays <= 0 {
		maxDays = DefaultMaxRangeDays
	}

	start, startErr := time.Parse(DateLayout, startText)
	end, endErr := time.Parse(DateLayout, endText)
	if startErr != nil || endErr != nil {
		return nil, &DateRangeError{
			Kind:    ErrInvalidFormat,
			Message: "dates must be in YYYY-MM-DD format",
		}
	}

	if start.After(end) {
		return nil, &DateRangeError{
			Kind:    ErrInvalidOrder,
			Message: "start date must be on or before end date",
		}
	}

	r := DateRange{start: start, end: end}
	if span := r.Days(); span > maxDays {
		return nil, &DateRangeError{
			Kind:    ErrRangeTooLarge,
			Message: fmt.Sprintf("date range too large (%d days), max %d days", span, maxDays),
		}
	}

	return &r, nil
}
