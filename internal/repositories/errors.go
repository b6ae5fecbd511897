package repositories

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstream matches every failure talking to a remote provider.
	ErrUpstream = errors.New("upstream request failed")

	// ErrNoMatch is returned by a geocoder that answered but found nothing.
	ErrNoMatch = errors.New("no match")
)

type UpstreamError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP error (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func upstreamError(provider string, status int, err error) error {
	return &UpstreamError{
		Provider:   provider,
		StatusCode: status,
		Err:        err,
	}
}
