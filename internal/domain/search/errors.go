package search

import (
	"errors"
	"fmt"
)

// ErrInput is returned when neither a query nor a location was supplied.
var ErrInput = errors.New("search: a job title or location is required")

// UpstreamError wraps a failed provider call (network, HTTP status, payload).
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("search: upstream %s failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ParseError describes one upstream record that could not be decoded.
// Only that record is skipped.
type ParseError struct {
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("search: record %d: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Notice turns a search error into a message suitable for end users.
func Notice(err error) string {
	var upstream *UpstreamError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInput):
		return "Enter a job title or a location to search."
	case errors.As(err, &upstream):
		return "The job search provider is unavailable right now. Please try again in a moment."
	default:
		return "Search failed. Please try again."
	}
}
