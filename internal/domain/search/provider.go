package search

import (
	"context"

	"github.com/honeycarbs/jobkit/internal/domain"
)

// Query is a single upstream search request
type Query struct {
	Text     string
	Location string
	Filters  domain.SearchFilters
}

// Batch is what a provider returns for one request
type Batch struct {
	Postings []domain.JobPosting
	// Skipped holds records the provider could not decode
	Skipped []*ParseError
}

// Provider represents an external job search aggregator (JSearch, Adzuna, ...)
type Provider interface {
	// e.g. "jsearch" or "adzuna"
	Name() string

	// Search performs exactly one upstream call
	Search(ctx context.Context, q Query) (Batch, error)
}
