package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/pkg/logging"
)

// Result is the deduplicated outcome of one upstream search
type Result struct {
	Postings    []domain.JobPosting `json:"postings"`
	RawCount    int                 `json:"rawCount"`
	UniqueCount int                 `json:"uniqueCount"`
	Skipped     int                 `json:"skipped"`
	Provider    string              `json:"provider"`
	FetchedAt   time.Time           `json:"fetchedAt"`
}

// Notice summarizes the counts for display.
func (r Result) Notice() string {
	if r.UniqueCount == 0 {
		return "No jobs found. Try a broader title or a different location."
	}
	removed := r.RawCount - r.UniqueCount
	if removed <= 0 {
		return fmt.Sprintf("Found %d jobs.", r.UniqueCount)
	}
	return fmt.Sprintf("Found %d unique jobs (%d duplicates removed).", r.UniqueCount, removed)
}

// Searcher is the orchestrator contract used by the HTTP, MCP and re-query layers.
type Searcher interface {
	Search(ctx context.Context, query, location string, filters domain.SearchFilters) (Result, error)
}

// Option configures Service
type Option func(*config)

type config struct {
	provider Provider
	logger   *logging.Logger
	clock    func() time.Time
}

// WithProvider sets the upstream provider
func WithProvider(p Provider) Option {
	return func(c *config) {
		c.provider = p
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// Service orchestrates one upstream fetch followed by deduplication.
type Service struct {
	provider Provider
	logger   *logging.Logger
	clock    func() time.Time
}

// NewService builds Service from options
func NewService(opts ...Option) (*Service, error) {
	cfg := &config{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.provider == nil {
		return nil, fmt.Errorf("search.Service: provider is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.Nop()
	}

	return &Service{
		provider: cfg.provider,
		logger:   cfg.logger,
		clock:    cfg.clock,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(provider Provider, logger *logging.Logger) (*Service, error) {
	return NewService(WithProvider(provider), WithLogger(logger))
}

// Search fetches one batch from the provider and returns it deduplicated, in
// upstream order. Sorting and experience filtering are left to View so they can
// change without another upstream call.
func (s *Service) Search(ctx context.Context, query, location string, filters domain.SearchFilters) (Result, error) {
	query = strings.TrimSpace(query)
	location = strings.TrimSpace(location)
	if query == "" && location == "" {
		return Result{}, ErrInput
	}

	batch, err := s.provider.Search(ctx, Query{Text: query, Location: location, Filters: filters})
	if err != nil {
		s.logger.Warn("upstream search failed",
			"provider", s.provider.Name(),
			"query", query,
			"location", location,
			"err", err,
		)
		return Result{}, &UpstreamError{Provider: s.provider.Name(), Err: err}
	}

	for _, perr := range batch.Skipped {
		s.logger.Debug("skipped malformed posting", "provider", s.provider.Name(), "err", perr)
	}

	unique := Dedupe(batch.Postings)

	s.logger.Info("search completed",
		"provider", s.provider.Name(),
		"query", query,
		"location", location,
		"raw", len(batch.Postings),
		"unique", len(unique),
		"skipped", len(batch.Skipped),
	)

	return Result{
		Postings:    unique,
		RawCount:    len(batch.Postings),
		UniqueCount: len(unique),
		Skipped:     len(batch.Skipped),
		Provider:    s.provider.Name(),
		FetchedAt:   s.clock(),
	}, nil
}
