// Package jsearch adapts the JSearch client to search.Provider.
package jsearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/domain/search"
	"github.com/honeycarbs/jobkit/internal/domain/search/providers"
	"github.com/honeycarbs/jobkit/pkg/jsearch"
)

// searchClient describes the subset of the JSearch client used by the provider.
type searchClient interface {
	Search(ctx context.Context, params jsearch.SearchParams) (jsearch.SearchResult, error)
}

// Provider implements search.Provider using the JSearch API
type Provider struct {
	client searchClient
}

// NewProvider builds a JSearch provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("jsearch provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "jsearch"
}

// Search queries JSearch and maps records to postings
func (p *Provider) Search(ctx context.Context, q search.Query) (search.Batch, error) {
	if p == nil || p.client == nil {
		return search.Batch{}, fmt.Errorf("jsearch provider: client is nil")
	}

	res, err := p.client.Search(ctx, toParams(q))
	if err != nil {
		return search.Batch{}, err
	}

	batch := search.Batch{Postings: make([]domain.JobPosting, 0, len(res.Jobs))}
	for _, j := range res.Jobs {
		batch.Postings = append(batch.Postings, toPosting(j))
	}
	for _, rec := range res.Skipped {
		batch.Skipped = append(batch.Skipped, &search.ParseError{Index: rec.Index, Err: rec.Err})
	}

	return batch, nil
}

var _ search.Provider = (*Provider)(nil)

func toParams(q search.Query) jsearch.SearchParams {
	params := jsearch.SearchParams{
		Query:          q.Text,
		Location:       q.Location,
		Experience:     providers.ExperienceTerm(q.Filters.ExperienceLevel),
		EmploymentType: string(q.Filters.Type),
		DatePosted:     string(q.Filters.DatePosted),
		RemoteOnly:     q.Filters.Remote,
	}

	switch q.Filters.ExperienceLevel {
	case domain.ExperienceEntry:
		params.Requirements = []string{"under_3_years_experience", "no_experience"}
	case domain.ExperienceSenior, domain.ExperienceLead:
		params.Requirements = []string{"more_than_3_years_experience"}
	}

	return params
}

func toPosting(j jsearch.Job) domain.JobPosting {
	id := j.ID
	if id == "" {
		id = uuid.NewString()
	}

	var posted *string
	if j.PostedAtUTC != "" {
		v := j.PostedAtUTC
		posted = &v
	}

	return domain.JobPosting{
		ID:          id,
		Title:       strings.TrimSpace(j.Title),
		Company:     strings.TrimSpace(j.EmployerName),
		Location:    location(j),
		IsRemote:    j.IsRemote,
		Type:        domain.JobType(strings.ToUpper(j.EmploymentType)),
		Salary:      providers.FormatSalary(j.MinSalary, j.MaxSalary),
		PostedDate:  posted,
		Platform:    providers.Or(j.Publisher, providers.DefaultPlatform),
		URL:         providers.Or(j.ApplyLink, providers.DefaultURL),
		Logo:        j.EmployerLogo,
		Description: providers.Truncate(j.Description, providers.DescriptionLimit),
	}
}

func location(j jsearch.Job) string {
	switch {
	case j.City != "" && j.Country != "":
		return j.City + ", " + j.Country
	case j.City != "":
		return j.City
	case j.IsRemote:
		return "Remote"
	case j.Country != "":
		return j.Country
	default:
		return providers.DefaultLocation
	}
}
