// Package adzuna adapts the Adzuna client to search.Provider.
package adzuna

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/domain/search"
	"github.com/honeycarbs/jobkit/internal/domain/search/providers"
	"github.com/honeycarbs/jobkit/pkg/adzuna"
)

// searchClient describes the subset of the Adzuna client used by the provider.
type searchClient interface {
	SearchJobs(ctx context.Context, params adzuna.SearchParams) (adzuna.Page, error)
}

// Provider implements search.Provider using Adzuna API
type Provider struct {
	client searchClient
}

// NewProvider builds an Adzuna provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("adzuna provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "adzuna"
}

// Search queries Adzuna and maps results to postings
func (p *Provider) Search(ctx context.Context, q search.Query) (search.Batch, error) {
	if p == nil || p.client == nil {
		return search.Batch{}, fmt.Errorf("adzuna provider: client is nil")
	}

	page, err := p.client.SearchJobs(ctx, toParams(q))
	if err != nil {
		return search.Batch{}, err
	}

	batch := search.Batch{Postings: make([]domain.JobPosting, 0, len(page.Jobs))}
	for _, j := range page.Jobs {
		batch.Postings = append(batch.Postings, toPosting(j))
	}
	for _, rec := range page.Skipped {
		batch.Skipped = append(batch.Skipped, &search.ParseError{Index: rec.Index, Err: rec.Err})
	}

	return batch, nil
}

var _ search.Provider = (*Provider)(nil)

func toParams(q search.Query) adzuna.SearchParams {
	terms := []string{strings.TrimSpace(q.Text)}
	if term := providers.ExperienceTerm(q.Filters.ExperienceLevel); term != "" && terms[0] != "" {
		terms = append(terms, term)
	}
	if q.Filters.Remote {
		terms = append(terms, "remote")
	}

	params := adzuna.SearchParams{
		What:       strings.TrimSpace(strings.Join(terms, " ")),
		Where:      strings.TrimSpace(q.Location),
		MaxDaysOld: maxDaysOld(q.Filters.DatePosted),
	}

	switch q.Filters.Type {
	case domain.JobTypeFullTime:
		params.ContractTime = "full_time"
	case domain.JobTypePartTime:
		params.ContractTime = "part_time"
	case domain.JobTypeContract:
		params.ContractType = "contract"
	}

	return params
}

func maxDaysOld(d domain.DatePosted) int {
	switch d {
	case domain.DatePostedAll:
		return 0
	case domain.DatePostedToday:
		return 1
	case domain.DatePosted3Days:
		return 3
	case domain.DatePostedWeek:
		return 7
	default:
		return 30
	}
}

func toPosting(j adzuna.Job) domain.JobPosting {
	id := j.ID
	if id == "" {
		id = uuid.NewString()
	}

	var posted *string
	if j.Created != "" {
		v := j.Created
		posted = &v
	}

	var lo, hi *float64
	if j.SalaryMin > 0 {
		lo = &j.SalaryMin
	}
	if j.SalaryMax > 0 {
		hi = &j.SalaryMax
	}

	return domain.JobPosting{
		ID:          id,
		Title:       strings.TrimSpace(j.Title),
		Company:     strings.TrimSpace(j.CompanyName),
		Location:    providers.Or(j.Location, providers.DefaultLocation),
		IsRemote:    strings.Contains(strings.ToLower(j.Location+" "+j.Title), "remote"),
		Type:        jobType(j),
		Salary:      providers.FormatSalary(lo, hi),
		PostedDate:  posted,
		Platform:    "Adzuna",
		URL:         providers.Or(j.URL, providers.DefaultURL),
		Description: providers.Truncate(j.Description, providers.DescriptionLimit),
	}
}

func jobType(j adzuna.Job) domain.JobType {
	switch {
	case j.ContractType == "contract":
		return domain.JobTypeContract
	case j.ContractTime == "part_time":
		return domain.JobTypePartTime
	case j.ContractTime == "full_time":
		return domain.JobTypeFullTime
	default:
		return ""
	}
}
