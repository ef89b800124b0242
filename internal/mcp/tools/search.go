package tools

import (
	"context"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/domain/search"
)

// JobSearchParams defines the arguments for the job_search tool
type JobSearchParams struct {
	Query           string `json:"query,omitempty" jsonschema:"Job title or keywords"`
	Location        string `json:"location,omitempty" jsonschema:"City, region or country"`
	Type            string `json:"type,omitempty" jsonschema:"FULLTIME, CONTRACT, PARTTIME or INTERN"`
	DatePosted      string `json:"date_posted,omitempty" jsonschema:"all, today, 3days, week or month"`
	Remote          bool   `json:"remote,omitempty" jsonschema:"Only remote postings"`
	ExperienceLevel string `json:"experience_level,omitempty" jsonschema:"entry, mid, senior or lead"`
	Sort            string `json:"sort,omitempty" jsonschema:"relevance, date or salary"`
	PageSize        int    `json:"page_size,omitempty" jsonschema:"Postings per page (default 12, at most 100)"`
	Pages           int    `json:"pages,omitempty" jsonschema:"Number of pages to return (default 1)"`
}

// JobSearchResult is the job_search payload
type JobSearchResult struct {
	Postings    []domain.JobPosting `json:"postings"`
	Total       int                 `json:"total"`
	HasMore     bool                `json:"has_more"`
	RawCount    int                 `json:"raw_count"`
	UniqueCount int                 `json:"unique_count"`
	Notice      string              `json:"notice"`
}

type jobSearchTool struct {
	searcher search.Searcher
}

// WithJobSearch registers the job_search tool backed by the search pipeline
func WithJobSearch(searcher search.Searcher) Option {
	return func(reg *registry) {
		if searcher == nil {
			reg.logger.Warn("job_search not registered: no searcher")
			return
		}
		t := jobSearchTool{searcher: searcher}
		addTool(reg, &sdkmcp.Tool{
			Name:        "job_search",
			Description: "Search job postings, remove duplicates, then filter by experience, sort and paginate",
		}, t.handle)
	}
}

func (t jobSearchTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobSearchParams) (*sdkmcp.CallToolResult, any, error) {
	filters := search.NormalizeFilters(domain.SearchFilters{
		Type:            domain.JobType(params.Type),
		DatePosted:      domain.DatePosted(params.DatePosted),
		Remote:          params.Remote,
		ExperienceLevel: domain.ExperienceLevel(params.ExperienceLevel),
	})

	res, err := t.searcher.Search(ctx, params.Query, params.Location, filters)
	if err != nil {
		var upstream *search.UpstreamError
		if errors.Is(err, search.ErrInput) || errors.As(err, &upstream) {
			return errorResult(search.Notice(err)), nil, nil
		}
		return nil, nil, err
	}

	page := search.View(res.Postings, search.ViewOptions{
		Experience: filters.ExperienceLevel,
		Sort:       search.ParseSortKey(params.Sort),
		PageSize:   params.PageSize,
		Pages:      params.Pages,
	})

	out, err := jsonResult(JobSearchResult{
		Postings:    page.Items,
		Total:       page.Total,
		HasMore:     page.HasMore,
		RawCount:    res.RawCount,
		UniqueCount: res.UniqueCount,
		Notice:      res.Notice(),
	})
	return out, nil, err
}
