package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/domain/search"
)

// PostingInput is a loosely filled posting supplied by the client
type PostingInput struct {
	ID         string `json:"id,omitempty"`
	Title      string `json:"title,omitempty"`
	Company    string `json:"company,omitempty"`
	Location   string `json:"location,omitempty"`
	IsRemote   bool   `json:"isRemote,omitempty"`
	Type       string `json:"type,omitempty"`
	Salary     string `json:"salary,omitempty"`
	PostedDate string `json:"postedDate,omitempty"`
	Platform   string `json:"platform,omitempty"`
	URL        string `json:"url,omitempty"`
}

// DedupePostingsParams defines the arguments for the dedupe_postings tool
type DedupePostingsParams struct {
	Postings []PostingInput `json:"postings" jsonschema:"Postings to collapse by normalized title and company"`
}

// DedupePostingsResult is the dedupe_postings payload
type DedupePostingsResult struct {
	Postings     []domain.JobPosting `json:"postings"`
	Fingerprints []string            `json:"fingerprints"`
	RawCount     int                 `json:"raw_count"`
	UniqueCount  int                 `json:"unique_count"`
}

// WithDedupePostings registers the dedupe_postings tool
func WithDedupePostings() Option {
	return func(reg *registry) {
		addTool(reg, &sdkmcp.Tool{
			Name:        "dedupe_postings",
			Description: "Remove duplicate job postings, keeping the first occurrence of each normalized title and company",
		}, dedupePostings)
	}
}

func dedupePostings(_ context.Context, _ *sdkmcp.CallToolRequest, params DedupePostingsParams) (*sdkmcp.CallToolResult, any, error) {
	postings := make([]domain.JobPosting, 0, len(params.Postings))
	for _, p := range params.Postings {
		postings = append(postings, p.toDomain())
	}

	unique := search.Dedupe(postings)
	keys := make([]string, 0, len(unique))
	for _, p := range unique {
		keys = append(keys, search.Fingerprint(p))
	}

	out, err := jsonResult(DedupePostingsResult{
		Postings:     unique,
		Fingerprints: keys,
		RawCount:     len(postings),
		UniqueCount:  len(unique),
	})
	return out, nil, err
}

func (p PostingInput) toDomain() domain.JobPosting {
	var posted *string
	if p.PostedDate != "" {
		d := p.PostedDate
		posted = &d
	}
	return domain.JobPosting{
		ID:         p.ID,
		Title:      p.Title,
		Company:    p.Company,
		Location:   p.Location,
		IsRemote:   p.IsRemote,
		Type:       domain.JobType(p.Type),
		Salary:     p.Salary,
		PostedDate: posted,
		Platform:   p.Platform,
		URL:        p.URL,
	}
}
