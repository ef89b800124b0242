package search

import (
	"strings"

	"github.com/honeycarbs/jobkit/internal/domain"
)

// Placeholders shown for fields the upstream left blank. They are applied
// after deduplication so blank records stay unkeyable.
const (
	DefaultTitle    = "Untitled Role"
	DefaultCompany  = "Unknown Company"
	DefaultPlatform = "Job Board"
)

// Display fills the display placeholders of a single posting
func Display(p domain.JobPosting) domain.JobPosting {
	if strings.TrimSpace(p.Title) == "" {
		p.Title = DefaultTitle
	}
	if strings.TrimSpace(p.Company) == "" {
		p.Company = DefaultCompany
	}
	if strings.TrimSpace(p.Platform) == "" {
		p.Platform = DefaultPlatform
	}
	return p
}

// DisplayAll returns a copy of postings with placeholders filled
func DisplayAll(postings []domain.JobPosting) []domain.JobPosting {
	out := make([]domain.JobPosting, len(postings))
	for i, p := range postings {
		out[i] = Display(p)
	}
	return out
}
