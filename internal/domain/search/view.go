package search

import "github.com/honeycarbs/jobkit/internal/domain"

const (
	// DefaultPageSize is the number of postings shown per "load more" step.
	DefaultPageSize = 12
	// MaxPageSize bounds a single page; larger requests are clamped.
	MaxPageSize = 100
)

// ViewOptions select how a cached result set is displayed
type ViewOptions struct {
	Experience domain.ExperienceLevel
	Sort       SortKey
	PageSize   int
	Pages      int
}

// Page is a displayable window over a result set
type Page struct {
	Items   []domain.JobPosting `json:"items"`
	Total   int                 `json:"total"`
	HasMore bool                `json:"hasMore"`
}

// View applies experience filter, sort and pagination to deduplicated postings.
// Items carry display placeholders for blank fields.
func View(postings []domain.JobPosting, opts ViewOptions) Page {
	switch {
	case opts.PageSize <= 0:
		opts.PageSize = DefaultPageSize
	case opts.PageSize > MaxPageSize:
		opts.PageSize = MaxPageSize
	}
	if opts.Pages <= 0 {
		opts.Pages = 1
	}

	filtered := FilterByExperience(postings, opts.Experience)
	sorted := Sort(filtered, opts.Sort)
	items := Paginate(sorted, opts.PageSize, opts.Pages)

	return Page{
		Items:   DisplayAll(items),
		Total:   len(sorted),
		HasMore: len(items) < len(sorted),
	}
}
