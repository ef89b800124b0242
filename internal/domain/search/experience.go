package search

import (
	"regexp"
	"strings"

	"github.com/honeycarbs/jobkit/internal/domain"
)

var (
	seniorTitleTerms = []string{"senior", "lead", "staff", "principal"}
	juniorTitleTerms = []string{"intern", "junior", "entry", "graduate"}

	// "5+ years", "10+ yrs"; the leading class keeps "25+ years" from matching 5.
	yearsRequired = regexp.MustCompile(`(?:^|[^0-9])(?:5|8|10|12|15)\+\s*(?:years|yrs)`)
)

// FilterByExperience refines upstream results by looking at job titles only.
// It is a heuristic on top of the provider's own filtering: unknown levels keep everything.
func FilterByExperience(postings []domain.JobPosting, level domain.ExperienceLevel) []domain.JobPosting {
	var keep func(title string) bool

	switch level {
	case domain.ExperienceEntry:
		keep = func(title string) bool {
			return !containsAny(title, seniorTitleTerms) && !yearsRequired.MatchString(title)
		}
	case domain.ExperienceSenior:
		keep = func(title string) bool {
			return !containsAny(title, juniorTitleTerms)
		}
	default:
		return postings
	}

	out := make([]domain.JobPosting, 0, len(postings))
	for _, p := range postings {
		if keep(strings.ToLower(p.Title)) {
			out = append(out, p)
		}
	}
	return out
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
