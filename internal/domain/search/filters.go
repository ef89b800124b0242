package search

import (
	"strings"

	"github.com/honeycarbs/jobkit/internal/domain"
)

// NormalizeFilters canonicalizes enum casing and drops values outside the
// known enums
func NormalizeFilters(f domain.SearchFilters) domain.SearchFilters {
	f.Type = domain.JobType(strings.ToUpper(strings.TrimSpace(string(f.Type))))
	switch f.Type {
	case domain.JobTypeFullTime, domain.JobTypeContract, domain.JobTypePartTime, domain.JobTypeIntern:
	default:
		f.Type = ""
	}

	f.DatePosted = domain.DatePosted(strings.ToLower(strings.TrimSpace(string(f.DatePosted))))
	switch f.DatePosted {
	case domain.DatePostedAll, domain.DatePostedToday, domain.DatePosted3Days, domain.DatePostedWeek, domain.DatePostedMonth:
	default:
		f.DatePosted = ""
	}

	f.ExperienceLevel = domain.ExperienceLevel(strings.ToLower(strings.TrimSpace(string(f.ExperienceLevel))))
	switch f.ExperienceLevel {
	case domain.ExperienceEntry, domain.ExperienceMid, domain.ExperienceSenior, domain.ExperienceLead:
	default:
		f.ExperienceLevel = domain.ExperienceAny
	}
	return f
}
