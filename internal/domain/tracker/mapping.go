package tracker

import (
	"strings"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/domain/search"
)

// FromPosting maps a search result to a new Saved card.
// ID, owner and timestamps are filled in by the service.
func FromPosting(p domain.JobPosting) domain.SavedJob {
	p = search.Display(p)
	notes := "Found on " + p.Platform
	if loc := strings.TrimSpace(p.Location); loc != "" {
		notes += " · " + loc
	}

	return domain.SavedJob{
		Role:          p.Title,
		Company:       p.Company,
		Status:        domain.StatusSaved,
		Salary:        p.Salary,
		Notes:         notes,
		JDURL:         p.URL,
		JDText:        p.Description,
		ChecklistDone: []string{},
	}
}
