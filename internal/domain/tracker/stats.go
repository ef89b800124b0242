package tracker

import "github.com/honeycarbs/jobkit/internal/domain"

// Stats summarizes a board for the dashboard
type Stats struct {
	Total       int                   `json:"total"`
	Active      int                   `json:"active"`
	Interviews  int                   `json:"interviews"`
	Offers      int                   `json:"offers"`
	FollowUpDue int                   `json:"followUpDue"`
	ByStatus    map[domain.Status]int `json:"byStatus"`
}

// ComputeStats counts jobs per column
func ComputeStats(jobs []domain.SavedJob) Stats {
	st := Stats{Total: len(jobs), ByStatus: make(map[domain.Status]int, len(domain.Statuses))}
	for _, s := range domain.Statuses {
		st.ByStatus[s] = 0
	}

	for _, j := range jobs {
		st.ByStatus[j.Status]++
		if IsActive(j.Status) {
			st.Active++
		}
		if j.FollowUpDue {
			st.FollowUpDue++
		}
	}
	st.Interviews = st.ByStatus[domain.StatusInterview]
	st.Offers = st.ByStatus[domain.StatusOffer]

	return st
}
