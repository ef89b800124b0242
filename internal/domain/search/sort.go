package search

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/honeycarbs/jobkit/internal/domain"
)

// SortKey selects the ordering of a result view
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortDate      SortKey = "date"
	SortSalary    SortKey = "salary"
)

// ParseSortKey maps user input to a SortKey, defaulting to relevance.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortDate:
		return SortDate
	case SortSalary:
		return SortSalary
	default:
		return SortRelevance
	}
}

var postedDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var digitRun = regexp.MustCompile(`[0-9]+`)

// Sort returns a sorted copy of postings. Relevance keeps the upstream order.
func Sort(postings []domain.JobPosting, key SortKey) []domain.JobPosting {
	out := make([]domain.JobPosting, len(postings))
	copy(out, postings)

	switch key {
	case SortDate:
		posted := make([]time.Time, len(out))
		for i := range out {
			posted[i] = PostedAt(out[i])
		}
		idx := indexes(len(out))
		sort.SliceStable(idx, func(a, b int) bool { return posted[idx[a]].After(posted[idx[b]]) })
		return permute(out, idx)
	case SortSalary:
		amounts := make([]int64, len(out))
		for i := range out {
			amounts[i] = SalaryAmount(out[i].Salary)
		}
		idx := indexes(len(out))
		sort.SliceStable(idx, func(a, b int) bool { return amounts[idx[a]] > amounts[idx[b]] })
		return permute(out, idx)
	default:
		return out
	}
}

// Paginate returns the first pageSize*pageCount postings. Growing pageCount only
// appends to the previous window.
func Paginate(sorted []domain.JobPosting, pageSize, pageCount int) []domain.JobPosting {
	if pageSize <= 0 || pageCount <= 0 {
		return []domain.JobPosting{}
	}
	// compare by division so pageSize*pageCount cannot overflow
	n := len(sorted)
	if pageCount <= n/pageSize {
		n = pageSize * pageCount
	}
	return sorted[:n]
}

// PostedAt parses the posting date; missing or malformed dates are the zero time.
func PostedAt(p domain.JobPosting) time.Time {
	if p.PostedDate == nil {
		return time.Time{}
	}
	raw := strings.TrimSpace(*p.PostedDate)
	for _, layout := range postedDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SalaryAmount extracts the first number of a free-form salary string.
func SalaryAmount(salary string) int64 {
	if strings.Contains(strings.ToLower(salary), "disclosed") {
		return 0
	}
	m := digitRun.FindString(strings.ReplaceAll(salary, ",", ""))
	if m == "" {
		return 0
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func indexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func permute(postings []domain.JobPosting, idx []int) []domain.JobPosting {
	out := make([]domain.JobPosting, len(idx))
	for i, j := range idx {
		out[i] = postings[j]
	}
	return out
}
