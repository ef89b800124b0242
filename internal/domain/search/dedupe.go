package search

import "github.com/honeycarbs/jobkit/internal/domain"

// Dedupe keeps the first posting for every fingerprint, preserving input order.
// Postings without a usable fingerprint are always dropped.
func Dedupe(postings []domain.JobPosting) []domain.JobPosting {
	seen := make(map[string]struct{}, len(postings))
	out := make([]domain.JobPosting, 0, len(postings))

	for _, p := range postings {
		key := Fingerprint(p)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}

	return out
}
