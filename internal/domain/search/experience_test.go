package search

import (
	"testing"

	"github.com/honeycarbs/jobkit/internal/domain"
)

func titles(ps []domain.JobPosting) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Title)
	}
	return out
}

func postingsWithTitles(ts ...string) []domain.JobPosting {
	out := make([]domain.JobPosting, 0, len(ts))
	for _, t := range ts {
		out = append(out, domain.JobPosting{Title: t, Company: "Acme"})
	}
	return out
}

func TestFilterByExperienceEntry(t *testing.T) {
	cases := []struct {
		title string
		keep  bool
	}{
		{"Senior Backend Engineer", false},
		{"Backend Engineer", true},
		{"Engineer (5+ years)", false},
		{"Tech Lead", false},
		{"Staff Software Engineer", false},
		{"Principal Architect", false},
		{"Platform Engineer 10+ yrs", false},
		{"Support Engineer 15+years", false},
		{"Engineer (3+ years)", true},
		{"Engineer (25+ years)", true},
		{"Junior Developer", true},
	}

	for _, tc := range cases {
		got := FilterByExperience(postingsWithTitles(tc.title), domain.ExperienceEntry)
		if kept := len(got) == 1; kept != tc.keep {
			t.Errorf("entry filter on %q: kept=%v, want %v", tc.title, kept, tc.keep)
		}
	}
}

func TestFilterByExperienceSenior(t *testing.T) {
	in := postingsWithTitles(
		"Software Engineering Intern",
		"Junior Developer",
		"Entry Level Analyst",
		"Graduate Engineer",
		"Senior Engineer",
		"Engineer",
	)

	got := titles(FilterByExperience(in, domain.ExperienceSenior))
	if len(got) != 2 || got[0] != "Senior Engineer" || got[1] != "Engineer" {
		t.Errorf("senior filter kept %v", got)
	}
}

func TestFilterByExperiencePassThrough(t *testing.T) {
	in := postingsWithTitles("Senior Engineer", "Intern", "Lead Designer")
	for _, level := range []domain.ExperienceLevel{domain.ExperienceAny, domain.ExperienceMid, domain.ExperienceLead, "unknown"} {
		got := FilterByExperience(in, level)
		if len(got) != len(in) {
			t.Errorf("level %q kept %d of %d", level, len(got), len(in))
		}
	}
}

func TestFilterByExperienceChecksTitleOnly(t *testing.T) {
	in := []domain.JobPosting{{Title: "Engineer", Company: "Senior Living Inc", Description: "10+ years"}}
	if got := FilterByExperience(in, domain.ExperienceEntry); len(got) != 1 {
		t.Errorf("company/description should not affect the filter, got %v", got)
	}
}
