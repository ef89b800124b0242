package adzuna

import (
	"context"
	"errors"
	"testing"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/domain/search"
	"github.com/honeycarbs/jobkit/pkg/adzuna"
)

type fakeClient struct {
	got  adzuna.SearchParams
	page adzuna.Page
}

func (f *fakeClient) SearchJobs(_ context.Context, params adzuna.SearchParams) (adzuna.Page, error) {
	f.got = params
	return f.page, nil
}

func TestToParams(t *testing.T) {
	tests := []struct {
		name string
		q    search.Query
		want adzuna.SearchParams
	}{
		{
			name: "defaults to last month",
			q:    search.Query{Text: "go", Location: "Leeds"},
			want: adzuna.SearchParams{What: "go", Where: "Leeds", MaxDaysOld: 30},
		},
		{
			name: "all filters",
			q: search.Query{Text: "go", Filters: domain.SearchFilters{
				Type: domain.JobTypeContract, DatePosted: domain.DatePostedToday,
				Remote: true, ExperienceLevel: domain.ExperienceSenior,
			}},
			want: adzuna.SearchParams{What: "go senior remote", MaxDaysOld: 1, ContractType: "contract"},
		},
		{
			name: "location only",
			q:    search.Query{Location: "Leeds", Filters: domain.SearchFilters{DatePosted: domain.DatePostedAll, Type: domain.JobTypePartTime}},
			want: adzuna.SearchParams{Where: "Leeds", ContractTime: "part_time"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toParams(tt.q); got != tt.want {
				t.Errorf("toParams = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSearchMapsJobs(t *testing.T) {
	fc := &fakeClient{page: adzuna.Page{
		Jobs: []adzuna.Job{
			{ID: "1", Title: "Go Engineer (Remote)", CompanyName: "Acme", Location: "London", SalaryMax: 70000, ContractTime: "full_time", Created: "2024-05-01T10:00:00Z"},
			{},
		},
		Skipped: []adzuna.RecordError{{Index: 2, Err: errors.New("bad")}},
	}}
	p, err := NewProvider(fc)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	batch, err := p.Search(context.Background(), search.Query{Text: "go"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(batch.Postings) != 2 || len(batch.Skipped) != 1 {
		t.Fatalf("batch = %+v", batch)
	}

	first := batch.Postings[0]
	if !first.IsRemote || first.Salary != "$70,000" || first.Type != domain.JobTypeFullTime || first.Platform != "Adzuna" {
		t.Errorf("first = %+v", first)
	}
	empty := batch.Postings[1]
	if empty.Title != "" || empty.Company != "" || empty.Location != "Location N/A" || empty.URL != "#" || empty.ID == "" {
		t.Errorf("defaults = %+v", empty)
	}
}
