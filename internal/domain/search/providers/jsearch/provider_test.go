package jsearch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/domain/search"
	"github.com/honeycarbs/jobkit/pkg/jsearch"
)

type fakeClient struct {
	got jsearch.SearchParams
	res jsearch.SearchResult
	err error
}

func (f *fakeClient) Search(_ context.Context, params jsearch.SearchParams) (jsearch.SearchResult, error) {
	f.got = params
	return f.res, f.err
}

func fl(v float64) *float64 { return &v }

func TestNewProviderRequiresClient(t *testing.T) {
	if _, err := NewProvider(nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestSearchTranslatesQuery(t *testing.T) {
	fc := &fakeClient{}
	p, _ := NewProvider(fc)

	_, err := p.Search(context.Background(), search.Query{
		Text:     "golang",
		Location: "Berlin",
		Filters: domain.SearchFilters{
			Type:            domain.JobTypeContract,
			DatePosted:      domain.DatePostedWeek,
			Remote:          true,
			ExperienceLevel: domain.ExperienceEntry,
		},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if fc.got.Query != "golang" || fc.got.Location != "Berlin" || fc.got.Experience != "entry level" {
		t.Errorf("params = %+v", fc.got)
	}
	if fc.got.EmploymentType != "CONTRACT" || fc.got.DatePosted != "week" || !fc.got.RemoteOnly {
		t.Errorf("filters = %+v", fc.got)
	}
	if len(fc.got.Requirements) != 2 {
		t.Errorf("requirements = %v", fc.got.Requirements)
	}
}

func TestSearchMapsRecords(t *testing.T) {
	fc := &fakeClient{res: jsearch.SearchResult{
		Jobs: []jsearch.Job{
			{
				ID: "abc", Title: "Go Dev", EmployerName: "Acme", City: "Austin", Country: "US",
				Publisher: "LinkedIn", ApplyLink: "https://x/apply", EmploymentType: "fulltime",
				PostedAtUTC: "2024-05-01T00:00:00.000Z", MinSalary: fl(120000),
				Description: strings.Repeat("a", 400),
			},
			{IsRemote: true},
			{Country: "DE", MaxSalary: fl(80000)},
			{},
		},
		Skipped: []jsearch.RecordError{{Index: 4, Err: errors.New("bad")}},
	}}
	p, _ := NewProvider(fc)

	batch, err := p.Search(context.Background(), search.Query{Text: "go"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(batch.Postings) != 4 || len(batch.Skipped) != 1 || batch.Skipped[0].Index != 4 {
		t.Fatalf("batch = %+v", batch)
	}

	first := batch.Postings[0]
	if first.Location != "Austin, US" || first.Salary != "$120,000" || first.Platform != "LinkedIn" {
		t.Errorf("first = %+v", first)
	}
	if first.Type != domain.JobTypeFullTime || first.PostedDate == nil || len(first.Description) != 300 {
		t.Errorf("first = %+v", first)
	}

	remote := batch.Postings[1]
	if remote.Title != "" || remote.Company != "" || remote.Location != "Remote" {
		t.Errorf("remote = %+v", remote)
	}
	if remote.URL != "#" || remote.Platform != "Job Board" || remote.Salary != "Not disclosed" || remote.PostedDate != nil {
		t.Errorf("remote defaults = %+v", remote)
	}
	if remote.ID == "" {
		t.Error("missing id must be generated")
	}

	if batch.Postings[2].Location != "DE" || batch.Postings[2].Salary != "$80,000" {
		t.Errorf("country only = %+v", batch.Postings[2])
	}
	if batch.Postings[3].Location != "Location N/A" {
		t.Errorf("no location = %+v", batch.Postings[3])
	}
}

func TestSearchPropagatesClientError(t *testing.T) {
	boom := errors.New("boom")
	p, _ := NewProvider(&fakeClient{err: boom})
	if _, err := p.Search(context.Background(), search.Query{Text: "go"}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestBlankRecordsStayUnkeyable(t *testing.T) {
	fc := &fakeClient{res: jsearch.SearchResult{Jobs: []jsearch.Job{
		{ID: "a"},
		{ID: "b", Title: "  ", EmployerName: ""},
		{ID: "c", Title: "Engineer", ApplyLink: "https://x/c"},
		{ID: "d", Title: "Engineer", ApplyLink: "https://x/d"},
		{ID: "e", Title: "Engineer", EmployerName: "Unknown Company"},
	}}}
	p, _ := NewProvider(fc)

	batch, err := p.Search(context.Background(), search.Query{Text: "engineer"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if key := search.Fingerprint(batch.Postings[0]); key != "" {
		t.Errorf("blank record key = %q, want empty", key)
	}
	if key := search.Fingerprint(batch.Postings[2]); key != "engineer|" {
		t.Errorf("company-less key = %q, want %q", key, "engineer|")
	}

	unique := search.Dedupe(batch.Postings)
	var ids []string
	for _, p := range unique {
		ids = append(ids, p.ID)
	}
	// a and b are unkeyable; d repeats c's key; e names a real company
	if strings.Join(ids, ",") != "c,e" {
		t.Errorf("kept = %v, want [c e]", ids)
	}

	page := search.View(unique, search.ViewOptions{})
	if page.Items[0].Company != "Unknown Company" || unique[0].Company != "" {
		t.Errorf("placeholders must apply to the view only: item=%+v raw=%+v", page.Items[0], unique[0])
	}
}
