package search

import (
	"math"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/honeycarbs/jobkit/internal/domain"
)

func strptr(s string) *string { return &s }

func TestSortSalaryDescending(t *testing.T) {
	in := []domain.JobPosting{
		{Title: "A", Salary: "$120,000"},
		{Title: "B", Salary: "Not disclosed"},
		{Title: "C", Salary: "$95,000"},
	}

	got := Sort(in, SortSalary)
	salaries := []string{got[0].Salary, got[1].Salary, got[2].Salary}
	if want := []string{"$120,000", "$95,000", "Not disclosed"}; !reflect.DeepEqual(salaries, want) {
		t.Errorf("salaries = %v, want %v", salaries, want)
	}
	if in[0].Salary != "$120,000" || in[1].Salary != "Not disclosed" {
		t.Error("Sort mutated its input")
	}
}

func TestSalaryAmount(t *testing.T) {
	cases := map[string]int64{
		"$120,000":            120000,
		"$95,000 - $120,000":  95000,
		"Not disclosed":       0,
		"NOT DISCLOSED 5000":  0,
		"":                    0,
		"Competitive":         0,
		"₹12,00,000 per year": 1200000,
	}
	for in, want := range cases {
		if got := SalaryAmount(in); got != want {
			t.Errorf("SalaryAmount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestSortDateUnparseableIsOldest(t *testing.T) {
	in := []domain.JobPosting{
		{Title: "garbage", PostedDate: strptr("not a date")},
		{Title: "older", PostedDate: strptr("2024-01-02T10:00:00.000Z")},
		{Title: "missing"},
		{Title: "newest", PostedDate: strptr("2024-03-01T08:30:00Z")},
	}

	got := titles(Sort(in, SortDate))
	if want := []string{"newest", "older", "garbage", "missing"}; !reflect.DeepEqual(got, want) {
		t.Errorf("date order = %v, want %v", got, want)
	}
}

func TestSortDateAcceptsPlainDates(t *testing.T) {
	p := domain.JobPosting{PostedDate: strptr("2024-05-06")}
	if got := PostedAt(p); !got.Equal(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("PostedAt = %v", got)
	}
}

func TestSortRelevanceKeepsOrder(t *testing.T) {
	in := postingsWithTitles("c", "a", "b")
	if got := titles(Sort(in, SortRelevance)); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Errorf("relevance order = %v", got)
	}
}

func TestSortIsStable(t *testing.T) {
	in := []domain.JobPosting{
		{Title: "first", Salary: "Not disclosed"},
		{Title: "second", Salary: "$10"},
		{Title: "third", Salary: "n/a"},
	}
	if got := titles(Sort(in, SortSalary)); !reflect.DeepEqual(got, []string{"second", "first", "third"}) {
		t.Errorf("stable salary order = %v", got)
	}
}

func TestParseSortKey(t *testing.T) {
	cases := map[string]SortKey{"date": SortDate, " Salary ": SortSalary, "": SortRelevance, "other": SortRelevance}
	for in, want := range cases {
		if got := ParseSortKey(in); got != want {
			t.Errorf("ParseSortKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPaginatePrefixStability(t *testing.T) {
	sorted := make([]domain.JobPosting, 30)
	for i := range sorted {
		sorted[i] = domain.JobPosting{Title: string(rune('a' + i%26)), Company: "x"}
	}

	one := Paginate(sorted, 12, 1)
	two := Paginate(sorted, 12, 2)
	three := Paginate(sorted, 12, 3)

	if len(one) != 12 || len(two) != 24 || len(three) != 30 {
		t.Fatalf("lengths = %d, %d, %d", len(one), len(two), len(three))
	}
	if !reflect.DeepEqual(one, two[:12]) {
		t.Error("page 1 is not a prefix of pages 1-2")
	}
	if !reflect.DeepEqual(two, three[:24]) {
		t.Error("pages 1-2 are not a prefix of pages 1-3")
	}
}

func TestPaginateNonPositive(t *testing.T) {
	sorted := postingsWithTitles("a", "b")
	if got := Paginate(sorted, 0, 1); len(got) != 0 {
		t.Errorf("Paginate(size 0) = %v", got)
	}
	if got := Paginate(sorted, 12, 0); len(got) != 0 {
		t.Errorf("Paginate(count 0) = %v", got)
	}
}

func TestPaginateHugeValues(t *testing.T) {
	sorted := postingsWithTitles("a", "b", "c")
	tests := []struct {
		name        string
		size, count int
	}{
		{"product overflows to negative", 3037000500, 3037000500},
		{"product wraps to zero", 1 << 32, 1 << 32},
		{"max int size", math.MaxInt, 2},
		{"max int count", 2, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Paginate(sorted, tt.size, tt.count); len(got) != 3 {
				t.Errorf("len = %d, want 3", len(got))
			}
		})
	}

	if got := Paginate(sorted, 2, 1); len(got) != 2 {
		t.Errorf("Paginate(2, 1) len = %d, want 2", len(got))
	}
}

func TestViewClampsPageSize(t *testing.T) {
	in := make([]domain.JobPosting, MaxPageSize+5)
	for i := range in {
		in[i] = domain.JobPosting{Title: "role", Company: strconv.Itoa(i)}
	}

	page := View(in, ViewOptions{PageSize: 1 << 32, Pages: 1 << 32})
	if len(page.Items) != len(in) || page.HasMore {
		t.Errorf("huge pages: items = %d, hasMore = %v", len(page.Items), page.HasMore)
	}

	page = View(in, ViewOptions{PageSize: 1 << 32, Pages: 1})
	if len(page.Items) != MaxPageSize || !page.HasMore || page.Total != len(in) {
		t.Errorf("clamped page: items = %d, hasMore = %v, total = %d", len(page.Items), page.HasMore, page.Total)
	}
}

func TestView(t *testing.T) {
	in := []domain.JobPosting{
		{Title: "Senior Engineer", Company: "A", Salary: "$200,000"},
		{Title: "Engineer", Company: "B", Salary: "$90,000"},
		{Title: "Developer", Company: "C", Salary: "$110,000"},
	}

	page := View(in, ViewOptions{Experience: domain.ExperienceEntry, Sort: SortSalary, PageSize: 1, Pages: 1})
	if page.Total != 2 || !page.HasMore || len(page.Items) != 1 || page.Items[0].Title != "Developer" {
		t.Errorf("View = %+v", page)
	}

	page = View(in, ViewOptions{})
	if page.Total != 3 || page.HasMore || len(page.Items) != 3 {
		t.Errorf("default View = %+v", page)
	}
}
