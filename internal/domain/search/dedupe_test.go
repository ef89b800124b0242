package search

import (
	"reflect"
	"testing"

	"github.com/honeycarbs/jobkit/internal/domain"
)

func TestDedupePreservesOrderWithoutDuplicates(t *testing.T) {
	in := []domain.JobPosting{
		{Title: "Engineer", Company: "Acme"},
		{Title: "Designer", Company: "Acme"},
		{Title: "Engineer", Company: "Globex"},
		{Title: "Manager", Company: "Initech"},
		{Title: "Analyst", Company: "Hooli"},
	}

	got := Dedupe(in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("Dedupe changed a duplicate-free input:\n got %+v\nwant %+v", got, in)
	}
}

func TestDedupeIsIdempotent(t *testing.T) {
	in := []domain.JobPosting{
		{Title: "Engineer (Remote)", Company: "Acme Ltd"},
		{Title: "Engineer", Company: "Acme"},
		{},
		{Title: "Engineer", Company: "Acme Inc", Location: "Berlin"},
		{Title: "Designer", Company: "Acme"},
		{Title: "Designer | UX", Company: "ACME"},
	}

	once := Dedupe(in)
	twice := Dedupe(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Dedupe not idempotent:\nonce  %+v\ntwice %+v", once, twice)
	}
	if len(once) != 2 {
		t.Errorf("len(Dedupe) = %d, want 2", len(once))
	}
}

func TestDedupeDropsUnkeyablePostings(t *testing.T) {
	in := []domain.JobPosting{
		{URL: "https://a"},
		{URL: "https://b"},
		{Title: "Engineer", Company: "Acme"},
	}

	got := Dedupe(in)
	if len(got) != 1 || got[0].Title != "Engineer" {
		t.Errorf("Dedupe = %+v, want only the keyable posting", got)
	}
}

func TestDedupeCrossPostedScenario(t *testing.T) {
	in := []domain.JobPosting{
		{ID: "1", Title: "Backend Engineer", Company: "Acme", Location: "Mumbai", Platform: "LinkedIn"},
		{ID: "2", Title: "Frontend Engineer", Company: "Acme", Location: "Pune"},
		{ID: "3", Title: "Backend Engineer (Remote)", Company: "Acme", Location: "Mumbai, Maharashtra", Platform: "Indeed"},
		{ID: "4", Title: "Data Engineer", Company: "Globex", Location: "Delhi"},
	}

	got := Dedupe(in)
	if len(got) != 3 {
		t.Fatalf("len(Dedupe) = %d, want 3", len(got))
	}
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	if want := []string{"1", "2", "4"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestDedupeOutputKeysDistinct(t *testing.T) {
	in := []domain.JobPosting{
		{Title: "A", Company: "X"},
		{Title: "a", Company: "x ltd"},
		{Title: "B", Company: "X"},
		{Title: "b (contract)", Company: "X"},
		{Title: "", Company: ""},
	}
	seen := map[string]bool{}
	for _, p := range Dedupe(in) {
		k := Fingerprint(p)
		if k == "" {
			t.Errorf("empty key in output: %+v", p)
		}
		if seen[k] {
			t.Errorf("duplicate key %q in output", k)
		}
		seen[k] = true
	}
}

func TestDedupeEmptyInput(t *testing.T) {
	got := Dedupe(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Dedupe(nil) = %#v, want empty non-nil slice", got)
	}
}
