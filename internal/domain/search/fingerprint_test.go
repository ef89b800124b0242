package search

import (
	"testing"

	"github.com/honeycarbs/jobkit/internal/domain"
)

func TestFingerprintKeyEquivalence(t *testing.T) {
	cases := []struct {
		name string
		a, b domain.JobPosting
	}{
		{
			name: "parenthetical title and legal suffix",
			a:    domain.JobPosting{Title: "Engineer (Remote)", Company: "Acme Ltd"},
			b:    domain.JobPosting{Title: "Engineer", Company: "Acme"},
		},
		{
			name: "pipe-delimited trailing text",
			a:    domain.JobPosting{Title: "Backend Developer | Golang | Kafka", Company: "Initech"},
			b:    domain.JobPosting{Title: "Backend Developer", Company: "Initech"},
		},
		{
			name: "case and punctuation",
			a:    domain.JobPosting{Title: "Sr. Data-Engineer", Company: "Globex Pvt. Ltd."},
			b:    domain.JobPosting{Title: "sr data engineer", Company: "GLOBEX"},
		},
		{
			name: "corporation is removed whole",
			a:    domain.JobPosting{Title: "Analyst", Company: "Umbrella Corporation"},
			b:    domain.JobPosting{Title: "Analyst", Company: "Umbrella Corp"},
		},
		{
			name: "location is ignored",
			a:    domain.JobPosting{Title: "QA Engineer", Company: "Hooli", Location: "Mumbai"},
			b:    domain.JobPosting{Title: "QA Engineer", Company: "Hooli", Location: "Mumbai, Maharashtra"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ka, kb := Fingerprint(tc.a), Fingerprint(tc.b)
			if ka == "" {
				t.Fatalf("Fingerprint(%+v) is empty", tc.a)
			}
			if ka != kb {
				t.Errorf("keys differ: %q vs %q", ka, kb)
			}
		})
	}
}

func TestFingerprintFormat(t *testing.T) {
	got := Fingerprint(domain.JobPosting{Title: "Go Developer (Hybrid)", Company: "Acme Private Limited"})
	if want := "godeveloper|acme"; got != want {
		t.Errorf("Fingerprint = %q, want %q", got, want)
	}
}

func TestFingerprintUnkeyable(t *testing.T) {
	cases := []domain.JobPosting{
		{},
		{Title: "   ", Company: "()"},
		{Title: "(Remote)", Company: "| Inc"},
		{Title: "Ltd", Company: "Inc."},
	}
	for _, p := range cases {
		if got := Fingerprint(p); got != "" {
			t.Errorf("Fingerprint(%+v) = %q, want empty", p, got)
		}
	}
}

func TestFingerprintDistinguishesCompanies(t *testing.T) {
	a := Fingerprint(domain.JobPosting{Title: "Engineer", Company: "Acme"})
	b := Fingerprint(domain.JobPosting{Title: "Engineer", Company: "Globex"})
	if a == b {
		t.Errorf("different companies share key %q", a)
	}
}

func TestFingerprintOneSideEmpty(t *testing.T) {
	if got := Fingerprint(domain.JobPosting{Title: "Engineer"}); got != "engineer|" {
		t.Errorf("Fingerprint = %q, want %q", got, "engineer|")
	}
}
