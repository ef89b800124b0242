package providers

import (
	"strings"
	"testing"

	"github.com/honeycarbs/jobkit/internal/domain"
)

func f(v float64) *float64 { return &v }

func TestFormatSalary(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi *float64
		want   string
	}{
		{"min wins", f(120000), f(150000), "$120,000"},
		{"max fallback", nil, f(95000.4), "$95,000"},
		{"zero min ignored", f(0), f(1234567), "$1,234,567"},
		{"small", f(900), nil, "$900"},
		{"none", nil, nil, "Not disclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSalary(tt.lo, tt.hi); got != tt.want {
				t.Errorf("FormatSalary = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	s := strings.Repeat("é", 310)
	got := Truncate(s, DescriptionLimit)
	if n := len([]rune(got)); n != DescriptionLimit {
		t.Fatalf("len = %d runes, want %d", n, DescriptionLimit)
	}
	if Truncate("short", DescriptionLimit) != "short" {
		t.Error("short strings must be unchanged")
	}
}

func TestExperienceTerm(t *testing.T) {
	if ExperienceTerm(domain.ExperienceAny) != "" {
		t.Error("any level must not add a term")
	}
	if ExperienceTerm(domain.ExperienceSenior) != "senior" {
		t.Error("senior term")
	}
}
