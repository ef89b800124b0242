// Package providers holds helpers shared by the upstream search adapters.
package providers

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/domain/search"
)

// Title and company are left blank on purpose: search.Display fills them
// after deduplication.
const (
	DefaultLocation   = "Location N/A"
	DefaultPlatform   = search.DefaultPlatform
	DefaultURL        = "#"
	SalaryUndisclosed = "Not disclosed"

	// DescriptionLimit caps snippet length in runes
	DescriptionLimit = 300
)

// FormatSalary renders the lower bound when present, else the upper bound,
// as "$120,000". Non-positive amounts count as missing.
func FormatSalary(lo, hi *float64) string {
	for _, v := range []*float64{lo, hi} {
		if v != nil && *v > 0 {
			return "$" + thousands(int64(*v+0.5))
		}
	}
	return SalaryUndisclosed
}

func thousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Truncate cuts s to at most limit runes.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit])
}

// Or returns s, or fallback when s is blank.
func Or(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// ExperienceTerm is the free-text hint appended to upstream queries.
func ExperienceTerm(level domain.ExperienceLevel) string {
	switch level {
	case domain.ExperienceEntry:
		return "entry level"
	case domain.ExperienceMid:
		return "mid level"
	case domain.ExperienceSenior:
		return "senior"
	case domain.ExperienceLead:
		return "lead"
	default:
		return ""
	}
}
