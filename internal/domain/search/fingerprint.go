package search

import (
	"regexp"
	"strings"

	"github.com/honeycarbs/jobkit/internal/domain"
)

// KeySeparator joins the normalized title and company of a fingerprint.
const KeySeparator = "|"

// legalSuffixes are stripped as plain substrings; longer tokens go first so
// "corporation" is removed whole instead of leaving "oration" behind "corp".
var legalSuffixes = []string{
	"corporation",
	"limited",
	"private",
	"corp",
	"pvt",
	"ltd",
	"inc",
}

var (
	parenthesized = regexp.MustCompile(`\([^)]*\)`)
	nonAlnum      = regexp.MustCompile(`[^a-z0-9]+`)
)

// Fingerprint returns the dedup key of a posting: normalized title and company
// joined by KeySeparator. Location is not part of the key. An empty string means
// the posting cannot be keyed.
func Fingerprint(p domain.JobPosting) string {
	title := normalizeField(p.Title)
	company := normalizeField(p.Company)
	if title == "" && company == "" {
		return ""
	}
	return title + KeySeparator + company
}

func normalizeField(s string) string {
	s = strings.ToLower(s)
	for _, suffix := range legalSuffixes {
		s = strings.ReplaceAll(s, suffix, "")
	}
	if i := strings.Index(s, "|"); i >= 0 {
		s = s[:i]
	}
	s = parenthesized.ReplaceAllString(s, "")
	s = nonAlnum.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
