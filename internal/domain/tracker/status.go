package tracker

import (
	"fmt"
	"strings"

	"github.com/honeycarbs/jobkit/internal/domain"
)

// ParseStatus validates a board column name, case-insensitively.
func ParseStatus(s string) (domain.Status, error) {
	for _, st := range domain.Statuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// IsActive reports whether an application is still in flight
func IsActive(s domain.Status) bool {
	return s == domain.StatusApplied || s == domain.StatusInterview
}
