package tracker

import (
	"errors"

	"github.com/honeycarbs/jobkit/internal/repository"
)

var (
	// ErrNotFound is returned when the job does not exist
	ErrNotFound = repository.ErrNotFound
	// ErrForbidden is returned when the job belongs to another user
	ErrForbidden = errors.New("tracker: job belongs to another user")
)

// ValidationError reports caller input that cannot be applied
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "tracker: " + e.Msg }
