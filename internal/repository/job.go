package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobkit/internal/domain"
)

// ErrNotFound is returned by repositories when a record does not exist
var ErrNotFound = errors.New("repository: not found")

// ErrConflict is returned when a unique constraint is violated
var ErrConflict = errors.New("repository: conflict")

// SavedJobRepository defines the interface for tracker board storage
type SavedJobRepository interface {
	// List returns the user's jobs newest first; an empty status means all
	List(ctx context.Context, userID uuid.UUID, status domain.Status) ([]domain.SavedJob, error)
	Get(ctx context.Context, id uuid.UUID) (domain.SavedJob, error)
	Create(ctx context.Context, job domain.SavedJob) error
	Update(ctx context.Context, job domain.SavedJob) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListAppliedBefore returns Applied jobs with AppliedDate before cutoff
	// that are not yet flagged for follow-up, across all users
	ListAppliedBefore(ctx context.Context, cutoff time.Time) ([]domain.SavedJob, error)
	MarkFollowUpDue(ctx context.Context, ids []uuid.UUID) error
}

// UserRepository defines the interface for account storage
type UserRepository interface {
	// CreateUser returns ErrConflict when the email is taken
	CreateUser(ctx context.Context, user domain.User) error
	FindUserByEmail(ctx context.Context, email string) (domain.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}
