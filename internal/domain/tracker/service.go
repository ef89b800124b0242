// Package tracker manages a user's board of saved job applications.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/repository"
	"github.com/honeycarbs/jobkit/pkg/logging"
)

// CreateInput holds the fields accepted when adding a card by hand
type CreateInput struct {
	Role          string        `json:"role"`
	Company       string        `json:"company"`
	Status        domain.Status `json:"status"`
	Salary        string        `json:"salary"`
	Notes         string        `json:"notes"`
	JDURL         string        `json:"jdUrl"`
	JDText        string        `json:"jdText"`
	RecruiterName string        `json:"recruiterName"`
	ResumeVersion string        `json:"resumeVersion"`
	AppliedDate   *time.Time    `json:"appliedDate"`
}

// UpdateInput is a partial update; nil fields are left unchanged
type UpdateInput struct {
	Role          *string        `json:"role"`
	Company       *string        `json:"company"`
	Status        *domain.Status `json:"status"`
	Salary        *string        `json:"salary"`
	Notes         *string        `json:"notes"`
	JDURL         *string        `json:"jdUrl"`
	JDText        *string        `json:"jdText"`
	RecruiterName *string        `json:"recruiterName"`
	ResumeVersion *string        `json:"resumeVersion"`
	AppliedDate   *time.Time     `json:"appliedDate"`
	ChecklistDone []string       `json:"checklistDone"`
	AIScore       *float64       `json:"aiScore"`
}

// ChecklistUpdate either replaces the completed steps or toggles one step
type ChecklistUpdate struct {
	Done []string `json:"checklistDone"`
	Step string   `json:"step"`
}

// Option configures Service
type Option func(*config)

type config struct {
	repo   repository.SavedJobRepository
	logger *logging.Logger
	clock  func() time.Time
}

// WithRepository sets the board storage
func WithRepository(r repository.SavedJobRepository) Option {
	return func(c *config) {
		c.repo = r
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// Service implements board operations with ownership checks
type Service struct {
	repo   repository.SavedJobRepository
	logger *logging.Logger
	clock  func() time.Time
}

// NewService builds Service from options
func NewService(opts ...Option) (*Service, error) {
	cfg := &config{clock: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.repo == nil {
		return nil, fmt.Errorf("tracker.Service: repository is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.Nop()
	}

	return &Service{repo: cfg.repo, logger: cfg.logger, clock: cfg.clock}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(repo repository.SavedJobRepository, logger *logging.Logger) (*Service, error) {
	return NewService(WithRepository(repo), WithLogger(logger))
}

// List returns the user's board newest first, optionally restricted to one status
func (s *Service) List(ctx context.Context, userID uuid.UUID, status string) ([]domain.SavedJob, error) {
	var st domain.Status
	if strings.TrimSpace(status) != "" {
		parsed, err := ParseStatus(status)
		if err != nil {
			return nil, &ValidationError{Msg: err.Error()}
		}
		st = parsed
	}

	jobs, err := s.repo.List(ctx, userID, st)
	if err != nil {
		return nil, fmt.Errorf("tracker: list: %w", err)
	}
	return jobs, nil
}

// Get returns one job after checking ownership
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (domain.SavedJob, error) {
	job, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.SavedJob{}, ErrNotFound
		}
		return domain.SavedJob{}, fmt.Errorf("tracker: get: %w", err)
	}
	if job.UserID != userID {
		return domain.SavedJob{}, ErrForbidden
	}
	return job, nil
}

// Create adds a card. Role and company are required; status defaults to Saved.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (domain.SavedJob, error) {
	role := strings.TrimSpace(in.Role)
	company := strings.TrimSpace(in.Company)
	if role == "" || company == "" {
		return domain.SavedJob{}, &ValidationError{Msg: "role and company are required"}
	}

	status := domain.StatusSaved
	if in.Status != "" {
		parsed, err := ParseStatus(string(in.Status))
		if err != nil {
			return domain.SavedJob{}, &ValidationError{Msg: err.Error()}
		}
		status = parsed
	}

	job := domain.SavedJob{
		Role:          role,
		Company:       company,
		Status:        status,
		Salary:        in.Salary,
		Notes:         in.Notes,
		JDURL:         in.JDURL,
		JDText:        in.JDText,
		RecruiterName: in.RecruiterName,
		ResumeVersion: in.ResumeVersion,
		AppliedDate:   in.AppliedDate,
		ChecklistDone: []string{},
	}

	return s.insert(ctx, userID, job)
}

// SaveFromPosting adds a search result to the board as a Saved card
func (s *Service) SaveFromPosting(ctx context.Context, userID uuid.UUID, p domain.JobPosting) (domain.SavedJob, error) {
	if strings.TrimSpace(p.Title) == "" && strings.TrimSpace(p.Company) == "" {
		return domain.SavedJob{}, &ValidationError{Msg: "posting has no title or company"}
	}
	return s.insert(ctx, userID, FromPosting(p))
}

func (s *Service) insert(ctx context.Context, userID uuid.UUID, job domain.SavedJob) (domain.SavedJob, error) {
	now := s.clock().UTC()
	job.ID = uuid.New()
	job.UserID = userID
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.Status == domain.StatusApplied && job.AppliedDate == nil {
		job.AppliedDate = &now
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return domain.SavedJob{}, fmt.Errorf("tracker: create: %w", err)
	}

	s.logger.Info("job saved", "user", userID, "job", job.ID, "status", job.Status)
	return job, nil
}

// Update applies a partial update. Moving to Applied stamps AppliedDate when unset.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, in UpdateInput) (domain.SavedJob, error) {
	job, err := s.Get(ctx, userID, id)
	if err != nil {
		return domain.SavedJob{}, err
	}

	if in.Role != nil {
		if strings.TrimSpace(*in.Role) == "" {
			return domain.SavedJob{}, &ValidationError{Msg: "role cannot be empty"}
		}
		job.Role = strings.TrimSpace(*in.Role)
	}
	if in.Company != nil {
		if strings.TrimSpace(*in.Company) == "" {
			return domain.SavedJob{}, &ValidationError{Msg: "company cannot be empty"}
		}
		job.Company = strings.TrimSpace(*in.Company)
	}
	if in.Status != nil {
		st, err := ParseStatus(string(*in.Status))
		if err != nil {
			return domain.SavedJob{}, &ValidationError{Msg: err.Error()}
		}
		if st != domain.StatusApplied {
			job.FollowUpDue = false
		}
		job.Status = st
	}
	assign(&job.Salary, in.Salary)
	assign(&job.Notes, in.Notes)
	assign(&job.JDURL, in.JDURL)
	assign(&job.JDText, in.JDText)
	assign(&job.RecruiterName, in.RecruiterName)
	assign(&job.ResumeVersion, in.ResumeVersion)
	if in.AppliedDate != nil {
		job.AppliedDate = in.AppliedDate
	}
	if in.ChecklistDone != nil {
		job.ChecklistDone = NormalizeDone(in.ChecklistDone)
	}
	if in.AIScore != nil {
		job.AIScore = in.AIScore
	}

	now := s.clock().UTC()
	if job.Status == domain.StatusApplied && job.AppliedDate == nil {
		job.AppliedDate = &now
	}
	job.UpdatedAt = now

	if err := s.repo.Update(ctx, job); err != nil {
		return domain.SavedJob{}, fmt.Errorf("tracker: update: %w", err)
	}
	return job, nil
}

// Delete removes a card after checking ownership
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("tracker: delete: %w", err)
	}
	s.logger.Info("job removed", "user", userID, "job", id)
	return nil
}

// Stats summarizes the user's board
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (Stats, error) {
	jobs, err := s.repo.List(ctx, userID, "")
	if err != nil {
		return Stats{}, fmt.Errorf("tracker: stats: %w", err)
	}
	return ComputeStats(jobs), nil
}

// Checklist renders the routine for one job
func (s *Service) Checklist(ctx context.Context, userID, id uuid.UUID) (Checklist, error) {
	job, err := s.Get(ctx, userID, id)
	if err != nil {
		return Checklist{}, err
	}
	return BuildChecklist(job.ChecklistDone), nil
}

// UpdateChecklist toggles Step when set, otherwise replaces the completed steps
func (s *Service) UpdateChecklist(ctx context.Context, userID, id uuid.UUID, in ChecklistUpdate) (Checklist, error) {
	job, err := s.Get(ctx, userID, id)
	if err != nil {
		return Checklist{}, err
	}

	if in.Step != "" {
		next, err := Toggle(job.ChecklistDone, in.Step)
		if err != nil {
			return Checklist{}, err
		}
		job.ChecklistDone = next
	} else {
		job.ChecklistDone = NormalizeDone(in.Done)
	}
	job.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, job); err != nil {
		return Checklist{}, fmt.Errorf("tracker: checklist: %w", err)
	}
	return BuildChecklist(job.ChecklistDone), nil
}

// SweepFollowUps flags Applied jobs older than after as due for a follow-up.
// It returns the number of jobs flagged.
func (s *Service) SweepFollowUps(ctx context.Context, after time.Duration) (int, error) {
	cutoff := s.clock().UTC().Add(-after)

	jobs, err := s.repo.ListAppliedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("tracker: follow-up scan: %w", err)
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	if err := s.repo.MarkFollowUpDue(ctx, ids); err != nil {
		return 0, fmt.Errorf("tracker: follow-up mark: %w", err)
	}

	s.logger.Info("follow-ups flagged", "count", len(ids), "cutoff", cutoff)
	return len(ids), nil
}

func assign(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
