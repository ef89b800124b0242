package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/repository"
)

var _ repository.SavedJobRepository = (*SavedJobRepository)(nil)

// SavedJobRepository keeps tracker cards in process memory
type SavedJobRepository struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]domain.SavedJob
}

// NewSavedJobRepository creates an empty repository
func NewSavedJobRepository() *SavedJobRepository {
	return &SavedJobRepository{jobs: make(map[uuid.UUID]domain.SavedJob)}
}

func (r *SavedJobRepository) List(_ context.Context, userID uuid.UUID, status domain.Status) ([]domain.SavedJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.SavedJob, 0)
	for _, j := range r.jobs {
		if j.UserID != userID || (status != "" && j.Status != status) {
			continue
		}
		out = append(out, clone(j))
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out, nil
}

func (r *SavedJobRepository) Get(_ context.Context, id uuid.UUID) (domain.SavedJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.jobs[id]
	if !ok {
		return domain.SavedJob{}, repository.ErrNotFound
	}
	return clone(j), nil
}

func (r *SavedJobRepository) Create(_ context.Context, job domain.SavedJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[job.ID]; ok {
		return repository.ErrConflict
	}
	r.jobs[job.ID] = clone(job)
	return nil
}

func (r *SavedJobRepository) Update(_ context.Context, job domain.SavedJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[job.ID]; !ok {
		return repository.ErrNotFound
	}
	r.jobs[job.ID] = clone(job)
	return nil
}

func (r *SavedJobRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *SavedJobRepository) ListAppliedBefore(_ context.Context, cutoff time.Time) ([]domain.SavedJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.SavedJob, 0)
	for _, j := range r.jobs {
		if j.Status == domain.StatusApplied && !j.FollowUpDue && j.AppliedDate != nil && j.AppliedDate.Before(cutoff) {
			out = append(out, clone(j))
		}
	}
	return out, nil
}

func (r *SavedJobRepository) MarkFollowUpDue(_ context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		if j, ok := r.jobs[id]; ok {
			j.FollowUpDue = true
			r.jobs[id] = j
		}
	}
	return nil
}

func clone(j domain.SavedJob) domain.SavedJob {
	j.ChecklistDone = slices.Clone(j.ChecklistDone)
	if j.ChecklistDone == nil {
		j.ChecklistDone = []string{}
	}
	return j
}
