package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/repository"
)

var _ repository.SavedJobRepository = (*SavedJobRepository)(nil)

const savedJobColumns = `id, user_id, role, company, status, salary, notes, jd_url, jd_text,
	recruiter_name, applied_date, resume_version, checklist_done, ai_score, follow_up_due,
	created_at, updated_at`

// SavedJobRepository stores tracker cards in the saved_jobs table
type SavedJobRepository struct {
	pool *pgxpool.Pool
}

// NewSavedJobRepository creates the repository
func NewSavedJobRepository(pool *pgxpool.Pool) *SavedJobRepository {
	return &SavedJobRepository{pool: pool}
}

func (r *SavedJobRepository) List(ctx context.Context, userID uuid.UUID, status domain.Status) ([]domain.SavedJob, error) {
	base := `SELECT ` + savedJobColumns + ` FROM saved_jobs WHERE user_id = $1`

	var (
		rows pgx.Rows
		err  error
	)
	if status != "" {
		rows, err = r.pool.Query(ctx, base+` AND status = $2 ORDER BY created_at DESC`, userID, string(status))
	} else {
		rows, err = r.pool.Query(ctx, base+` ORDER BY created_at DESC`, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: list saved jobs: %w", err)
	}
	return collectJobs(rows)
}

func (r *SavedJobRepository) Get(ctx context.Context, id uuid.UUID) (domain.SavedJob, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+savedJobColumns+` FROM saved_jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		return domain.SavedJob{}, translate(err)
	}
	return job, nil
}

func (r *SavedJobRepository) Create(ctx context.Context, j domain.SavedJob) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO saved_jobs (`+savedJobColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		j.ID, j.UserID, j.Role, j.Company, string(j.Status), j.Salary, j.Notes, j.JDURL, j.JDText,
		j.RecruiterName, j.AppliedDate, j.ResumeVersion, nonNil(j.ChecklistDone), j.AIScore, j.FollowUpDue,
		j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: insert saved job: %w", translate(err))
	}
	return nil
}

func (r *SavedJobRepository) Update(ctx context.Context, j domain.SavedJob) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE saved_jobs
		 SET role = $2, company = $3, status = $4, salary = $5, notes = $6, jd_url = $7, jd_text = $8,
		     recruiter_name = $9, applied_date = $10, resume_version = $11, checklist_done = $12,
		     ai_score = $13, follow_up_due = $14, updated_at = $15
		 WHERE id = $1`,
		j.ID, j.Role, j.Company, string(j.Status), j.Salary, j.Notes, j.JDURL, j.JDText,
		j.RecruiterName, j.AppliedDate, j.ResumeVersion, nonNil(j.ChecklistDone),
		j.AIScore, j.FollowUpDue, j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: update saved job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *SavedJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM saved_jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete saved job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *SavedJobRepository) ListAppliedBefore(ctx context.Context, cutoff time.Time) ([]domain.SavedJob, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+savedJobColumns+` FROM saved_jobs
		 WHERE status = $1 AND follow_up_due = FALSE AND applied_date < $2`,
		string(domain.StatusApplied), cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: list follow-ups: %w", err)
	}
	return collectJobs(rows)
}

func (r *SavedJobRepository) MarkFollowUpDue(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}
	if _, err := r.pool.Exec(ctx, `UPDATE saved_jobs SET follow_up_due = TRUE WHERE id = ANY($1::uuid[])`, idStrings); err != nil {
		return fmt.Errorf("postgres: mark follow-ups: %w", err)
	}
	return nil
}

func collectJobs(rows pgx.Rows) ([]domain.SavedJob, error) {
	defer rows.Close()

	jobs := make([]domain.SavedJob, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan saved job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate saved jobs: %w", err)
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (domain.SavedJob, error) {
	var (
		j      domain.SavedJob
		status string
	)
	err := row.Scan(
		&j.ID, &j.UserID, &j.Role, &j.Company, &status, &j.Salary, &j.Notes, &j.JDURL, &j.JDText,
		&j.RecruiterName, &j.AppliedDate, &j.ResumeVersion, &j.ChecklistDone, &j.AIScore, &j.FollowUpDue,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return domain.SavedJob{}, err
	}
	j.Status = domain.Status(status)
	j.ChecklistDone = nonNil(j.ChecklistDone)
	return j, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
