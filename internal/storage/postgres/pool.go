// Package postgres implements the repositories on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/honeycarbs/jobkit/internal/repository"
)

// NewPool creates and verifies a pgxpool connection pool.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping failed: %w", err)
	}

	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS saved_jobs (
	id             UUID PRIMARY KEY,
	user_id        UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	role           TEXT NOT NULL,
	company        TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'Saved',
	salary         TEXT NOT NULL DEFAULT '',
	notes          TEXT NOT NULL DEFAULT '',
	jd_url         TEXT NOT NULL DEFAULT '',
	jd_text        TEXT NOT NULL DEFAULT '',
	recruiter_name TEXT NOT NULL DEFAULT '',
	applied_date   TIMESTAMPTZ,
	resume_version TEXT NOT NULL DEFAULT '',
	checklist_done TEXT[] NOT NULL DEFAULT '{}',
	ai_score       DOUBLE PRECISION,
	follow_up_due  BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS saved_jobs_user_created ON saved_jobs (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS saved_jobs_follow_up ON saved_jobs (status, applied_date) WHERE follow_up_due = FALSE;
`

// Migrate creates the tables when missing
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrConflict
	}
	return err
}
