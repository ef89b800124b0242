package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository stores accounts in the users table
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates the repository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Name, strings.ToLower(u.Email), u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		if errors.Is(translate(err), repository.ErrConflict) {
			return repository.ErrConflict
		}
		return fmt.Errorf("postgres: insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, strings.ToLower(email))
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users `+where, arg,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		err = translate(err)
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("postgres: find user: %w", err)
	}
	return u, nil
}
