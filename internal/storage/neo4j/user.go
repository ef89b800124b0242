package neo4j

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/repository"

	pkgneo4j "github.com/honeycarbs/jobkit/pkg/neo4j"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository stores accounts as :User nodes
type UserRepository struct {
	client *pkgneo4j.Client
}

// NewUserRepository creates a UserRepository with a Neo4j client
func NewUserRepository(client *pkgneo4j.Client) *UserRepository {
	return &UserRepository{client: client}
}

// CreateUser inserts the account unless the email is already registered
func (r *UserRepository) CreateUser(ctx context.Context, user domain.User) error {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		OPTIONAL MATCH (existing:User {email: $email})
		WITH existing
		WHERE existing IS NULL
		MERGE (u:User {id: $id})
		SET u.name = $name,
		    u.email = $email,
		    u.passwordHash = $passwordHash,
		    u.createdAt = $createdAt
		RETURN u.id AS id
	`

	created, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, map[string]any{
			"id":           user.ID.String(),
			"name":         user.Name,
			"email":        strings.ToLower(user.Email),
			"passwordHash": user.PasswordHash,
			"createdAt":    user.CreatedAt.UTC(),
		})
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}
		return len(records) > 0, nil
	})
	if err != nil {
		if neo4j.IsNeo4jError(err) && strings.Contains(err.Error(), "ConstraintValidationFailed") {
			return repository.ErrConflict
		}
		return fmt.Errorf("neo4j: create user: %w", err)
	}
	if !created.(bool) {
		return repository.ErrConflict
	}
	return nil
}

// FindUserByEmail looks up an account by email
func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, `MATCH (u:User {email: $email}) RETURN u`, map[string]any{"email": strings.ToLower(email)})
}

// FindUserByID looks up an account by ID
func (r *UserRepository) FindUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return r.findOne(ctx, `MATCH (u:User {id: $id}) WHERE u.email IS NOT NULL RETURN u`, map[string]any{"id": id.String()})
}

func (r *UserRepository) findOne(ctx context.Context, query string, params map[string]any) (domain.User, error) {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	rec, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, nil
		}
		return records[0], nil
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("neo4j: find user: %w", err)
	}
	if rec == nil {
		return domain.User{}, repository.ErrNotFound
	}

	val, _ := rec.(*neo4j.Record).Get("u")
	node, ok := val.(neo4j.Node)
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	user, ok := userFromNode(node)
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}
