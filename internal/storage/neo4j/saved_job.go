package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/repository"

	pkgneo4j "github.com/honeycarbs/jobkit/pkg/neo4j"
)

// Ensure SavedJobRepository implements repository.SavedJobRepository
var _ repository.SavedJobRepository = (*SavedJobRepository)(nil)

// SavedJobRepository stores tracker cards as (:User)-[:TRACKS]->(:SavedJob)-[:AT]->(:Company)
type SavedJobRepository struct {
	client *pkgneo4j.Client
}

// NewSavedJobRepository creates a SavedJobRepository with a Neo4j client
func NewSavedJobRepository(client *pkgneo4j.Client) *SavedJobRepository {
	return &SavedJobRepository{client: client}
}

// List returns the user's cards newest first
func (r *SavedJobRepository) List(ctx context.Context, userID uuid.UUID, status domain.Status) ([]domain.SavedJob, error) {
	query := `
		MATCH (j:SavedJob {userId: $userId})
		WHERE $status = "" OR j.status = $status
		RETURN j
		ORDER BY j.createdAt DESC
	`
	return r.readJobs(ctx, query, map[string]any{
		"userId": userID.String(),
		"status": string(status),
	})
}

// Get loads one card by ID
func (r *SavedJobRepository) Get(ctx context.Context, id uuid.UUID) (domain.SavedJob, error) {
	jobs, err := r.readJobs(ctx, `MATCH (j:SavedJob {id: $id}) RETURN j`, map[string]any{"id": id.String()})
	if err != nil {
		return domain.SavedJob{}, err
	}
	if len(jobs) == 0 {
		return domain.SavedJob{}, repository.ErrNotFound
	}
	return jobs[0], nil
}

// Create inserts a card and links it to its owner and company
func (r *SavedJobRepository) Create(ctx context.Context, job domain.SavedJob) error {
	query := `
		MERGE (u:User {id: $userId})
		CREATE (j:SavedJob)
		SET j = $props
		CREATE (u)-[:TRACKS]->(j)
		WITH j
		MERGE (c:Company {name: $company})
		MERGE (j)-[:AT]->(c)
	`
	return r.write(ctx, query, map[string]any{
		"userId":  job.UserID.String(),
		"company": job.Company,
		"props":   savedJobProps(job),
	})
}

// Update replaces the card's properties and re-links the company
func (r *SavedJobRepository) Update(ctx context.Context, job domain.SavedJob) error {
	query := `
		MATCH (j:SavedJob {id: $id})
		SET j += $props
		WITH j
		OPTIONAL MATCH (j)-[old:AT]->(:Company)
		DELETE old
		WITH DISTINCT j
		MERGE (c:Company {name: $company})
		MERGE (j)-[:AT]->(c)
		RETURN j.id AS id
	`
	n, err := r.writeCount(ctx, query, map[string]any{
		"id":      job.ID.String(),
		"company": job.Company,
		"props":   savedJobProps(job),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a card and its relationships
func (r *SavedJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		MATCH (j:SavedJob {id: $id})
		WITH j, j.id AS id
		DETACH DELETE j
		RETURN id
	`
	n, err := r.writeCount(ctx, query, map[string]any{"id": id.String()})
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListAppliedBefore finds Applied cards waiting longer than cutoff
func (r *SavedJobRepository) ListAppliedBefore(ctx context.Context, cutoff time.Time) ([]domain.SavedJob, error) {
	query := `
		MATCH (j:SavedJob {status: "Applied"})
		WHERE coalesce(j.followUpDue, false) = false
		  AND j.appliedDate IS NOT NULL
		  AND j.appliedDate < $cutoff
		RETURN j
	`
	return r.readJobs(ctx, query, map[string]any{"cutoff": cutoff.UTC()})
}

// MarkFollowUpDue flags the given cards
func (r *SavedJobRepository) MarkFollowUpDue(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	query := `
		UNWIND $ids AS id
		MATCH (j:SavedJob {id: id})
		SET j.followUpDue = true
	`
	return r.write(ctx, query, map[string]any{"ids": idStrings})
}

func (r *SavedJobRepository) readJobs(ctx context.Context, query string, params map[string]any) ([]domain.SavedJob, error) {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	records, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: read saved jobs: %w", err)
	}

	jobs := make([]domain.SavedJob, 0)
	for _, record := range records.([]*neo4j.Record) {
		val, ok := record.Get("j")
		if !ok {
			continue
		}
		node, ok := val.(neo4j.Node)
		if !ok {
			continue
		}
		if job, ok := savedJobFromNode(node); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (r *SavedJobRepository) write(ctx context.Context, query string, params map[string]any) error {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j: write saved job: %w", err)
	}
	return nil
}

func (r *SavedJobRepository) writeCount(ctx context.Context, query string, params map[string]any) (int, error) {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	n, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}
		return len(records), nil
	})
	if err != nil {
		return 0, fmt.Errorf("neo4j: write saved job: %w", err)
	}
	return n.(int), nil
}
