package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	pkgneo4j "github.com/honeycarbs/jobkit/pkg/neo4j"
)

var constraints = []string{
	`CREATE CONSTRAINT user_id IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`,
	`CREATE CONSTRAINT user_email IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE`,
	`CREATE CONSTRAINT saved_job_id IF NOT EXISTS FOR (j:SavedJob) REQUIRE j.id IS UNIQUE`,
	`CREATE CONSTRAINT company_name IF NOT EXISTS FOR (c:Company) REQUIRE c.name IS UNIQUE`,
	`CREATE INDEX saved_job_user IF NOT EXISTS FOR (j:SavedJob) ON (j.userId)`,
}

// EnsureSchema creates the constraints and indexes the repositories rely on
func EnsureSchema(ctx context.Context, client *pkgneo4j.Client) error {
	session := client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	for _, stmt := range constraints {
		result, err := session.Run(ctx, stmt, nil)
		if err != nil {
			return fmt.Errorf("neo4j: ensure schema: %w", err)
		}
		if _, err := result.Consume(ctx); err != nil {
			return fmt.Errorf("neo4j: ensure schema: %w", err)
		}
	}
	return nil
}
