package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Ensure application tables exist
func EnsureSchema(ctx context.Context, db *sqlx.DB, schema string) error {
	for _, stmt := range schemaStatements(schema) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

func schemaStatements(schema string) []string {
	return []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash TEXT,
			role VARCHAR(20) NOT NULL CHECK (role IN ('Professor', 'Student')),
			auth_provider VARCHAR(20) NOT NULL DEFAULT 'local',
			google_id VARCHAR(255) UNIQUE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		)`, schema),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.assignments (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			due_date TIMESTAMP WITH TIME ZONE NOT NULL,
			resource_link TEXT NOT NULL DEFAULT '',
			creator_id UUID NOT NULL REFERENCES %s.users(id),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		)`, schema, schema),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.groups (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			creator_id UUID NOT NULL REFERENCES %s.users(id),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		)`, schema, schema),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.group_members (
			group_id UUID NOT NULL REFERENCES %s.groups(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES %s.users(id),
			PRIMARY KEY (group_id, user_id)
		)`, schema, schema, schema),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.submissions (
			id UUID PRIMARY KEY,
			assignment_id UUID NOT NULL REFERENCES %s.assignments(id) ON DELETE CASCADE,
			group_id UUID REFERENCES %s.groups(id),
			submitter_id UUID NOT NULL REFERENCES %s.users(id),
			confirmed BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		)`, schema, schema, schema, schema),
		// one submission per group per assignment
		fmt.Sprintf(`
		CREATE UNIQUE INDEX IF NOT EXISTS submissions_assignment_group_uniq
			ON %s.submissions (assignment_id, group_id)
			WHERE group_id IS NOT NULL`, schema),
		// one individual submission per student per assignment
		fmt.Sprintf(`
		CREATE UNIQUE INDEX IF NOT EXISTS submissions_assignment_submitter_uniq
			ON %s.submissions (assignment_id, submitter_id)
			WHERE group_id IS NULL`, schema),
		fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS submissions_assignment_idx
			ON %s.submissions (assignment_id)`, schema),
		fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS assignments_creator_idx
			ON %s.assignments (creator_id)`, schema),
	}
}
