package assignmentrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/core/ports/secondary"
	"gitlab.com/amsys-2025.net/internal/domain"
	querybuilder "gitlab.com/amsys-2025.net/internal/utils"
)

var _ secondary.AssignmentPort = &assignmentRepo{}

type assignmentRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.AssignmentPort {
	return &assignmentRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r assignmentRepo) Create(ctx context.Context, assignment *domain.Assignment) error {
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now()
	}
	tbl := domain.GetAssignmentTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.ID, tbl.Title, tbl.Description, tbl.DueDate, tbl.ResourceLink, tbl.CreatorID, tbl.CreatedAt).
		Into(tbl.GetTableName()).
		Values(
			assignment.ID, assignment.Title, assignment.Description,
			assignment.DueDate, assignment.ResourceLink, assignment.CreatorID, assignment.CreatedAt,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to create assignment", "error", err)
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (r assignmentRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	tbl := domain.GetAssignmentTable()
	query, args := r.selectQuery().
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var assignment domain.Assignment
	err := r.db.GetContext(ctx, &assignment, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get assignment", "error", err)
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return &assignment, nil
}

func (r assignmentRepo) List(ctx context.Context) ([]*domain.Assignment, error) {
	tbl := domain.GetAssignmentTable()
	query, args := r.selectQuery().
		OrderBy(tbl.CreatedAt, false).
		Build()
	return r.list(ctx, query, args)
}

func (r assignmentRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Assignment, error) {
	tbl := domain.GetAssignmentTable()
	query, args := r.selectQuery().
		Where(fmt.Sprintf("%s = ?", tbl.CreatorID), creatorID).
		OrderBy(tbl.CreatedAt, false).
		Build()
	return r.list(ctx, query, args)
}

func (r assignmentRepo) list(ctx context.Context, query string, args []interface{}) ([]*domain.Assignment, error) {
	query = sqlx.Rebind(sqlx.DOLLAR, query)
	assignments := make([]*domain.Assignment, 0)
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		r.logger.Error("Failed to list assignments", "error", err)
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (r assignmentRepo) Update(ctx context.Context, id uuid.UUID, patch domain.AssignmentPatch) (*domain.Assignment, error) {
	tbl := domain.GetAssignmentTable()
	data := querybuilder.UpdateData{}
	if patch.Title != nil {
		data[tbl.Title] = *patch.Title
	}
	if patch.Description != nil {
		data[tbl.Description] = *patch.Description
	}
	if patch.DueDate != nil {
		data[tbl.DueDate] = *patch.DueDate
	}
	if patch.ResourceLink != nil {
		data[tbl.ResourceLink] = *patch.ResourceLink
	}
	if len(data) > 0 {
		query, args := querybuilder.NewQueryBuilder(r.schema).
			Update(tbl.GetTableName(), data).
			Where(fmt.Sprintf("%s = ?", tbl.ID), id).
			Build()

		query = sqlx.Rebind(sqlx.DOLLAR, query)
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			r.logger.Error("Failed to update assignment", "error", err)
			return nil, fmt.Errorf("failed to update assignment: %w", err)
		}
	}
	return r.Get(ctx, id)
}

func (r assignmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tbl := domain.GetAssignmentTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Delete(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to delete assignment", "error", err)
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

func (r assignmentRepo) selectQuery() querybuilder.QueryBuilder {
	tbl := domain.GetAssignmentTable()
	return querybuilder.NewQueryBuilder(r.schema).
		Select(
			tbl.ID, tbl.Title, tbl.Description, tbl.DueDate,
			tbl.ResourceLink, tbl.CreatorID, tbl.CreatedAt,
		).
		From(tbl.GetTableName())
}
