package submissionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/core/ports/secondary"
	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/static/errs"
	querybuilder "gitlab.com/amsys-2025.net/internal/utils"
)

var _ secondary.SubmissionPort = &submissionRepo{}

type submissionRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.SubmissionPort {
	return &submissionRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// Create inserts the submission. The partial unique indexes on
// (assignment_id, group_id) and (assignment_id, submitter_id) are the
// authority on uniqueness; a violation maps to errs.AlreadySubmitted so
// concurrent duplicate submits cannot both land.
func (r submissionRepo) Create(ctx context.Context, submission *domain.Submission) error {
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now()
	}
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.ID, tbl.AssignmentID, tbl.GroupID, tbl.SubmitterID, tbl.Confirmed, tbl.CreatedAt).
		Into(tbl.GetTableName()).
		Values(
			submission.ID, submission.AssignmentID, submission.GroupID,
			submission.SubmitterID, submission.Confirmed, submission.CreatedAt,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return errs.AlreadySubmitted
		}
		r.logger.Error("Failed to create submission", "error", err)
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r submissionRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	return r.getWhere(ctx, fmt.Sprintf("%s = ?", tbl.ID), id)
}

func (r submissionRepo) GetBySubject(ctx context.Context, assignmentID uuid.UUID, subject domain.SubmissionSubject) (*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	qb := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.AssignmentID, tbl.GroupID, tbl.SubmitterID, tbl.Confirmed, tbl.CreatedAt).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.AssignmentID), assignmentID)

	if subject.IsGroup() {
		qb = qb.And(fmt.Sprintf("%s = ?", tbl.GroupID), *subject.GroupID())
	} else {
		qb = qb.And(fmt.Sprintf("%s IS NULL", tbl.GroupID)).
			And(fmt.Sprintf("%s = ?", tbl.SubmitterID), subject.SubmitterID())
	}

	query, args := qb.Build()
	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var submission domain.Submission
	err := r.db.GetContext(ctx, &submission, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get submission by subject", "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &submission, nil
}

func (r submissionRepo) getWhere(ctx context.Context, clause string, arg interface{}) (*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.AssignmentID, tbl.GroupID, tbl.SubmitterID, tbl.Confirmed, tbl.CreatedAt).
		From(tbl.GetTableName()).
		Where(clause, arg).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var submission domain.Submission
	err := r.db.GetContext(ctx, &submission, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get submission", "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &submission, nil
}

// Confirm flips confirmed in a single conditional update. Zero rows
// affected means the row was already confirmed; the transition never
// reverses.
func (r submissionRepo) Confirm(ctx context.Context, id uuid.UUID) (bool, error) {
	query := fmt.Sprintf(
		"UPDATE %s.submissions SET confirmed = true WHERE id = $1 AND confirmed = false",
		r.schema,
	)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to confirm submission", "error", err)
		return false, fmt.Errorf("failed to confirm submission: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to confirm submission: %w", err)
	}
	return affected > 0, nil
}

func (r submissionRepo) List(ctx context.Context) ([]*domain.Submission, error) {
	query := r.baseSelect() + " ORDER BY s.created_at DESC"
	return r.list(ctx, query, nil)
}

func (r submissionRepo) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	query := r.baseSelect() + " WHERE s.assignment_id = $1 ORDER BY s.created_at DESC"
	return r.list(ctx, query, []interface{}{assignmentID})
}

func (r submissionRepo) ListByAssignments(ctx context.Context, assignmentIDs []uuid.UUID) ([]*domain.Submission, error) {
	if len(assignmentIDs) == 0 {
		return []*domain.Submission{}, nil
	}
	query, args, err := sqlx.In(r.baseSelect()+" WHERE s.assignment_id IN (?) ORDER BY s.created_at DESC", assignmentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build submissions query: %w", err)
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)
	return r.list(ctx, query, args)
}

// ListVisibleTo returns the caller's individual submissions plus the
// submissions of every group the caller is a member of.
func (r submissionRepo) ListVisibleTo(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	query := r.baseSelect() + fmt.Sprintf(`
		WHERE (s.group_id IS NULL AND s.submitter_id = $1)
		   OR s.group_id IN (
			SELECT gm.group_id FROM %s.group_members gm WHERE gm.user_id = $1
		)
		ORDER BY s.created_at DESC`, r.schema)
	return r.list(ctx, query, []interface{}{userID})
}

func (r submissionRepo) ExistsForUser(ctx context.Context, assignmentID, userID uuid.UUID) (bool, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(1) FROM %[1]s.submissions s
		WHERE s.assignment_id = $1
		  AND (
			(s.group_id IS NULL AND s.submitter_id = $2)
			OR s.group_id IN (
				SELECT gm.group_id FROM %[1]s.group_members gm WHERE gm.user_id = $2
			)
		  )`, r.schema)
	var count int
	if err := r.db.GetContext(ctx, &count, query, assignmentID, userID); err != nil {
		r.logger.Error("Failed to check submission existence", "error", err)
		return false, fmt.Errorf("failed to check submission existence: %w", err)
	}
	return count > 0, nil
}

func (r submissionRepo) baseSelect() string {
	return fmt.Sprintf(`
		SELECT s.id, s.assignment_id, s.group_id, s.submitter_id, s.confirmed, s.created_at,
		       a.title AS assignment_title, a.due_date AS assignment_due_date,
		       a.resource_link AS assignment_resource_link,
		       g.name AS group_name,
		       u.name AS submitter_name, u.email AS submitter_email
		FROM %[1]s.submissions s
		INNER JOIN %[1]s.assignments a ON a.id = s.assignment_id
		LEFT JOIN %[1]s.groups g ON g.id = s.group_id
		INNER JOIN %[1]s.users u ON u.id = s.submitter_id`, r.schema)
}

type submissionRow struct {
	ID           uuid.UUID    `db:"id"`
	AssignmentID uuid.UUID    `db:"assignment_id"`
	GroupID      *uuid.UUID   `db:"group_id"`
	SubmitterID  uuid.UUID    `db:"submitter_id"`
	Confirmed    bool         `db:"confirmed"`
	CreatedAt    sql.NullTime `db:"created_at"`

	AssignmentTitle        string       `db:"assignment_title"`
	AssignmentDueDate      sql.NullTime `db:"assignment_due_date"`
	AssignmentResourceLink string       `db:"assignment_resource_link"`
	GroupName              *string      `db:"group_name"`
	SubmitterName          string       `db:"submitter_name"`
	SubmitterEmail         string       `db:"submitter_email"`
}

func (r submissionRepo) list(ctx context.Context, query string, args []interface{}) ([]*domain.Submission, error) {
	rows := make([]submissionRow, 0)
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to list submissions", "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	submissions := make([]*domain.Submission, 0, len(rows))
	groupIDs := make([]uuid.UUID, 0)
	seenGroups := make(map[uuid.UUID]bool)
	for _, row := range rows {
		s := &domain.Submission{
			ID:           row.ID,
			AssignmentID: row.AssignmentID,
			GroupID:      row.GroupID,
			SubmitterID:  row.SubmitterID,
			Confirmed:    row.Confirmed,
			Assignment: &domain.AssignmentSummary{
				ID:           row.AssignmentID,
				Title:        row.AssignmentTitle,
				ResourceLink: row.AssignmentResourceLink,
			},
			Submitter: &domain.UserSummary{
				ID:    row.SubmitterID,
				Name:  row.SubmitterName,
				Email: row.SubmitterEmail,
			},
		}
		if row.CreatedAt.Valid {
			s.CreatedAt = row.CreatedAt.Time
		}
		if row.AssignmentDueDate.Valid {
			s.Assignment.DueDate = row.AssignmentDueDate.Time
		}
		if row.GroupID != nil && row.GroupName != nil {
			s.Group = &domain.GroupSummary{ID: *row.GroupID, Name: *row.GroupName}
			if !seenGroups[*row.GroupID] {
				seenGroups[*row.GroupID] = true
				groupIDs = append(groupIDs, *row.GroupID)
			}
		}
		submissions = append(submissions, s)
	}

	if err := r.loadGroupMembers(ctx, submissions, groupIDs); err != nil {
		return nil, err
	}
	return submissions, nil
}

// loadGroupMembers attaches member summaries to the group summary of every
// group submission in the result set.
func (r submissionRepo) loadGroupMembers(ctx context.Context, submissions []*domain.Submission, groupIDs []uuid.UUID) error {
	if len(groupIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(fmt.Sprintf(`
		SELECT gm.group_id, u.id, u.name, u.email
		FROM %[1]s.group_members gm
		INNER JOIN %[1]s.users u ON u.id = gm.user_id
		WHERE gm.group_id IN (?)
		ORDER BY u.name ASC`, r.schema), groupIDs)
	if err != nil {
		return fmt.Errorf("failed to build members query: %w", err)
	}

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to load submission group members", "error", err)
		return fmt.Errorf("failed to load submission group members: %w", err)
	}
	defer rows.Close()

	membersByGroup := make(map[uuid.UUID][]domain.UserSummary)
	for rows.Next() {
		var groupID uuid.UUID
		var member domain.UserSummary
		if err = rows.Scan(&groupID, &member.ID, &member.Name, &member.Email); err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		membersByGroup[groupID] = append(membersByGroup[groupID], member)
	}
	if err = rows.Err(); err != nil {
		return err
	}

	for _, s := range submissions {
		if s.Group != nil {
			s.Group.Members = membersByGroup[s.Group.ID]
		}
	}
	return nil
}
