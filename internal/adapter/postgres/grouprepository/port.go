package grouprepository

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

var _ secondary.GroupPort = &groupRepo{}

type groupRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.GroupPort {
	return &groupRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// Create inserts the group row and the creator's membership row in a single
// transaction so a group can never be observed without its creator.
func (r groupRepo) Create(ctx context.Context, group *domain.Group) error {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	groupTbl := domain.GetGroupTable()
	memberTbl := domain.GetGroupMemberTable()

	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(groupTbl.ID, groupTbl.Name, groupTbl.CreatorID, groupTbl.CreatedAt).
		Into(groupTbl.GetTableName()).
		Values(group.ID, group.Name, group.CreatorID, group.CreatedAt).
		Build()
	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to create group", "error", err)
		return fmt.Errorf("failed to create group: %w", err)
	}

	query, args = querybuilder.NewQueryBuilder(r.schema).
		Insert(memberTbl.GroupID, memberTbl.UserID).
		Into(memberTbl.GetTableName()).
		Values(group.ID, group.CreatorID).
		Build()
	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to create group membership", "error", err)
		return fmt.Errorf("failed to create group membership: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group creation: %w", err)
	}
	return nil
}

func (r groupRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	groupTbl := domain.GetGroupTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(groupTbl.ID, groupTbl.Name, groupTbl.CreatorID, groupTbl.CreatedAt).
		From(groupTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", groupTbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var group domain.Group
	err := r.db.GetContext(ctx, &group, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get group", "error", err)
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err = r.loadRosters(ctx, []*domain.Group{&group}); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r groupRepo) List(ctx context.Context) ([]*domain.Group, error) {
	groupTbl := domain.GetGroupTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(groupTbl.ID, groupTbl.Name, groupTbl.CreatorID, groupTbl.CreatedAt).
		From(groupTbl.GetTableName()).
		OrderBy(groupTbl.CreatedAt, false).
		Build()
	return r.list(ctx, query, args)
}

func (r groupRepo) ListByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	query := fmt.Sprintf(`
		SELECT g.id, g.name, g.creator_id, g.created_at
		FROM %[1]s.groups g
		INNER JOIN %[1]s.group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1
		ORDER BY g.created_at DESC
	`, r.schema)
	return r.list(ctx, query, []interface{}{userID})
}

func (r groupRepo) list(ctx context.Context, query string, args []interface{}) ([]*domain.Group, error) {
	query = sqlx.Rebind(sqlx.DOLLAR, query)
	groups := make([]*domain.Group, 0)
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		r.logger.Error("Failed to list groups", "error", err)
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	if err := r.loadRosters(ctx, groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// loadRosters attaches creator and member summaries to the given groups.
func (r groupRepo) loadRosters(ctx context.Context, groups []*domain.Group) error {
	if len(groups) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(groups))
	byID := make(map[uuid.UUID]*domain.Group, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
		byID[g.ID] = g
	}

	query, args, err := sqlx.In(fmt.Sprintf(`
		SELECT gm.group_id, u.id, u.name, u.email
		FROM %[1]s.group_members gm
		INNER JOIN %[1]s.users u ON u.id = gm.user_id
		WHERE gm.group_id IN (?)
		ORDER BY u.name ASC
	`, r.schema), ids)
	if err != nil {
		return fmt.Errorf("failed to build roster query: %w", err)
	}

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to load group rosters", "error", err)
		return fmt.Errorf("failed to load group rosters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID uuid.UUID
		var member domain.UserSummary
		if err = rows.Scan(&groupID, &member.ID, &member.Name, &member.Email); err != nil {
			return fmt.Errorf("failed to scan group roster: %w", err)
		}
		g := byID[groupID]
		g.Members = append(g.Members, member)
		if member.ID == g.CreatorID {
			creator := member
			g.Creator = &creator
		}
	}
	return rows.Err()
}

func (r groupRepo) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	memberTbl := domain.GetGroupMemberTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(memberTbl.GroupID, memberTbl.UserID).
		Into(memberTbl.GetTableName()).
		Values(groupID, userID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return errs.AlreadyMember
		}
		r.logger.Error("Failed to add group member", "error", err)
		return fmt.Errorf("failed to add group member: %w", err)
	}
	return nil
}

func (r groupRepo) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	memberTbl := domain.GetGroupMemberTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Delete(memberTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", memberTbl.GroupID), groupID).
		And(fmt.Sprintf("%s = ?", memberTbl.UserID), userID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to remove group member", "error", err)
		return fmt.Errorf("failed to remove group member: %w", err)
	}
	return nil
}

func (r groupRepo) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	query := fmt.Sprintf(
		"SELECT COUNT(1) FROM %s.group_members WHERE group_id = $1 AND user_id = $2",
		r.schema,
	)
	var count int
	if err := r.db.GetContext(ctx, &count, query, groupID, userID); err != nil {
		r.logger.Error("Failed to check group membership", "error", err)
		return false, fmt.Errorf("failed to check group membership: %w", err)
	}
	return count > 0, nil
}

func (r groupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	groupTbl := domain.GetGroupTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Delete(groupTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", groupTbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return errs.GroupHasSubmissions
		}
		r.logger.Error("Failed to delete group", "error", err)
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}
