package userrepository

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

var _ secondary.UserPort = &userRepo{}

type userRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.UserPort {
	return &userRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (u userRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	userTbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Insert(
			userTbl.ID, userTbl.Name, userTbl.Email, userTbl.PasswordHash,
			userTbl.Role, userTbl.AuthProvider, userTbl.GoogleID, userTbl.CreatedAt,
		).
		Into(userTbl.GetTableName()).
		Values(
			user.ID, user.Name, user.Email, user.PasswordHash,
			user.Role, user.AuthProvider, user.GoogleID, user.CreatedAt,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := u.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return errs.UserExists
		}
		u.logger.Error("Failed to create user", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (u userRepo) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	userTbl := domain.GetUserTable()
	return u.getWhere(ctx, fmt.Sprintf("%s = ?", userTbl.ID), id)
}

func (u userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	userTbl := domain.GetUserTable()
	return u.getWhere(ctx, fmt.Sprintf("%s = ?", userTbl.Email), email)
}

func (u userRepo) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	userTbl := domain.GetUserTable()
	return u.getWhere(ctx, fmt.Sprintf("%s = ?", userTbl.GoogleID), googleID)
}

func (u userRepo) getWhere(ctx context.Context, clause string, arg interface{}) (*domain.User, error) {
	userTbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Select(
			userTbl.ID, userTbl.Name, userTbl.Email, userTbl.PasswordHash,
			userTbl.Role, userTbl.AuthProvider, userTbl.GoogleID, userTbl.CreatedAt,
		).
		From(userTbl.GetTableName()).
		Where(clause, arg).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var user domain.User
	err := u.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		u.logger.Error("Failed to get user", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (u userRepo) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	userTbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Select(
			userTbl.ID, userTbl.Name, userTbl.Email, userTbl.PasswordHash,
			userTbl.Role, userTbl.AuthProvider, userTbl.GoogleID, userTbl.CreatedAt,
		).
		From(userTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", userTbl.Role), role).
		OrderBy(userTbl.Name, true).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	users := make([]*domain.User, 0)
	if err := u.db.SelectContext(ctx, &users, query, args...); err != nil {
		u.logger.Error("Failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
