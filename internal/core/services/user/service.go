package user

import (
	"context"

	"gitlab.com/amsys-2025.net/internal/domain"
)

type IUserService interface {
	// Me returns the caller's own profile.
	Me(ctx context.Context, p domain.Principal) (*domain.User, error)

	// ListStudents returns every student, ordered by name.
	ListStudents(ctx context.Context) ([]*domain.User, error)
}
