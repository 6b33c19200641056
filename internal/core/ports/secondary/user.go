package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/amsys-2025.net/internal/domain"
)

type UserPort interface {
	Create(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)

	// ListByRole returns users of the given role ordered by name.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}
