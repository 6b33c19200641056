package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/amsys-2025.net/internal/domain"
)

type GroupPort interface {
	// Create inserts the group and its creator membership in one
	// transaction; a group never exists without its creator on the roster.
	Create(ctx context.Context, group *domain.Group) error

	// Get returns the group with its creator and member summaries loaded,
	// or nil when absent.
	Get(ctx context.Context, id uuid.UUID) (*domain.Group, error)

	List(ctx context.Context) ([]*domain.Group, error)

	// ListByMember returns the groups userID belongs to, newest first.
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error)

	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
