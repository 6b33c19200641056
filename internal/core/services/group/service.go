package group

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/amsys-2025.net/internal/domain"
)

type IGroupService interface {
	// Create makes a new group with the caller as creator and first member.
	Create(ctx context.Context, p domain.Principal, name string) (*domain.Group, error)

	List(ctx context.Context) ([]*domain.Group, error)
	ListMine(ctx context.Context, p domain.Principal) ([]*domain.Group, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Group, error)

	// AddMember adds the student with the given email; creator only.
	AddMember(ctx context.Context, p domain.Principal, groupID uuid.UUID, email string) (*domain.Group, error)

	// RemoveMember removes a member; creator only, and the creator
	// themselves can never be removed.
	RemoveMember(ctx context.Context, p domain.Principal, groupID, memberID uuid.UUID) error

	// Delete removes the group; creator only.
	Delete(ctx context.Context, p domain.Principal, groupID uuid.UUID) error
}
