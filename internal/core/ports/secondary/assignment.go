package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/amsys-2025.net/internal/domain"
)

type AssignmentPort interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Assignment, error)

	// List returns all assignments, newest first.
	List(ctx context.Context) ([]*domain.Assignment, error)

	// ListByCreator returns a professor's assignments, newest first.
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Assignment, error)

	Update(ctx context.Context, id uuid.UUID, patch domain.AssignmentPatch) (*domain.Assignment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
