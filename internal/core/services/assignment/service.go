package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.com/amsys-2025.net/internal/domain"
)

type CreateInput struct {
	Title        string
	Description  string
	DueDate      time.Time
	ResourceLink string
}

type IAssignmentService interface {
	// Create registers a new assignment owned by the professor principal.
	Create(ctx context.Context, p domain.Principal, input CreateInput) (*domain.Assignment, error)

	// List returns every assignment with the caller's isSubmitted flag set.
	List(ctx context.Context, p domain.Principal) ([]*domain.Assignment, error)

	// ListMine returns the professor's own assignments.
	ListMine(ctx context.Context, p domain.Principal) ([]*domain.Assignment, error)

	// Get returns one assignment with the caller's isSubmitted flag set.
	Get(ctx context.Context, p domain.Principal, id uuid.UUID) (*domain.Assignment, error)

	// Update patches an assignment; only its creator may do so.
	Update(ctx context.Context, p domain.Principal, id uuid.UUID, patch domain.AssignmentPatch) (*domain.Assignment, error)

	// Delete removes an assignment; only its creator may do so.
	Delete(ctx context.Context, p domain.Principal, id uuid.UUID) error
}
