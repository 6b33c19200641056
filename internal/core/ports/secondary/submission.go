package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/amsys-2025.net/internal/domain"
)

type SubmissionPort interface {
	// Create inserts the submission. The store enforces the per-subject
	// uniqueness with partial unique indexes; a duplicate insert returns
	// errs.AlreadySubmitted even when two requests race past the
	// application-level pre-check.
	Create(ctx context.Context, submission *domain.Submission) error

	Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error)

	// GetBySubject returns the existing submission for the subject on the
	// assignment, or nil.
	GetBySubject(ctx context.Context, assignmentID uuid.UUID, subject domain.SubmissionSubject) (*domain.Submission, error)

	// Confirm flips confirmed false→true. Returns false when the row was
	// already confirmed, so the transition stays one-way under races.
	Confirm(ctx context.Context, id uuid.UUID) (bool, error)

	List(ctx context.Context) ([]*domain.Submission, error)
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error)
	ListByAssignments(ctx context.Context, assignmentIDs []uuid.UUID) ([]*domain.Submission, error)

	// ListVisibleTo returns the caller's individual submissions plus the
	// submissions of every group the caller belongs to, newest first.
	ListVisibleTo(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error)

	// ExistsForUser reports whether userID has any submission on the
	// assignment, individually or through a group membership. Backs the
	// isSubmitted flag on assignment reads.
	ExistsForUser(ctx context.Context, assignmentID, userID uuid.UUID) (bool, error)
}
