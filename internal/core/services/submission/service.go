package submission

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/amsys-2025.net/internal/domain"
)

// ISubmissionService is the submission workflow: a submission is created
// unconfirmed for either a group or the individual caller, then confirmed
// exactly once by a member of the submitting party.
type ISubmissionService interface {
	// Submit creates an unconfirmed submission for the assignment. With a
	// group id the caller must be a member of that group and the group must
	// not have submitted yet; without one, the caller must not have an
	// individual submission for the assignment yet.
	Submit(ctx context.Context, p domain.Principal, assignmentID uuid.UUID, groupID *uuid.UUID) (*domain.Submission, error)

	// Confirm marks a submission confirmed. Only a member of the submitting
	// group (or the individual submitter) may confirm, and only once.
	Confirm(ctx context.Context, p domain.Principal, submissionID uuid.UUID) (*domain.Submission, error)

	// List returns every submission; professors only.
	List(ctx context.Context, p domain.Principal) ([]*domain.Submission, error)

	// ListForAssignment returns an assignment's submissions; restricted to
	// the assignment's creator.
	ListForAssignment(ctx context.Context, p domain.Principal, assignmentID uuid.UUID) ([]*domain.Submission, error)

	// ListMine returns the caller's individual submissions plus those of
	// the caller's groups.
	ListMine(ctx context.Context, p domain.Principal) ([]*domain.Submission, error)
}
