package assignment

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/core/ports/secondary"
	"gitlab.com/amsys-2025.net/internal/core/services/authz"
	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

var _ IAssignmentService = &AssignmentService{}

type AssignmentService struct {
	assignmentPort secondary.AssignmentPort
	submissionPort secondary.SubmissionPort
	logger         primary.Logger
}

func NewAssignmentService(
	assignmentPort secondary.AssignmentPort,
	submissionPort secondary.SubmissionPort,
	logger primary.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentPort: assignmentPort,
		submissionPort: submissionPort,
		logger:         logger,
	}
}

func (s *AssignmentService) Create(ctx context.Context, p domain.Principal, input CreateInput) (*domain.Assignment, error) {
	if err := authz.RequireRole(p, domain.RoleProfessor); err != nil {
		return nil, err
	}

	assignment := &domain.Assignment{
		Title:        input.Title,
		Description:  input.Description,
		DueDate:      input.DueDate,
		ResourceLink: input.ResourceLink,
		CreatorID:    p.UserID,
	}
	if err := s.assignmentPort.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) List(ctx context.Context, p domain.Principal) ([]*domain.Assignment, error) {
	assignments, err := s.assignmentPort.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		submitted, err := s.submissionPort.ExistsForUser(ctx, a.ID, p.UserID)
		if err != nil {
			return nil, err
		}
		a.IsSubmitted = submitted
	}
	return assignments, nil
}

func (s *AssignmentService) ListMine(ctx context.Context, p domain.Principal) ([]*domain.Assignment, error) {
	if err := authz.RequireRole(p, domain.RoleProfessor); err != nil {
		return nil, err
	}
	return s.assignmentPort.ListByCreator(ctx, p.UserID)
}

func (s *AssignmentService) Get(ctx context.Context, p domain.Principal, id uuid.UUID) (*domain.Assignment, error) {
	assignment, err := s.assignmentPort.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, errs.AssignmentNotFound
	}

	submitted, err := s.submissionPort.ExistsForUser(ctx, id, p.UserID)
	if err != nil {
		return nil, err
	}
	assignment.IsSubmitted = submitted
	return assignment, nil
}

func (s *AssignmentService) Update(ctx context.Context, p domain.Principal, id uuid.UUID, patch domain.AssignmentPatch) (*domain.Assignment, error) {
	assignment, err := s.ownedAssignment(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return assignment, nil
	}
	return s.assignmentPort.Update(ctx, id, patch)
}

func (s *AssignmentService) Delete(ctx context.Context, p domain.Principal, id uuid.UUID) error {
	if _, err := s.ownedAssignment(ctx, p, id); err != nil {
		return err
	}
	return s.assignmentPort.Delete(ctx, id)
}

// ownedAssignment resolves the assignment and checks role then ownership,
// in that order.
func (s *AssignmentService) ownedAssignment(ctx context.Context, p domain.Principal, id uuid.UUID) (*domain.Assignment, error) {
	if err := authz.RequireRole(p, domain.RoleProfessor); err != nil {
		return nil, err
	}
	assignment, err := s.assignmentPort.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, errs.AssignmentNotFound
	}
	if err = authz.RequireOwner(p, assignment.CreatorID); err != nil {
		return nil, err
	}
	return assignment, nil
}
