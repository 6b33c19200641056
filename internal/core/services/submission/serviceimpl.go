package submission

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/core/ports/secondary"
	"gitlab.com/amsys-2025.net/internal/core/services/authz"
	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

var _ ISubmissionService = &SubmissionService{}

type SubmissionService struct {
	submissionPort secondary.SubmissionPort
	assignmentPort secondary.AssignmentPort
	groupPort      secondary.GroupPort
	logger         primary.Logger
}

func NewSubmissionService(
	submissionPort secondary.SubmissionPort,
	assignmentPort secondary.AssignmentPort,
	groupPort secondary.GroupPort,
	logger primary.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissionPort: submissionPort,
		assignmentPort: assignmentPort,
		groupPort:      groupPort,
		logger:         logger,
	}
}

func (s *SubmissionService) Submit(ctx context.Context, p domain.Principal, assignmentID uuid.UUID, groupID *uuid.UUID) (*domain.Submission, error) {
	assignment, err := s.assignmentPort.Get(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, errs.AssignmentNotFound
	}

	subject, err := s.resolveSubject(ctx, p, groupID)
	if err != nil {
		return nil, err
	}

	// Pre-check for a friendly conflict message; the partial unique
	// indexes remain the authority when two submits race.
	existing, err := s.submissionPort.GetBySubject(ctx, assignmentID, subject)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.AlreadySubmitted
	}

	created := &domain.Submission{
		AssignmentID: assignmentID,
		GroupID:      subject.GroupID(),
		SubmitterID:  p.UserID,
		Confirmed:    false,
	}
	if err = s.submissionPort.Create(ctx, created); err != nil {
		return nil, err
	}
	s.logger.Info("Submission created",
		"submissionId", created.ID, "assignmentId", assignmentID, "group", subject.IsGroup())
	return created, nil
}

// resolveSubject turns the optional group id into a submission subject,
// verifying group existence and the caller's membership for the group
// branch.
func (s *SubmissionService) resolveSubject(ctx context.Context, p domain.Principal, groupID *uuid.UUID) (domain.SubmissionSubject, error) {
	if groupID == nil {
		return domain.IndividualSubject(p.UserID), nil
	}

	group, err := s.groupPort.Get(ctx, *groupID)
	if err != nil {
		return domain.SubmissionSubject{}, err
	}
	if group == nil {
		return domain.SubmissionSubject{}, errs.GroupNotFound
	}
	if !group.HasMember(p.UserID) {
		return domain.SubmissionSubject{}, errs.NotGroupMember
	}
	return domain.GroupSubject(*groupID, p.UserID), nil
}

func (s *SubmissionService) Confirm(ctx context.Context, p domain.Principal, submissionID uuid.UUID) (*domain.Submission, error) {
	submission, err := s.submissionPort.Get(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, errs.SubmissionNotFound
	}

	// Confirmation authority: a member of the submitting group, or the
	// submitter for an individual submission.
	if submission.GroupID != nil {
		isMember, err := s.groupPort.IsMember(ctx, *submission.GroupID, p.UserID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, errs.NotGroupMember
		}
	} else if submission.SubmitterID != p.UserID {
		return nil, errs.NotResourceOwner
	}

	if submission.Confirmed {
		return nil, errs.AlreadyConfirmed
	}

	confirmed, err := s.submissionPort.Confirm(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		// Lost a race with another confirmer; the transition is one-way.
		return nil, errs.AlreadyConfirmed
	}

	submission.Confirmed = true
	s.logger.Info("Submission confirmed", "submissionId", submissionID, "userId", p.UserID)
	return submission, nil
}

func (s *SubmissionService) List(ctx context.Context, p domain.Principal) ([]*domain.Submission, error) {
	if err := authz.RequireRole(p, domain.RoleProfessor); err != nil {
		return nil, err
	}
	return s.submissionPort.List(ctx)
}

func (s *SubmissionService) ListForAssignment(ctx context.Context, p domain.Principal, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	if err := authz.RequireRole(p, domain.RoleProfessor); err != nil {
		return nil, err
	}
	assignment, err := s.assignmentPort.Get(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, errs.AssignmentNotFound
	}
	if err = authz.RequireOwner(p, assignment.CreatorID); err != nil {
		return nil, err
	}
	return s.submissionPort.ListByAssignment(ctx, assignmentID)
}

func (s *SubmissionService) ListMine(ctx context.Context, p domain.Principal) ([]*domain.Submission, error) {
	return s.submissionPort.ListVisibleTo(ctx, p.UserID)
}
