package analytics

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/core/ports/secondary"
	"gitlab.com/amsys-2025.net/internal/core/services/authz"
	"gitlab.com/amsys-2025.net/internal/domain"
)

var _ IAnalyticsService = &AnalyticsService{}

type AnalyticsService struct {
	assignmentPort secondary.AssignmentPort
	submissionPort secondary.SubmissionPort
	logger         primary.Logger
}

func NewAnalyticsService(
	assignmentPort secondary.AssignmentPort,
	submissionPort secondary.SubmissionPort,
	logger primary.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		assignmentPort: assignmentPort,
		submissionPort: submissionPort,
		logger:         logger,
	}
}

func (s *AnalyticsService) ComputeForProfessor(ctx context.Context, p domain.Principal) (*domain.AssignmentAnalytics, error) {
	if err := authz.RequireRole(p, domain.RoleProfessor); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentPort.ListByCreator(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ID)
	}

	submissions, err := s.submissionPort.ListByAssignments(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := &domain.AssignmentAnalytics{
		TotalAssignments: len(assignments),
		TotalSubmissions: len(submissions),
	}
	for _, sub := range submissions {
		if sub.Confirmed {
			result.ConfirmedSubmissions++
		}
		if sub.GroupID != nil {
			result.GroupSubmissions++
		}
	}
	result.PendingSubmissions = result.TotalSubmissions - result.ConfirmedSubmissions
	result.IndividualSubmissions = result.TotalSubmissions - result.GroupSubmissions
	// Rate is defined as 0 when there are no submissions at all.
	if result.TotalSubmissions > 0 {
		result.PercentageConfirmed = float64(result.ConfirmedSubmissions) / float64(result.TotalSubmissions) * 100
	}
	return result, nil
}
