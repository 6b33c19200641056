package analytics

import (
	"context"

	"gitlab.com/amsys-2025.net/internal/domain"
)

type IAnalyticsService interface {
	// ComputeForProfessor rolls up the professor's assignments and their
	// submissions into a point-in-time snapshot.
	ComputeForProfessor(ctx context.Context, p domain.Principal) (*domain.AssignmentAnalytics, error)
}
