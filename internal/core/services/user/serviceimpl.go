package user

import (
	"context"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/core/ports/secondary"
	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

var _ IUserService = &UserService{}

type UserService struct {
	userPort secondary.UserPort
	logger   primary.Logger
}

func NewUserService(userPort secondary.UserPort, logger primary.Logger) *UserService {
	return &UserService{
		userPort: userPort,
		logger:   logger,
	}
}

func (s *UserService) Me(ctx context.Context, p domain.Principal) (*domain.User, error) {
	user, err := s.userPort.Get(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.UserNotFound
	}
	return user, nil
}

func (s *UserService) ListStudents(ctx context.Context) ([]*domain.User, error) {
	return s.userPort.ListByRole(ctx, domain.RoleStudent)
}
