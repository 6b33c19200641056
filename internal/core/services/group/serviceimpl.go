package group

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/core/ports/secondary"
	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

var _ IGroupService = &GroupService{}

type GroupService struct {
	groupPort secondary.GroupPort
	userPort  secondary.UserPort
	logger    primary.Logger
}

func NewGroupService(
	groupPort secondary.GroupPort,
	userPort secondary.UserPort,
	logger primary.Logger,
) *GroupService {
	return &GroupService{
		groupPort: groupPort,
		userPort:  userPort,
		logger:    logger,
	}
}

func (s *GroupService) Create(ctx context.Context, p domain.Principal, name string) (*domain.Group, error) {
	group := &domain.Group{
		Name:      name,
		CreatorID: p.UserID,
	}
	if err := s.groupPort.Create(ctx, group); err != nil {
		return nil, err
	}
	// Reload to pick up the roster created in the same transaction.
	return s.groupPort.Get(ctx, group.ID)
}

func (s *GroupService) List(ctx context.Context) ([]*domain.Group, error) {
	return s.groupPort.List(ctx)
}

func (s *GroupService) ListMine(ctx context.Context, p domain.Principal) ([]*domain.Group, error) {
	return s.groupPort.ListByMember(ctx, p.UserID)
}

func (s *GroupService) Get(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	group, err := s.groupPort.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, errs.GroupNotFound
	}
	return group, nil
}

func (s *GroupService) AddMember(ctx context.Context, p domain.Principal, groupID uuid.UUID, email string) (*domain.Group, error) {
	group, err := s.createdGroup(ctx, p, groupID)
	if err != nil {
		return nil, err
	}

	user, err := s.userPort.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.UserNotFound
	}
	if user.Role != domain.RoleStudent {
		return nil, errs.StudentsOnly
	}
	if group.HasMember(user.ID) {
		return nil, errs.AlreadyMember
	}

	if err = s.groupPort.AddMember(ctx, groupID, user.ID); err != nil {
		return nil, err
	}
	return s.groupPort.Get(ctx, groupID)
}

func (s *GroupService) RemoveMember(ctx context.Context, p domain.Principal, groupID, memberID uuid.UUID) error {
	group, err := s.createdGroup(ctx, p, groupID)
	if err != nil {
		return err
	}
	// A group always contains its creator.
	if memberID == group.CreatorID {
		return errs.CannotRemoveCreator
	}
	return s.groupPort.RemoveMember(ctx, groupID, memberID)
}

func (s *GroupService) Delete(ctx context.Context, p domain.Principal, groupID uuid.UUID) error {
	if _, err := s.createdGroup(ctx, p, groupID); err != nil {
		return err
	}
	return s.groupPort.Delete(ctx, groupID)
}

// createdGroup resolves the group and verifies the caller is its creator.
func (s *GroupService) createdGroup(ctx context.Context, p domain.Principal, groupID uuid.UUID) (*domain.Group, error) {
	group, err := s.groupPort.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, errs.GroupNotFound
	}
	if group.CreatorID != p.UserID {
		return nil, errs.NotGroupCreator
	}
	return group, nil
}
