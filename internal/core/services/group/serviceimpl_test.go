package group

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

type fakeGroups struct {
	m         map[uuid.UUID]*domain.Group
	deleteErr error
}

func newFakeGroups() *fakeGroups {
	return &fakeGroups{m: make(map[uuid.UUID]*domain.Group)}
}

func (f *fakeGroups) Create(ctx context.Context, g *domain.Group) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	g.Members = append(g.Members, domain.UserSummary{ID: g.CreatorID})
	f.m[g.ID] = g
	return nil
}

func (f *fakeGroups) Get(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	return f.m[id], nil
}

func (f *fakeGroups) List(ctx context.Context) ([]*domain.Group, error) {
	out := make([]*domain.Group, 0, len(f.m))
	for _, g := range f.m {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeGroups) ListByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	var out []*domain.Group
	for _, g := range f.m {
		if g.HasMember(userID) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGroups) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	g := f.m[groupID]
	if g.HasMember(userID) {
		return errs.AlreadyMember
	}
	g.Members = append(g.Members, domain.UserSummary{ID: userID})
	return nil
}

func (f *fakeGroups) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	g := f.m[groupID]
	members := g.Members[:0]
	for _, m := range g.Members {
		if m.ID != userID {
			members = append(members, m)
		}
	}
	g.Members = members
	return nil
}

func (f *fakeGroups) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	g := f.m[groupID]
	if g == nil {
		return false, nil
	}
	return g.HasMember(userID), nil
}

func (f *fakeGroups) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.m, id)
	return nil
}

type fakeUsers struct {
	m map[uuid.UUID]*domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{m: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUsers) Create(ctx context.Context, u *domain.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.m[u.ID] = u
	return nil
}

func (f *fakeUsers) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return f.m[id], nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.m {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	for _, u := range f.m {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.m {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func newTestService(t *testing.T) (*GroupService, *fakeGroups, *fakeUsers) {
	t.Helper()
	groups := newFakeGroups()
	users := newFakeUsers()
	return NewGroupService(groups, users, nopLogger{}), groups, users
}

func TestCreateGroup(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	creator := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}

	group, err := svc.Create(ctx, creator, "Team A")
	require.NoError(t, err)
	assert.Equal(t, "Team A", group.Name)
	assert.Equal(t, creator.UserID, group.CreatorID)
	// the creator joins their own group atomically
	assert.True(t, group.HasMember(creator.UserID))
}

func TestAddMember(t *testing.T) {
	ctx := context.Background()
	svc, _, users := newTestService(t)
	creator := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}

	student := &domain.User{Email: "s@uni.test", Role: domain.RoleStudent}
	require.NoError(t, users.Create(ctx, student))
	professor := &domain.User{Email: "p@uni.test", Role: domain.RoleProfessor}
	require.NoError(t, users.Create(ctx, professor))

	group, err := svc.Create(ctx, creator, "Team A")
	require.NoError(t, err)

	updated, err := svc.AddMember(ctx, creator, group.ID, student.Email)
	require.NoError(t, err)
	assert.True(t, updated.HasMember(student.ID))

	tests := []struct {
		name    string
		p       domain.Principal
		email   string
		wantErr error
	}{
		{name: "only the creator adds members", p: domain.Principal{UserID: student.ID}, email: student.Email, wantErr: errs.NotGroupCreator},
		{name: "unknown email", p: creator, email: "nobody@uni.test", wantErr: errs.UserNotFound},
		{name: "professors cannot join groups", p: creator, email: professor.Email, wantErr: errs.StudentsOnly},
		{name: "already on the roster", p: creator, email: student.Email, wantErr: errs.AlreadyMember},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddMember(ctx, tt.p, group.ID, tt.email)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()
	svc, groups, users := newTestService(t)
	creator := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}

	student := &domain.User{Email: "s@uni.test", Role: domain.RoleStudent}
	require.NoError(t, users.Create(ctx, student))

	group, err := svc.Create(ctx, creator, "Team A")
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, creator, group.ID, student.Email)
	require.NoError(t, err)

	// the creator membership is not removable
	err = svc.RemoveMember(ctx, creator, group.ID, creator.UserID)
	assert.ErrorIs(t, err, errs.CannotRemoveCreator)

	require.NoError(t, svc.RemoveMember(ctx, creator, group.ID, student.ID))
	current, err := groups.Get(ctx, group.ID)
	require.NoError(t, err)
	assert.False(t, current.HasMember(student.ID))
}

func TestDeleteGroup(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	creator := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}
	other := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}

	group, err := svc.Create(ctx, creator, "Team A")
	require.NoError(t, err)

	err = svc.Delete(ctx, other, group.ID)
	assert.ErrorIs(t, err, errs.NotGroupCreator)

	require.NoError(t, svc.Delete(ctx, creator, group.ID))
	_, err = svc.Get(ctx, group.ID)
	assert.ErrorIs(t, err, errs.GroupNotFound)
}

func TestDeleteGroupWithSubmissions(t *testing.T) {
	ctx := context.Background()
	svc, groups, _ := newTestService(t)
	creator := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}

	group, err := svc.Create(ctx, creator, "Team A")
	require.NoError(t, err)

	// the repository refuses to orphan submissions; the conflict must
	// surface to the caller instead of an opaque failure
	groups.deleteErr = errs.GroupHasSubmissions
	err = svc.Delete(ctx, creator, group.ID)
	assert.ErrorIs(t, err, errs.GroupHasSubmissions)
}
