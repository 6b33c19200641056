package auth

import (
	"context"
	"testing"
	"time"

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

type fakeUsers struct {
	m map[uuid.UUID]*domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{m: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUsers) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range f.m {
		if existing.Email == u.Email {
			return errs.UserExists
		}
	}
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

// plaintextTokenService keeps hashing and signing trivially reversible so
// the service logic stays observable.
type plaintextTokenService struct{}

func (plaintextTokenService) GenerateToken(ctx context.Context, p domain.Principal) (string, error) {
	return "token-" + p.UserID.String(), nil
}

func (plaintextTokenService) VerifyToken(ctx context.Context, token string) (domain.Principal, error) {
	return domain.Principal{}, errs.InvalidToken
}

func (plaintextTokenService) DecodeTokenExpiry(ctx context.Context, token string) (time.Time, error) {
	return time.Now().Add(time.Hour), nil
}

func (plaintextTokenService) EncryptPassword(ctx context.Context, password string) (string, error) {
	return "hash:" + password, nil
}

func (plaintextTokenService) VerifyPassword(ctx context.Context, passwordHash string, pwd string) (bool, error) {
	return passwordHash == "hash:"+pwd, nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	svc := NewLocalAuthService(users, plaintextTokenService{}, nopLogger{})

	input := RegisterInput{
		Name:     "Ada",
		Email:    "ada@uni.test",
		Password: "pwd12345",
		Role:     domain.RoleStudent,
	}
	user, err := svc.Register(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, user.Role)
	assert.Equal(t, string(domain.ProviderLocal), user.AuthProvider)
	require.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, input.Password, *user.PasswordHash)

	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, errs.UserExists)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	svc := NewLocalAuthService(users, plaintextTokenService{}, nopLogger{})

	registered, err := svc.Register(ctx, RegisterInput{
		Name:     "Ada",
		Email:    "ada@uni.test",
		Password: "pwd12345",
		Role:     domain.RoleStudent,
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "ada@uni.test", "pwd12345")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Login(ctx, "ada@uni.test", "wrong")
	assert.ErrorIs(t, err, errs.InvalidCredentials)

	_, err = svc.Login(ctx, "nobody@uni.test", "pwd12345")
	assert.ErrorIs(t, err, errs.UserNotFound)
}

func TestLoginGoogleOnlyAccount(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	svc := NewLocalAuthService(users, plaintextTokenService{}, nopLogger{})

	googleID := "g-123"
	require.NoError(t, users.Create(ctx, &domain.User{
		Name:         "Eve",
		Email:        "eve@uni.test",
		Role:         domain.RoleStudent,
		AuthProvider: string(domain.ProviderGoogle),
		GoogleID:     &googleID,
	}))

	// no password hash on record, local login is rejected
	_, err := svc.Login(ctx, "eve@uni.test", "anything")
	assert.ErrorIs(t, err, errs.InvalidCredentials)
}
