package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
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

// staticTokenService accepts exactly one token string.
type staticTokenService struct {
	token     string
	principal domain.Principal
}

func (s staticTokenService) GenerateToken(ctx context.Context, p domain.Principal) (string, error) {
	return s.token, nil
}

func (s staticTokenService) VerifyToken(ctx context.Context, token string) (domain.Principal, error) {
	if token != s.token {
		return domain.Principal{}, errs.InvalidToken
	}
	return s.principal, nil
}

func (s staticTokenService) DecodeTokenExpiry(ctx context.Context, token string) (time.Time, error) {
	return time.Now().Add(time.Hour), nil
}

func (s staticTokenService) EncryptPassword(ctx context.Context, password string) (string, error) {
	return password, nil
}

func (s staticTokenService) VerifyPassword(ctx context.Context, passwordHash string, pwd string) (bool, error) {
	return passwordHash == pwd, nil
}

type memoryTokenStore struct {
	revoked map[string]bool
}

func (m *memoryTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	m.revoked[tokenID] = true
	return nil
}

func (m *memoryTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return m.revoked[tokenID], nil
}

func TestAuthenticate(t *testing.T) {
	principal := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent, TokenID: "jti-1"}
	tokens := staticTokenService{token: "good-token", principal: principal}
	store := &memoryTokenStore{revoked: make(map[string]bool)}
	mw := NewMiddlewareProvider(tokens, store, nopLogger{})

	var seen domain.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		require.True(t, ok)
		seen = p
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.Authenticate(next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer forged")
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, principal, seen)
	})

	t.Run("revoked token", func(t *testing.T) {
		require.NoError(t, store.Revoke(context.Background(), principal.TokenID, time.Hour))
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireProfessor(t *testing.T) {
	store := &memoryTokenStore{revoked: make(map[string]bool)}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	run := func(role domain.Role) *httptest.ResponseRecorder {
		principal := domain.Principal{UserID: uuid.New(), Role: role, TokenID: "jti"}
		mw := NewMiddlewareProvider(staticTokenService{token: "tok", principal: principal}, store, nopLogger{})
		handler := mw.Authenticate(mw.RequireProfessor(next))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, run(domain.RoleProfessor).Code)
	assert.Equal(t, http.StatusForbidden, run(domain.RoleStudent).Code)
}
