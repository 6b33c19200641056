package handlers

import (
	"context"
	"net/http"
	"strings"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/core/ports/secondary"
	"gitlab.com/amsys-2025.net/internal/core/services/authz"
	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/handlers/response"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

type contextKey int

const (
	principalKey contextKey = iota
	bearerTokenKey
)

type MiddlewareProvider struct {
	tokenService primary.TokenService
	tokenStore   secondary.TokenStorePort
	logger       primary.Logger
}

func NewMiddlewareProvider(
	tokenService primary.TokenService,
	tokenStore secondary.TokenStorePort,
	logger primary.Logger,
) *MiddlewareProvider {
	return &MiddlewareProvider{
		tokenService: tokenService,
		tokenStore:   tokenStore,
		logger:       logger,
	}
}

// Authenticate verifies the bearer token, rejects revoked tokens, and
// stores the principal on the request context.
func (m *MiddlewareProvider) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.WriteError(w, errs.TokenMissing)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		principal, err := m.tokenService.VerifyToken(r.Context(), tokenString)
		if err != nil {
			response.WriteError(w, errs.InvalidToken)
			return
		}

		revoked, err := m.tokenStore.IsRevoked(r.Context(), principal.TokenID)
		if err != nil {
			m.logger.Error("Failed to check token revocation", "error", err)
			response.WriteError(w, errs.InternalError)
			return
		}
		if revoked {
			response.WriteError(w, errs.TokenRevoked)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		ctx = context.WithValue(ctx, bearerTokenKey, tokenString)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireProfessor rejects non-professor principals before the handler
// runs, so role failures short-circuit ahead of any resource lookup.
func (m *MiddlewareProvider) RequireProfessor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFrom(r.Context())
		if !ok {
			response.WriteError(w, errs.TokenMissing)
			return
		}
		if err := authz.RequireRole(principal, domain.RoleProfessor); err != nil {
			response.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PrincipalFrom returns the authenticated principal stored by Authenticate.
func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	return principal, ok
}

// BearerTokenFrom returns the raw token stored by Authenticate.
func BearerTokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerTokenKey).(string)
	return token, ok
}
