package primary

import (
	"context"
	"time"

	"gitlab.com/amsys-2025.net/internal/domain"
)

// TokenService issues and verifies bearer tokens and handles credential
// hashing. The signing key is injected via config, never read ambiently.
type TokenService interface {
	GenerateToken(ctx context.Context, principal domain.Principal) (string, error)
	VerifyToken(ctx context.Context, token string) (domain.Principal, error)

	// DecodeTokenExpiry returns the expiry of a token without verifying
	// the signature. Used when revoking a token to bound the denylist TTL.
	DecodeTokenExpiry(ctx context.Context, token string) (time.Time, error)

	EncryptPassword(ctx context.Context, password string) (string, error)
	VerifyPassword(ctx context.Context, passwordHash string, pwd string) (bool, error)
}
