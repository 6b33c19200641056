package crypto

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"gitlab.com/amsys-2025.net/internal/config"
	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

func newTestService(ttl time.Duration) *JWTServiceImpl {
	svc := NewJWTService(&config.JwtConfig{Secret: "test-secret", TokenTTL: ttl})
	return svc.(*JWTServiceImpl)
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Hour)

	principal := domain.Principal{UserID: uuid.New(), Role: domain.RoleProfessor}
	token, err := svc.GenerateToken(ctx, principal)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	got, err := svc.VerifyToken(ctx, token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if got.UserID != principal.UserID {
		t.Errorf("UserID = %v, want %v", got.UserID, principal.UserID)
	}
	if got.Role != principal.Role {
		t.Errorf("Role = %v, want %v", got.Role, principal.Role)
	}
	if got.TokenID == "" {
		t.Error("TokenID is empty, want a jti")
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Hour)
	principal := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}

	valid, err := svc.GenerateToken(ctx, principal)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	otherKey := newTestService(time.Hour)
	otherKey.HMACSecretKey = "another-secret"
	foreign, err := otherKey.GenerateToken(ctx, principal)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	expiredSvc := newTestService(-time.Minute)
	expired, err := expiredSvc.GenerateToken(ctx, principal)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "wrong signing key", token: foreign},
		{name: "expired", token: expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.VerifyToken(ctx, tt.token); err != errs.InvalidToken {
				t.Errorf("VerifyToken() error = %v, want %v", err, errs.InvalidToken)
			}
		})
	}

	if _, err := svc.VerifyToken(ctx, valid); err != nil {
		t.Errorf("VerifyToken() valid token error = %v", err)
	}
}

func TestDecodeTokenExpiry(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Hour)

	token, err := svc.GenerateToken(ctx, domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	expiry, err := svc.DecodeTokenExpiry(ctx, token)
	if err != nil {
		t.Fatalf("DecodeTokenExpiry() error = %v", err)
	}
	until := time.Until(expiry)
	if until <= 55*time.Minute || until > time.Hour {
		t.Errorf("expiry %v away, want about an hour", until)
	}
}

func TestPasswordHashing(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Hour)

	hash, err := svc.EncryptPassword(ctx, "s3cret-pwd")
	if err != nil {
		t.Fatalf("EncryptPassword() error = %v", err)
	}
	if hash == "s3cret-pwd" {
		t.Fatal("password stored in clear")
	}

	ok, err := svc.VerifyPassword(ctx, hash, "s3cret-pwd")
	if err != nil || !ok {
		t.Errorf("VerifyPassword() = %v, %v, want match", ok, err)
	}
	if ok, _ := svc.VerifyPassword(ctx, hash, "wrong"); ok {
		t.Error("VerifyPassword() matched a wrong password")
	}
}
