package crypto

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"golang.org/x/crypto/bcrypt"

	"gitlab.com/amsys-2025.net/internal/config"
	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

var _ primary.TokenService = (*JWTServiceImpl)(nil)

type JWTServiceImpl struct {
	HMACSecretKey string
	TokenTTL      time.Duration
}

func NewJWTService(jwtConfig *config.JwtConfig) primary.TokenService {
	return &JWTServiceImpl{
		HMACSecretKey: jwtConfig.Secret,
		TokenTTL:      jwtConfig.TokenTTL,
	}
}

type principalClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (J JWTServiceImpl) GenerateToken(ctx context.Context, principal domain.Principal) (string, error) {
	now := time.Now()
	claims := principalClaims{
		Role: string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(J.TokenTTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(J.HMACSecretKey))
}

func (J JWTServiceImpl) VerifyToken(ctx context.Context, token string) (domain.Principal, error) {
	var claims principalClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(J.HMACSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return domain.Principal{}, errs.InvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Principal{}, errs.InvalidToken
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return domain.Principal{}, errs.InvalidToken
	}

	return domain.Principal{
		UserID:  userID,
		Role:    role,
		TokenID: claims.ID,
	}, nil
}

func (J JWTServiceImpl) DecodeTokenExpiry(ctx context.Context, token string) (time.Time, error) {
	var claims principalClaims
	// Signature is not checked here; the caller has already verified the
	// token through the middleware.
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return time.Time{}, errs.InvalidToken
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errs.InvalidToken
	}
	return claims.ExpiresAt.Time, nil
}

func (JWTServiceImpl) VerifyPassword(ctx context.Context, passwordHash string, pwd string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pwd))
	if err != nil {
		return false, err
	}
	return true, nil
}

func (J JWTServiceImpl) EncryptPassword(ctx context.Context, password string) (string, error) {
	pwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
