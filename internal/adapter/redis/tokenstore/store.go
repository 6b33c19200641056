package tokenstore

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/core/ports/secondary"
)

const revokedKeyPrefix = "token:revoked:"

var _ secondary.TokenStorePort = (*TokenStore)(nil)

// TokenStore keeps revoked token ids in Redis until the token's own
// expiry, after which the key lapses on its own.
type TokenStore struct {
	redisClient *redis.Client
	logger      primary.Logger
}

func NewTokenStore(redisClient *redis.Client, logger primary.Logger) *TokenStore {
	return &TokenStore{
		redisClient: redisClient,
		logger:      logger,
	}
}

func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to deny.
		return nil
	}
	key := revokedKeyPrefix + tokenID
	if err := s.redisClient.Set(ctx, key, 1, ttl).Err(); err != nil {
		s.logger.Error("Failed to revoke token", "error", err)
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := revokedKeyPrefix + tokenID
	n, err := s.redisClient.Exists(ctx, key).Result()
	if err != nil {
		s.logger.Error("Failed to check token revocation", "error", err)
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
