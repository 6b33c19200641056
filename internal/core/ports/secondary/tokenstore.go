package secondary

import (
	"context"
	"time"
)

// TokenStorePort tracks revoked token ids until their natural expiry.
type TokenStorePort interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
