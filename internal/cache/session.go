package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/billmate/billmate/internal/model"
)

// sessionKeyPrefix namespaces session mirror entries.
const sessionKeyPrefix = "session:"

func sessionKey(tokenID string) string {
	return sessionKeyPrefix + tokenID
}

// SetSession mirrors a session snapshot keyed by token ID. The mirror is
// the revocation authority: while it exists the token is live.
func (c *Cache) SetSession(ctx context.Context, session *model.Session, ttl time.Duration) error {
	cached := session.ToCachedSession()

	key := sessionKey(session.TokenID)
	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, cached)
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mirror session: %w", err)
	}

	return nil
}

// GetSession restores a mirrored session by token ID.
// Returns (nil, nil) on a miss so callers can fall back to the database.
func (c *Cache) GetSession(ctx context.Context, tokenID string) (*model.Session, error) {
	var cached model.CachedSession
	err := c.client.HGetAll(ctx, sessionKey(tokenID)).Scan(&cached)
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session mirror: %w", err)
	}

	// HGetAll returns an empty map (not redis.Nil) for missing keys.
	if cached.UserID == "" {
		return nil, nil
	}

	return cached.ToSession(tokenID), nil
}

// DeleteSession revokes a mirrored session. Idempotent: deleting an absent
// mirror is not an error, so logout when already logged out is a no-op.
func (c *Cache) DeleteSession(ctx context.Context, tokenID string) error {
	if err := c.client.Del(ctx, sessionKey(tokenID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session mirror: %w", err)
	}
	return nil
}

// SessionRevoked reports whether a revocation tombstone exists for the token.
// Tombstones distinguish "mirror expired, reconcile from DB" from
// "explicitly logged out".
func (c *Cache) SessionRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := c.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return n > 0, nil
}

// RevokeSession writes a revocation tombstone that outlives the mirror.
func (c *Cache) RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := c.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func revokedKey(tokenID string) string {
	return "session:revoked:" + tokenID
}
