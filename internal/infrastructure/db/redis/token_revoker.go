package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokePrefix = "revoked:"

// TokenRevoker records per-user session revocation cutoffs.
// Key format: revoked:<user_id> → unix seconds of the cutoff. A token whose
// issuance predates the cutoff is rejected by session resolution. Keys
// expire with the token validity window: once every token issued before the
// cutoff has expired on its own, the entry is useless.
type TokenRevoker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenRevoker creates a TokenRevoker. ttl should match the session
// token validity window.
func NewTokenRevoker(client *redis.Client, ttl time.Duration) *TokenRevoker {
	return &TokenRevoker{client: client, ttl: ttl}
}

// Revoke invalidates every token for userID issued before at.
func (r *TokenRevoker) Revoke(ctx context.Context, userID string, at time.Time) error {
	key := revokePrefix + userID
	if err := r.client.Set(ctx, key, at.Unix(), r.ttl).Err(); err != nil {
		return fmt.Errorf("record revocation: %w", err)
	}
	return nil
}

// RevokedAt returns the revocation cutoff for userID, or the zero time when
// no revocation is recorded.
func (r *TokenRevoker) RevokedAt(ctx context.Context, userID string) (time.Time, error) {
	val, err := r.client.Get(ctx, revokePrefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("revocation lookup: %w", err)
	}

	ts, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("revocation lookup: bad value %q", val)
	}
	return time.Unix(ts, 0).UTC(), nil
}
