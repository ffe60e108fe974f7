package redisstore

import (
	"context"
	"errors"
	"time"

	"photostudio-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "auth:revoked:"

// TokenBlacklist shares revoked token ids between instances through Redis.
// Keys carry the remaining token lifetime as their TTL.
type TokenBlacklist struct {
	rdb *redis.Client
}

func NewTokenBlacklist(rdb *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{rdb: rdb}
}

var _ contract.TokenBlacklist = (*TokenBlacklist)(nil)

func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.rdb.Set(ctx, keyPrefix+tokenID, 1, ttl).Err()
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := b.rdb.Get(ctx, keyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
