package memory

import (
	"context"
	"time"

	"photostudio-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// TokenBlacklist keeps revoked token ids in process memory. Entries expire
// with the token they revoke and a janitor sweeps them every ten minutes.
type TokenBlacklist struct {
	cache *cache.Cache
}

func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{
		cache: cache.New(24*time.Hour, 10*time.Minute),
	}
}

var _ contract.TokenBlacklist = (*TokenBlacklist)(nil)

func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.cache.Set(tokenID, struct{}{}, ttl)
	return nil
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, found := b.cache.Get(tokenID)
	return found, nil
}
