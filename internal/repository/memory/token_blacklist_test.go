package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	b := NewTokenBlacklist()

	revoked, err := b.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, b.Revoke(ctx, "jti-1", time.Hour))
	revoked, _ = b.IsRevoked(ctx, "jti-1")
	assert.True(t, revoked)

	revoked, _ = b.IsRevoked(ctx, "jti-2")
	assert.False(t, revoked)
}

func TestTokenBlacklistExpires(t *testing.T) {
	ctx := context.Background()
	b := NewTokenBlacklist()

	require.NoError(t, b.Revoke(ctx, "short", 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	revoked, _ := b.IsRevoked(ctx, "short")
	assert.False(t, revoked, "expired entries are dropped on read")
}

func TestTokenBlacklistIgnoresExpiredTokens(t *testing.T) {
	ctx := context.Background()
	b := NewTokenBlacklist()

	require.NoError(t, b.Revoke(ctx, "stale", -time.Second))
	revoked, _ := b.IsRevoked(ctx, "stale")
	assert.False(t, revoked)
}
