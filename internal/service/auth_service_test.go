package service

import (
	"context"
	"testing"
	"time"

	"photostudio-be/internal/config"
	"photostudio-be/internal/dto"
	"photostudio-be/internal/entity"
	"photostudio-be/internal/pkg/apperror"
	"photostudio-be/internal/pkg/logger"
	"photostudio-be/internal/pkg/serverutils"
	"photostudio-be/internal/repository/memory"
	"photostudio-be/internal/testutil/memuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "auth-test-secret"

func newAuthEnv(t *testing.T, active bool) (*authService, *memuow.Store, *memory.TokenBlacklist, entity.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	store := memuow.NewStore()
	user := entity.User{
		ID:           uuid.New(),
		Name:         "Ayu",
		Email:        "ayu@studio.test",
		PasswordHash: string(hash),
		Role:         entity.UserRoleAdmin,
		IsActive:     active,
	}
	store.AddUser(user)

	blacklist := memory.NewTokenBlacklist()
	svc := NewAuthService(store, blacklist, config.AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour}, logger.NewNopLogger()).(*authService)
	return svc, store, blacklist, user
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _, _, user := newAuthEnv(t, true)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{Email: " AYU@studio.test ", Password: "s3cret-pass"})
	require.NoError(t, err)

	claims, err := serverutils.ParseToken(res.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.NotEmpty(t, claims["jti"])
	assert.Equal(t, user.Email, res.User.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _, _ := newAuthEnv(t, true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ayu@studio.test", Password: "wrong"})
	assert.True(t, apperror.IsAuthentication(err))

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@studio.test", Password: "s3cret-pass"})
	assert.True(t, apperror.IsAuthentication(err))
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	svc, _, _, _ := newAuthEnv(t, false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ayu@studio.test", Password: "s3cret-pass"})
	require.Error(t, err)
	assert.Equal(t, 401, apperror.Status(err))
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, blacklist, _ := newAuthEnv(t, true)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, "jti-1", time.Minute))
	revoked, err := blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.Error(t, svc.Logout(ctx, "", time.Minute))
}

func TestMe(t *testing.T) {
	svc, _, _, user := newAuthEnv(t, true)

	me, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ayu", me.Name)

	_, err = svc.Me(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}
