package serverutils

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"photostudio-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeBlacklist map[string]bool

func (f fakeBlacklist) Revoke(_ context.Context, id string, _ time.Duration) error {
	f[id] = true
	return nil
}

func (f fakeBlacklist) IsRevoked(_ context.Context, id string) (bool, error) {
	return f[id], nil
}

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newApp(blacklist fakeBlacklist) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/me", JwtMiddleware(testSecret, blacklist), RequireRole("admin"), func(ctx *fiber.Ctx) error {
		id, err := ActorID(ctx)
		if err != nil {
			return err
		}
		return ctx.SendString(id.String())
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	userID := uuid.New()
	valid := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    "admin",
		"jti":     "abc",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}

	tests := []struct {
		name      string
		token     func() string
		viaQuery  bool
		blacklist fakeBlacklist
		want      int
	}{
		{name: "missing token", token: func() string { return "" }, want: 401},
		{name: "garbage token", token: func() string { return "nope" }, want: 401},
		{name: "valid header", token: func() string { return sign(t, valid) }, want: 200},
		{name: "valid query", token: func() string { return sign(t, valid) }, viaQuery: true, want: 200},
		{name: "revoked", token: func() string { return sign(t, valid) }, blacklist: fakeBlacklist{"abc": true}, want: 401},
		{
			name: "expired",
			token: func() string {
				return sign(t, jwt.MapClaims{"user_id": userID.String(), "role": "admin", "exp": time.Now().Add(-time.Minute).Unix()})
			},
			want: 401,
		},
		{
			name: "wrong role",
			token: func() string {
				return sign(t, jwt.MapClaims{"user_id": userID.String(), "role": "customer", "exp": time.Now().Add(time.Hour).Unix()})
			},
			want: 403,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bl := tt.blacklist
			if bl == nil {
				bl = fakeBlacklist{}
			}
			app := newApp(bl)

			target := "/me"
			token := tt.token()
			if tt.viaQuery {
				target += "?token=" + token
			}
			req := httptest.NewRequest("GET", target, nil)
			if !tt.viaQuery && token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestErrorHandlerMapsTypedErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/conflict", func(ctx *fiber.Ctx) error {
		return apperror.ConflictError{Resource: "transaction", Msg: "already refunded"}
	})
	app.Get("/missing", func(ctx *fiber.Ctx) error {
		return apperror.NotFoundError{Resource: "Transaction"}
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return assert.AnError
	})

	cases := map[string]int{"/conflict": 400, "/missing": 404, "/boom": 500}
	for path, want := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)
	}
}
