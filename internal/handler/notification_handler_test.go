package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"photostudio-be/internal/pkg/logger"
	"photostudio-be/internal/pkg/serverutils"
	internalWS "photostudio-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "ws-test-secret"

func signed(t *testing.T, role string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"role":    role,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestLedgerStreamGuards(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler})
	hub := internalWS.NewHub(nil, logger.NewNopLogger())
	NewNotificationHandler(hub, serverutils.JwtMiddleware(secret, nil), logger.NewNopLogger()).RegisterRoutes(app.Group("/api"))

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", fiber.StatusUnauthorized},
		{"staff", signed(t, "staff"), fiber.StatusForbidden},
		{"admin without upgrade", signed(t, "admin"), fiber.StatusUpgradeRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := "/api/ws/ledger"
			if tc.token != "" {
				path += "?token=" + tc.token
			}
			resp, err := app.Test(httptest.NewRequest("GET", path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
