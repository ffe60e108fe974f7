package serverutils

import (
	"fmt"
	"strings"
	"time"

	"photostudio-be/internal/pkg/apperror"
	"photostudio-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	LocalUserID   = "user_id"
	LocalRole     = "role"
	LocalTokenID  = "jti"
	LocalTokenExp = "token_exp"
)

// BearerToken reads the token from the Authorization header, falling back to
// the "token" query parameter used by websocket clients.
func BearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ctx.Query("token")
}

// ParseToken verifies an HS256 token and returns its claims.
func ParseToken(tokenStr, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, apperror.AuthenticationError{Msg: "Invalid token"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.AuthenticationError{Msg: "Invalid claims"}
	}
	return claims, nil
}

func JwtMiddleware(secret string, blacklist contract.TokenBlacklist) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := BearerToken(ctx)
		if tokenStr == "" {
			return apperror.AuthenticationError{Msg: "Missing token"}
		}

		claims, err := ParseToken(tokenStr, secret)
		if err != nil {
			return err
		}

		jti, _ := claims["jti"].(string)
		if blacklist != nil && jti != "" {
			revoked, err := blacklist.IsRevoked(ctx.UserContext(), jti)
			if err != nil {
				return err
			}
			if revoked {
				return apperror.AuthenticationError{Msg: "Token has been revoked"}
			}
		}

		ctx.Locals(LocalUserID, claims["user_id"])
		ctx.Locals(LocalRole, claims["role"])
		ctx.Locals(LocalTokenID, jti)
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			ctx.Locals(LocalTokenExp, exp.Time)
		}
		return ctx.Next()
	}
}

// RequireRole must run after JwtMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals(LocalRole).(string)
		for _, allowed := range roles {
			if role == allowed {
				return ctx.Next()
			}
		}
		return apperror.ForbiddenError{Msg: "Insufficient role"}
	}
}

// ActorID returns the authenticated user id.
func ActorID(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := ctx.Locals(LocalUserID).(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.AuthenticationError{Msg: "Invalid user id in token"}
	}
	return id, nil
}

// TokenRemaining reports how long the current token stays valid.
func TokenRemaining(ctx *fiber.Ctx, now time.Time) time.Duration {
	exp, ok := ctx.Locals(LocalTokenExp).(time.Time)
	if !ok {
		return 0
	}
	return exp.Sub(now)
}
