package middleware

import (
	"errors"
	"strings"

	"skill-match/internal/domain/user"
	"skill-match/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const CtxActorKey = "actor"

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return m.handler(false)
}

// WebSocket also accepts the token as the access_token query parameter,
// since browsers cannot set headers on a websocket handshake.
func (m *AuthMiddleware) WebSocket() fiber.Handler {
	return m.handler(true)
}

func (m *AuthMiddleware) handler(allowQuery bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok && allowQuery {
			token = strings.TrimSpace(c.Query("access_token"))
			ok = token != ""
		}
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxActorKey, claims.Actor())

		return c.Next()
	}
}

func ActorFromCtx(c fiber.Ctx) (user.Actor, bool) {
	actor, ok := c.Locals(CtxActorKey).(user.Actor)
	if !ok || actor.ID == "" {
		return user.Actor{}, false
	}
	return actor, true
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
