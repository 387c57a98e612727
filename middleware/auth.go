package middleware

import (
	"strings"

	"talent-hub/auth"
	"talent-hub/services"

	"github.com/gofiber/fiber/v2"
)

type contextKey string

const principalKey contextKey = "principal"

// bearerToken returns the token from "Authorization: Bearer <token>".
func bearerToken(c *fiber.Ctx) (string, bool) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAuth rejects the request with 401 unless it carries a valid token.
func RequireAuth(tokens *auth.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c)
		if !ok {
			return services.Unauthorized("Authorization header missing or malformed")
		}
		p, err := tokens.Parse(raw)
		if err != nil {
			return services.Unauthorized("Invalid or expired token")
		}
		c.Locals(principalKey, &p)
		return c.Next()
	}
}

// OptionalAuth attaches a principal when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(tokens *auth.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw, ok := bearerToken(c); ok {
			if p, err := tokens.Parse(raw); err == nil {
				c.Locals(principalKey, &p)
			}
		}
		return c.Next()
	}
}

// PrincipalFrom returns the caller, or nil for anonymous requests.
func PrincipalFrom(c *fiber.Ctx) *auth.Principal {
	p, _ := c.Locals(principalKey).(*auth.Principal)
	return p
}
