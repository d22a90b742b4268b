package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"arthaus/internal/domain"
	applog "arthaus/internal/log"
	"arthaus/internal/services"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireUser accepts any valid bearer token and stores its subject and role
// in request locals.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return jsonError(c, fiber.StatusUnauthorized, "missing bearer token")
		}
		claims, err := auth.Verify(tok)
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return jsonError(c, fiber.StatusUnauthorized, "invalid token")
		}
		c.Locals("subject_id", claims.Subject)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// RequireAdmin additionally demands the ADMIN role.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return jsonError(c, fiber.StatusUnauthorized, "missing bearer token")
		}
		claims, err := auth.Verify(tok)
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return jsonError(c, fiber.StatusUnauthorized, "invalid token")
		}
		if claims.Role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"subject": claims.Subject})
			return jsonError(c, fiber.StatusForbidden, "admin access required")
		}
		c.Locals("subject_id", claims.Subject)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}
