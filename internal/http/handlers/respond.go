package handlers

import (
	"github.com/gofiber/fiber/v2"

	"arthaus/internal/services"
)

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// serviceError maps service sentinels to HTTP responses. Unknown errors
// surface as a generic 500; the real error goes to the structured log at the
// call site, never to the client.
func serviceError(c *fiber.Ctx, err error) error {
	switch err {
	case services.ErrNotFound:
		return jsonError(c, fiber.StatusNotFound, "not found")
	case services.ErrBadStatus, services.ErrBadSellType:
		return jsonError(c, fiber.StatusBadRequest, "invalid status value")
	case services.ErrIllegalTransition:
		return jsonError(c, fiber.StatusBadRequest, "illegal status transition")
	case services.ErrArtNotBiddable:
		return jsonError(c, fiber.StatusBadRequest, "art is not listed for bidding")
	case services.ErrSessionNotOpen:
		return jsonError(c, fiber.StatusBadRequest, "bidding session is not open")
	case services.ErrSessionExists:
		return jsonError(c, fiber.StatusConflict, "art already has an active bidding session")
	case services.ErrDuplicateCode:
		return jsonError(c, fiber.StatusConflict, "art code already exists")
	case services.ErrEmailTaken:
		return jsonError(c, fiber.StatusConflict, "email already registered")
	case services.ErrBadCreds:
		return jsonError(c, fiber.StatusUnauthorized, "invalid email or password")
	case services.ErrBadToken:
		return jsonError(c, fiber.StatusBadRequest, "invalid or expired token")
	}
	return jsonError(c, fiber.StatusInternalServerError, "internal error")
}
