package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultBodyLimit = 1 << 20
	UploadBodyLimit  = 10 << 20
)

// uploadRoute reports whether the request targets one of the multipart
// endpoints that accept image or receipt files.
func uploadRoute(c *fiber.Ctx) bool {
	switch c.Method() {
	case fiber.MethodPost:
		return c.Path() == "/arts" || c.Path() == "/orders"
	case fiber.MethodPut:
		return strings.HasPrefix(c.Path(), "/arts/")
	}
	return false
}

// BodyCap rejects request bodies over 1 MiB everywhere except the upload
// routes, which may carry up to UploadBodyLimit.
func BodyCap(c *fiber.Ctx) error {
	if len(c.Body()) > defaultBodyLimit && !uploadRoute(c) {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, "request body too large")
	}
	return c.Next()
}
