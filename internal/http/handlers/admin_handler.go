package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "arthaus/internal/log"
	"arthaus/internal/services"
	"arthaus/internal/validate"
)

type AdminHandler struct {
	Auth *services.AuthService
}

// POST /admin/admin-login
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var f loginForm
	if err := c.BodyParser(&f); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if _, ok := validate.Email(f.Email); !ok {
		applog.Security(c, "auth.admin.login.fail", map[string]any{"reason": "bad_format"})
		return jsonError(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	a, tok, err := h.Auth.AdminLogin(f.Email, f.Password)
	if err != nil {
		applog.Security(c, "auth.admin.login.fail", map[string]any{"email": f.Email})
		return serviceError(c, err)
	}
	applog.Audit(c, "auth.admin.login.success", map[string]any{"admin_id": a.ID})
	return c.JSON(fiber.Map{"token": tok, "admin": a})
}

type adminRegisterForm struct {
	Email    string `json:"email" form:"email"`
	Name     string `json:"name" form:"name"`
	Password string `json:"password" form:"password"`
}

// POST /admin/admin-register - gated behind an existing admin token; the
// seeded bootstrap admin creates the first real account.
func (h *AdminHandler) Register(c *fiber.Ctx) error {
	var f adminRegisterForm
	if err := c.BodyParser(&f); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	email, okE := validate.Email(f.Email)
	name, okN := validate.Name(f.Name)
	if !okE || !okN {
		return jsonError(c, fiber.StatusBadRequest, "invalid email or name")
	}
	if !validate.Password(f.Password) {
		return jsonError(c, fiber.StatusBadRequest, "password must be 8-20 chars with upper, lower, digit and symbol")
	}
	a, err := h.Auth.RegisterAdmin(email, name, f.Password)
	if err != nil {
		if err != services.ErrEmailTaken {
			applog.Error(c, "admin.register.fail", err, nil)
		}
		return serviceError(c, err)
	}
	applog.Audit(c, "admin.register", map[string]any{"admin_id": a.ID})
	return c.Status(fiber.StatusCreated).JSON(a)
}
