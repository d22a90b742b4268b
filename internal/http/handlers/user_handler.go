package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "arthaus/internal/log"
	"arthaus/internal/repos"
	"arthaus/internal/services"
	"arthaus/internal/validate"
)

type UserHandler struct {
	Auth  *services.AuthService
	Users *repos.UserRepo
}

type registerForm struct {
	Email    string `json:"email" form:"email"`
	Name     string `json:"name" form:"name"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
	Password string `json:"password" form:"password"`
}

// POST /users/register
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var f registerForm
	if err := c.BodyParser(&f); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	email, okE := validate.Email(f.Email)
	name, okN := validate.Name(f.Name)
	if !okE || !okN {
		applog.Security(c, "validation.fail", map[string]any{"resource": "register"})
		return jsonError(c, fiber.StatusBadRequest, "invalid email or name")
	}
	if !validate.Password(f.Password) {
		return jsonError(c, fiber.StatusBadRequest, "password must be 8-20 chars with upper, lower, digit and symbol")
	}
	u, err := h.Auth.Register(email, name, f.Phone, f.Address, f.Password)
	if err != nil {
		if err != services.ErrEmailTaken {
			applog.Error(c, "user.register.fail", err, nil)
		}
		return serviceError(c, err)
	}
	applog.Audit(c, "user.register", map[string]any{"user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(u)
}

type loginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// POST /users/login
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var f loginForm
	if err := c.BodyParser(&f); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if _, ok := validate.Email(f.Email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return jsonError(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	u, tok, err := h.Auth.Login(f.Email, f.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": f.Email})
		return serviceError(c, err)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{"token": tok, "user": u})
}

type forgotForm struct {
	Email string `json:"email" form:"email"`
}

// POST /users/forgot-password - always 202 so addresses cannot be probed.
func (h *UserHandler) ForgotPassword(c *fiber.Ctx) error {
	var f forgotForm
	if err := c.BodyParser(&f); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	email, ok := validate.Email(f.Email)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid email")
	}
	if err := h.Auth.ForgotPassword(email); err != nil {
		applog.Error(c, "user.forgot.fail", err, nil)
		return serviceError(c, err)
	}
	applog.Info(c, "user.forgot", nil)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "if the address is registered, a reset token has been sent"})
}

type resetForm struct {
	Password string `json:"password" form:"password"`
}

// PUT /users/reset-password/:token
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	token, ok := validate.ID(c.Params("token"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid token")
	}
	var f resetForm
	if err := c.BodyParser(&f); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if !validate.Password(f.Password) {
		return jsonError(c, fiber.StatusBadRequest, "password must be 8-20 chars with upper, lower, digit and symbol")
	}
	if err := h.Auth.ResetPassword(token, f.Password); err != nil {
		applog.Security(c, "user.reset.fail", nil)
		return serviceError(c, err)
	}
	applog.Audit(c, "user.reset", nil)
	return c.JSON(fiber.Map{"message": "password updated"})
}

// GET /users/profile
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	uid, _ := c.Locals("subject_id").(string)
	u, err := h.Users.ByID(uid)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not found")
	}
	return c.JSON(u)
}

type profileForm struct {
	Name    string `json:"name" form:"name"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
}

// PUT /users/profile
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	uid, _ := c.Locals("subject_id").(string)
	u, err := h.Users.ByID(uid)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not found")
	}
	var f profileForm
	if err := c.BodyParser(&f); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if f.Name != "" {
		name, ok := validate.Name(f.Name)
		if !ok {
			return jsonError(c, fiber.StatusBadRequest, "invalid name")
		}
		u.Name = name
	}
	if f.Phone != "" {
		phone, ok := validate.Phone(f.Phone)
		if !ok {
			return jsonError(c, fiber.StatusBadRequest, "invalid phone")
		}
		u.Phone = phone
	}
	if f.Address != "" {
		u.Address = f.Address
	}
	if err := h.Users.UpdateProfile(*u); err != nil {
		applog.Error(c, "user.profile.update.fail", err, nil)
		return serviceError(c, err)
	}
	applog.Audit(c, "user.profile.update", nil)
	return c.JSON(u)
}

// DELETE /users/profile - the caller deletes their own account.
func (h *UserHandler) DeleteProfile(c *fiber.Ctx) error {
	uid, _ := c.Locals("subject_id").(string)
	if err := h.Users.Delete(uid); err != nil {
		return jsonError(c, fiber.StatusNotFound, "not found")
	}
	applog.Audit(c, "user.profile.delete", nil)
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------- Admin user management (/users/admin/*) ----------

// GET /users/admin/all
func (h *UserHandler) AdminList(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return serviceError(c, err)
	}
	return c.JSON(users)
}

// GET /users/admin/:id
func (h *UserHandler) AdminGet(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	u, err := h.Users.ByID(id)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not found")
	}
	return c.JSON(u)
}

// DELETE /users/admin/:id
func (h *UserHandler) AdminDelete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Users.Delete(id); err != nil {
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user_id": id})
		return jsonError(c, fiber.StatusNotFound, "not found")
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
