package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"arthaus/internal/domain"
	applog "arthaus/internal/log"
	"arthaus/internal/repos"
	"arthaus/internal/services"
	"arthaus/internal/storage"
	"arthaus/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
	Media  *storage.MediaStore
	Users  *repos.UserRepo
}

type orderForm struct {
	ArtCode         string  `json:"artCode" form:"artCode"`
	SellType        string  `json:"sellType" form:"sellType"`
	CustomerName    string  `json:"customerName" form:"customerName"`
	CustomerEmail   string  `json:"customerEmail" form:"customerEmail"`
	CustomerPhone   string  `json:"customerPhone" form:"customerPhone"`
	ShippingAddress string  `json:"shippingAddress" form:"shippingAddress"`
	TotalAmount     float64 `json:"totalAmount" form:"totalAmount"`
}

// POST /orders (authenticated) - multipart, optional "receipt" upload.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var f orderForm
	if err := c.BodyParser(&f); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	code, okC := validate.ArtCode(f.ArtCode)
	name, okN := validate.Name(f.CustomerName)
	email, okE := validate.Email(f.CustomerEmail)
	if !okC || !okN || !okE || f.TotalAmount < 0 {
		applog.Security(c, "validation.fail", map[string]any{"resource": "order"})
		return jsonError(c, fiber.StatusBadRequest, "invalid order payload")
	}

	receiptURL := ""
	if fh, err := c.FormFile("receipt"); err == nil && fh != nil {
		url, err := h.Media.Save(fh, "receipt")
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "unsupported receipt upload")
		}
		receiptURL = url
	}

	o, err := h.Orders.Place(services.OrderInput{
		ArtCode: code, SellType: domain.SellType(f.SellType),
		CustomerName: name, CustomerEmail: email, CustomerPhone: f.CustomerPhone,
		ShippingAddress: f.ShippingAddress, PaymentReceipt: receiptURL,
		TotalAmount: f.TotalAmount,
	})
	if err != nil {
		if err != services.ErrNotFound && err != services.ErrBadSellType {
			applog.Error(c, "order.place.fail", err, map[string]any{"art_code": code})
		}
		return serviceError(c, err)
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": o.ID, "art_code": o.ArtCode, "total": o.TotalAmount})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GET /orders (authenticated) - the caller's own orders. The email always
// comes from the token's account, never from the query string; a mismatched
// ?email= is refused rather than honored.
func (h *OrderHandler) Mine(c *fiber.Ctx) error {
	uid, _ := c.Locals("subject_id").(string)
	u, err := h.Users.ByID(uid)
	if err != nil {
		return jsonError(c, fiber.StatusUnauthorized, "unknown account")
	}
	if q := c.Query("email"); q != "" && !strings.EqualFold(q, u.Email) {
		applog.Security(c, "orders.scope.denied", map[string]any{"requested": q})
		return jsonError(c, fiber.StatusForbidden, "orders are limited to your own account")
	}
	out, err := h.Orders.ListForCustomer(u.Email)
	if err != nil {
		applog.Error(c, "orders.mine.fail", err, nil)
		return serviceError(c, err)
	}
	return c.JSON(out)
}

// GET /orders/all (admin)
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.Orders.ListAll(c.QueryInt("limit", 100))
	if err != nil {
		applog.Error(c, "orders.list.fail", err, nil)
		return serviceError(c, err)
	}
	return c.JSON(out)
}

type statusForm struct {
	Status string `json:"status" form:"status"`
}

// PATCH /orders/:id/status (admin) - pipeline transitions only.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var f statusForm
	if err := c.BodyParser(&f); err != nil || f.Status == "" {
		return jsonError(c, fiber.StatusBadRequest, "missing status")
	}
	o, err := h.Orders.UpdateStatus(id, domain.OrderStatus(f.Status))
	if err != nil {
		if err != services.ErrNotFound && err != services.ErrBadStatus && err != services.ErrIllegalTransition {
			applog.Error(c, "order.status.fail", err, map[string]any{"order_id": id})
		}
		return serviceError(c, err)
	}
	applog.Audit(c, "order.status", map[string]any{"order_id": id, "status": o.Status})
	return c.JSON(o)
}

// DELETE /orders/:id (admin)
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Orders.Delete(id); err != nil {
		if err != services.ErrNotFound {
			applog.Error(c, "order.delete.fail", err, map[string]any{"order_id": id})
		}
		return serviceError(c, err)
	}
	applog.Audit(c, "order.delete", map[string]any{"order_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
