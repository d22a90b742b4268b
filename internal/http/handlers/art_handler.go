package handlers

import (
	"github.com/gofiber/fiber/v2"

	"arthaus/internal/domain"
	applog "arthaus/internal/log"
	"arthaus/internal/services"
	"arthaus/internal/storage"
	"arthaus/internal/validate"
)

type ArtHandler struct {
	Arts  *services.ArtService
	Media *storage.MediaStore
}

type artForm struct {
	ArtCode     string  `json:"artCode" form:"artCode"`
	Title       string  `json:"title" form:"title"`
	Artist      string  `json:"artist" form:"artist"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price"`
	Status      string  `json:"status" form:"status"`
	BidEndDate  string  `json:"bidEndDate" form:"bidEndDate"`
	BidEndTime  string  `json:"bidEndTime" form:"bidEndTime"`
}

func (h *ArtHandler) parse(c *fiber.Ctx) (services.ArtInput, bool) {
	var f artForm
	if err := c.BodyParser(&f); err != nil {
		return services.ArtInput{}, false
	}
	code, ok := validate.ArtCode(f.ArtCode)
	if !ok {
		return services.ArtInput{}, false
	}
	title, ok := validate.Name(f.Title)
	if !ok || f.Price < 0 {
		return services.ArtInput{}, false
	}
	in := services.ArtInput{
		ArtCode: code, Title: title, Artist: f.Artist, Description: f.Description,
		Price: f.Price, Status: domain.ArtStatus(f.Status),
		BidEndDate: f.BidEndDate, BidEndTime: f.BidEndTime,
	}
	// Bid listings carry an auction deadline; both parts must parse.
	if in.Status == domain.ArtBid {
		d, okD := validate.Date(f.BidEndDate)
		t, okT := validate.Clock(f.BidEndTime)
		if !okD || !okT {
			return services.ArtInput{}, false
		}
		in.BidEndDate, in.BidEndTime = d, t
	}
	return in, true
}

// saveImage stores an optional multipart "image" upload and returns its URL.
func (h *ArtHandler) saveImage(c *fiber.Ctx) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		return "", nil
	}
	return h.Media.Save(fh, "art")
}

// GET /arts
func (h *ArtHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)
	arts, err := h.Arts.List(status, limit, offset)
	if err != nil {
		if err != services.ErrBadStatus {
			applog.Error(c, "arts.list.fail", err, nil)
		}
		return serviceError(c, err)
	}
	return c.JSON(arts)
}

// GET /arts/:id
func (h *ArtHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	a, err := h.Arts.Get(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(a)
}

// POST /arts (admin)
func (h *ArtHandler) Create(c *fiber.Ctx) error {
	in, ok := h.parse(c)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"resource": "art"})
		return jsonError(c, fiber.StatusBadRequest, "invalid art payload")
	}
	url, err := h.saveImage(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "unsupported image upload")
	}
	in.ImageURL = url

	a, err := h.Arts.Create(in)
	if err != nil {
		if err != services.ErrDuplicateCode && err != services.ErrBadStatus {
			applog.Error(c, "art.create.fail", err, map[string]any{"art_code": in.ArtCode})
		}
		return serviceError(c, err)
	}
	applog.Audit(c, "art.create", map[string]any{"art_id": a.ID, "art_code": a.ArtCode})
	return c.Status(fiber.StatusCreated).JSON(a)
}

// PUT /arts/:id (admin) - cascades per the status-sync rules.
func (h *ArtHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	in, okP := h.parse(c)
	if !okP {
		applog.Security(c, "validation.fail", map[string]any{"resource": "art"})
		return jsonError(c, fiber.StatusBadRequest, "invalid art payload")
	}
	url, err := h.saveImage(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "unsupported image upload")
	}
	in.ImageURL = url

	a, err := h.Arts.Update(id, in)
	if err != nil {
		if err != services.ErrNotFound && err != services.ErrDuplicateCode && err != services.ErrBadStatus {
			applog.Error(c, "art.update.fail", err, map[string]any{"art_id": id})
		}
		return serviceError(c, err)
	}
	applog.Audit(c, "art.update", map[string]any{"art_id": id, "status": a.Status})
	return c.JSON(a)
}

// DELETE /arts/:id (admin) - cancels active sessions in the same transaction.
func (h *ArtHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Arts.Delete(id); err != nil {
		if err != services.ErrNotFound {
			applog.Error(c, "art.delete.fail", err, map[string]any{"art_id": id})
		}
		return serviceError(c, err)
	}
	applog.Audit(c, "art.delete", map[string]any{"art_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
