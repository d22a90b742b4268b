package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "arthaus/internal/log"
	"arthaus/internal/services"
	"arthaus/internal/validate"
)

type ExhibitionHandler struct {
	Exhibitions *services.ExhibitionService
	Reports     services.ReportService
}

type exhibitionForm struct {
	Title       string `json:"title" form:"title"`
	Location    string `json:"location" form:"location"`
	StartDate   string `json:"startDate" form:"startDate"`
	EndDate     string `json:"endDate" form:"endDate"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"imageUrl" form:"imageUrl"`
}

func parseExhibition(c *fiber.Ctx) (services.ExhibitionInput, bool) {
	var f exhibitionForm
	if err := c.BodyParser(&f); err != nil {
		return services.ExhibitionInput{}, false
	}
	title, ok := validate.Name(f.Title)
	if !ok {
		return services.ExhibitionInput{}, false
	}
	if f.StartDate != "" {
		if _, okD := validate.Date(f.StartDate); !okD {
			return services.ExhibitionInput{}, false
		}
	}
	if f.EndDate != "" {
		if _, okD := validate.Date(f.EndDate); !okD {
			return services.ExhibitionInput{}, false
		}
	}
	return services.ExhibitionInput{
		Title: title, Location: f.Location, StartDate: f.StartDate,
		EndDate: f.EndDate, Description: f.Description, ImageURL: f.ImageURL,
	}, true
}

// GET /exhibitions
func (h *ExhibitionHandler) List(c *fiber.Ctx) error {
	out, err := h.Exhibitions.List(c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		applog.Error(c, "exhibitions.list.fail", err, nil)
		return serviceError(c, err)
	}
	return c.JSON(out)
}

// GET /exhibitions/:id
func (h *ExhibitionHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	e, err := h.Exhibitions.Get(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(e)
}

// POST /exhibitions (admin)
func (h *ExhibitionHandler) Create(c *fiber.Ctx) error {
	in, ok := parseExhibition(c)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"resource": "exhibition"})
		return jsonError(c, fiber.StatusBadRequest, "invalid exhibition payload")
	}
	e, err := h.Exhibitions.Create(in)
	if err != nil {
		applog.Error(c, "exhibition.create.fail", err, nil)
		return serviceError(c, err)
	}
	applog.Audit(c, "exhibition.create", map[string]any{"exhibition_id": e.ID})
	return c.Status(fiber.StatusCreated).JSON(e)
}

// PUT /exhibitions/:id (admin)
func (h *ExhibitionHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	in, okP := parseExhibition(c)
	if !okP {
		applog.Security(c, "validation.fail", map[string]any{"resource": "exhibition"})
		return jsonError(c, fiber.StatusBadRequest, "invalid exhibition payload")
	}
	e, err := h.Exhibitions.Update(id, in)
	if err != nil {
		if err != services.ErrNotFound {
			applog.Error(c, "exhibition.update.fail", err, map[string]any{"exhibition_id": id})
		}
		return serviceError(c, err)
	}
	applog.Audit(c, "exhibition.update", map[string]any{"exhibition_id": id})
	return c.JSON(e)
}

// DELETE /exhibitions/:id (admin)
func (h *ExhibitionHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Exhibitions.Delete(id); err != nil {
		if err != services.ErrNotFound {
			applog.Error(c, "exhibition.delete.fail", err, map[string]any{"exhibition_id": id})
		}
		return serviceError(c, err)
	}
	applog.Audit(c, "exhibition.delete", map[string]any{"exhibition_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /exhibitions/all/download/pdf
func (h *ExhibitionHandler) DownloadPDF(c *fiber.Ctx) error {
	out, err := h.Exhibitions.List(0, 0)
	if err != nil {
		applog.Error(c, "exhibitions.pdf.fail", err, nil)
		return serviceError(c, err)
	}
	pdf, err := h.Reports.ExhibitionsPDF(out)
	if err != nil {
		applog.Error(c, "exhibitions.pdf.fail", err, nil)
		return serviceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="exhibitions.pdf"`)
	return c.Send(pdf)
}
