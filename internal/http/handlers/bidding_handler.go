package handlers

import (
	"github.com/gofiber/fiber/v2"

	"arthaus/internal/domain"
	applog "arthaus/internal/log"
	"arthaus/internal/services"
	"arthaus/internal/validate"
)

type BiddingHandler struct {
	Bidding *services.BiddingService
}

// GET /bidding
func (h *BiddingHandler) List(c *fiber.Ctx) error {
	sessions, err := h.Bidding.List(c.Query("status"), c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		if err != services.ErrBadStatus {
			applog.Error(c, "bidding.list.fail", err, nil)
		}
		return serviceError(c, err)
	}
	return c.JSON(sessions)
}

// GET /bidding/:id
func (h *BiddingHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	sess, err := h.Bidding.Get(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(sess)
}

type sessionCreateForm struct {
	ArtID         string  `json:"artId" form:"artId"`
	StartingPrice float64 `json:"startingPrice" form:"startingPrice"`
}

// POST /bidding (admin)
func (h *BiddingHandler) Create(c *fiber.Ctx) error {
	var f sessionCreateForm
	if err := c.BodyParser(&f); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	artID, ok := validate.ID(f.ArtID)
	if !ok || f.StartingPrice < 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	sess, err := h.Bidding.CreateSession(artID, f.StartingPrice)
	if err != nil {
		if err != services.ErrNotFound && err != services.ErrArtNotBiddable && err != services.ErrSessionExists {
			applog.Error(c, "bidding.create.fail", err, map[string]any{"art_id": artID})
		}
		return serviceError(c, err)
	}
	applog.Audit(c, "bidding.create", map[string]any{"session_id": sess.ID, "art_id": artID})
	return c.Status(fiber.StatusCreated).JSON(sess)
}

type sessionUpdateForm struct {
	StartingPrice *float64 `json:"startingPrice" form:"startingPrice"`
	BidEndDate    *string  `json:"bidEndDate" form:"bidEndDate"`
	BidEndTime    *string  `json:"bidEndTime" form:"bidEndTime"`
	Status        *string  `json:"status" form:"status"`
}

// PUT /bidding/:id (admin)
func (h *BiddingHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var f sessionUpdateForm
	if err := c.BodyParser(&f); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	in := services.SessionUpdate{
		StartingPrice: f.StartingPrice,
		BidEndDate:    f.BidEndDate,
		BidEndTime:    f.BidEndTime,
	}
	if f.BidEndDate != nil {
		if _, okD := validate.Date(*f.BidEndDate); !okD {
			return jsonError(c, fiber.StatusBadRequest, "invalid bidEndDate")
		}
	}
	if f.BidEndTime != nil {
		if _, okT := validate.Clock(*f.BidEndTime); !okT {
			return jsonError(c, fiber.StatusBadRequest, "invalid bidEndTime")
		}
	}
	if f.Status != nil {
		st := domain.SessionStatus(*f.Status)
		in.Status = &st
	}
	sess, err := h.Bidding.Update(id, in)
	if err != nil {
		if err != services.ErrNotFound && err != services.ErrBadStatus && err != services.ErrIllegalTransition {
			applog.Error(c, "bidding.update.fail", err, map[string]any{"session_id": id})
		}
		return serviceError(c, err)
	}
	applog.Audit(c, "bidding.update", map[string]any{"session_id": id, "status": sess.Status})
	return c.JSON(sess)
}

// PUT /bidding/:id/cancel (admin)
func (h *BiddingHandler) Cancel(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	sess, err := h.Bidding.Cancel(id)
	if err != nil {
		return serviceError(c, err)
	}
	applog.Audit(c, "bidding.cancel", map[string]any{"session_id": id})
	return c.JSON(sess)
}

// DELETE /bidding/:id (admin)
func (h *BiddingHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Bidding.Delete(id); err != nil {
		if err != services.ErrNotFound {
			applog.Error(c, "bidding.delete.fail", err, map[string]any{"session_id": id})
		}
		return serviceError(c, err)
	}
	applog.Audit(c, "bidding.delete", map[string]any{"session_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /bidding/:id/bids
func (h *BiddingHandler) ListBids(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	list, err := h.Bidding.ListBids(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(list)
}

type bidForm struct {
	Name       string  `json:"name" form:"name"`
	OfferPrice float64 `json:"offerPrice" form:"offerPrice"`
	Contact    string  `json:"contact" form:"contact"`
	Note       string  `json:"note" form:"note"`
}

// POST /bidding/:id/bids - append-only; the offer amount is not floored
// against the starting price or current high bid.
func (h *BiddingHandler) SubmitBid(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var f bidForm
	if err := c.BodyParser(&f); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	name, okN := validate.Name(f.Name)
	if !okN || f.OfferPrice <= 0 {
		applog.Security(c, "validation.fail", map[string]any{"resource": "bid"})
		return jsonError(c, fiber.StatusBadRequest, "invalid bid payload")
	}
	b, err := h.Bidding.SubmitBid(id, services.BidInput{
		Name: name, OfferPrice: f.OfferPrice, Contact: f.Contact, Note: f.Note,
	})
	if err != nil {
		if err != services.ErrNotFound && err != services.ErrSessionNotOpen {
			applog.Error(c, "bid.submit.fail", err, map[string]any{"session_id": id})
		}
		return serviceError(c, err)
	}
	applog.Audit(c, "bid.submit", map[string]any{"session_id": id, "bid_id": b.ID, "offer": b.OfferPrice})
	return c.Status(fiber.StatusCreated).JSON(b)
}

// ---------- Reconciliation (admin) ----------

// GET /bidding/pending-arts
func (h *BiddingHandler) PendingArts(c *fiber.Ctx) error {
	arts, err := h.Bidding.PendingArts()
	if err != nil {
		applog.Error(c, "bidding.pending.fail", err, nil)
		return serviceError(c, err)
	}
	return c.JSON(arts)
}

// POST /bidding/batch
func (h *BiddingHandler) CreateBatch(c *fiber.Ctx) error {
	var items []services.BatchItem
	if err := c.BodyParser(&items); err != nil || len(items) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "expected a non-empty list of {artId, startingPrice}")
	}
	results := h.Bidding.CreateBatch(items)
	created := 0
	for _, r := range results {
		if r.Error == "" {
			created++
		}
	}
	applog.Audit(c, "bidding.batch", map[string]any{"requested": len(items), "created": created})
	return c.JSON(fiber.Map{"results": results, "created": created})
}

// GET /bidding/check-status-changes
func (h *BiddingHandler) CheckStatusChanges(c *fiber.Ctx) error {
	rows, err := h.Bidding.CheckStatusChanges()
	if err != nil {
		applog.Error(c, "bidding.statuscheck.fail", err, nil)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"mismatches": rows})
}

// POST /bidding/sync-dates
func (h *BiddingHandler) SyncDates(c *fiber.Ctx) error {
	n, err := h.Bidding.SyncDates()
	if err != nil {
		applog.Error(c, "bidding.syncdates.fail", err, nil)
		return serviceError(c, err)
	}
	applog.Audit(c, "bidding.syncdates", map[string]any{"updated": n})
	return c.JSON(fiber.Map{"updated": n})
}
