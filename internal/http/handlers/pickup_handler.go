// README: User-facing pickup handlers: schedule, list, get, cancel, payment, rate.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayishathul-rinsha/Binnit/internal/http/middleware"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/pickup"
	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

type PickupHandler struct {
	pickup *pickup.Service
}

func NewPickupHandler(svc *pickup.Service) *PickupHandler {
	return &PickupHandler{pickup: svc}
}

// pickupView shapes a pickup for API responses.
func pickupView(p *pickup.Pickup) gin.H {
	v := gin.H{
		"id":             p.ID,
		"userId":         p.RequesterID,
		"address":        p.Address,
		"date":           p.Date,
		"time":           p.Time,
		"wasteTypes":     p.WasteTypes,
		"weightKg":       p.WeightKg,
		"price":          p.Price,
		"priceBreakdown": p.PriceBreakdown,
		"notes":          p.Notes,
		"isFragile":      p.IsFragile,
		"needBags":       p.NeedBags,
		"needHelp":       p.NeedHelp,
		"status":         p.Status,
		"timeline":       p.Timeline,
		"createdAt":      p.CreatedAt,
		"updatedAt":      p.UpdatedAt,
	}
	if p.CollectorID != nil {
		v["collectorId"] = *p.CollectorID
	}
	if p.CollectorInfo != nil {
		v["collectorInfo"] = p.CollectorInfo
	}
	if p.ActualWeightKg != nil {
		v["actualWeightKg"] = *p.ActualWeightKg
	}
	if p.Rating != nil {
		v["rating"] = *p.Rating
	}
	return v
}

func pickupViews(ps []*pickup.Pickup) []gin.H {
	out := make([]gin.H, 0, len(ps))
	for _, p := range ps {
		out = append(out, pickupView(p))
	}
	return out
}

type scheduleReq struct {
	Address    string   `json:"address"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	WasteTypes []string `json:"wasteTypes"`
	WeightKg   float64  `json:"weightKg"`
	Notes      string   `json:"notes"`
	IsFragile  bool     `json:"isFragile"`
	NeedBags   bool     `json:"needBags"`
	NeedHelp   bool     `json:"needHelp"`
}

func (h *PickupHandler) Schedule(c *gin.Context) {
	var req scheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.pickup.Create(c.Request.Context(), pickup.CreateCommand{
		RequesterID: middleware.CallerUID(c),
		Address:     req.Address,
		Date:        req.Date,
		Time:        req.Time,
		WasteTypes:  req.WasteTypes,
		WeightKg:    req.WeightKg,
		Notes:       req.Notes,
		IsFragile:   req.IsFragile,
		NeedBags:    req.NeedBags,
		NeedHelp:    req.NeedHelp,
	})
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"pickup": pickupView(p)})
}

func (h *PickupHandler) ListMine(c *gin.Context) {
	ps, err := h.pickup.ListByRequester(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"pickups": pickupViews(ps)})
}

func (h *PickupHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing pickup id")
		return
	}
	p, err := h.pickup.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writePickupError(c, err)
		return
	}
	// a pickup is visible to its requester, the assigned collector, and admins
	caller := middleware.CallerUID(c)
	role := middleware.CallerRole(c)
	assigned := p.CollectorID != nil && *p.CollectorID == caller
	if p.RequesterID != caller && !assigned && role != "admin" {
		writeError(c, http.StatusForbidden, "you do not have access to this pickup")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"pickup": pickupView(p)})
}

func (h *PickupHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing pickup id")
		return
	}
	err := h.pickup.Cancel(c.Request.Context(), pickup.CancelCommand{
		PickupID:    types.ID(id),
		RequesterID: middleware.CallerUID(c),
	})
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": pickup.StatusCancelled})
}

func (h *PickupHandler) ConfirmPayment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing pickup id")
		return
	}
	p, err := h.pickup.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writePickupError(c, err)
		return
	}
	if p.RequesterID != middleware.CallerUID(c) {
		writeError(c, http.StatusForbidden, "you can only confirm your own pickups")
		return
	}
	if err := h.pickup.ConfirmPayment(c.Request.Context(), p.ID); err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": pickup.StatusConfirmed})
}

type rateReq struct {
	Rating int `json:"rating"`
}

func (h *PickupHandler) Rate(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing pickup id")
		return
	}
	var req rateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.pickup.Rate(c.Request.Context(), pickup.RateCommand{
		PickupID:    types.ID(id),
		RequesterID: middleware.CallerUID(c),
		Value:       req.Rating,
	})
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"rating": req.Rating})
}
