// README: Collector handlers: registration, profile, availability, pickup work queue.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayishathul-rinsha/Binnit/internal/http/middleware"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/collector"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/matching"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/pickup"
	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

type CollectorHandler struct {
	collector *collector.Service
	pickup    *pickup.Service
	matching  *matching.Service
}

func NewCollectorHandler(collectorSvc *collector.Service, pickupSvc *pickup.Service, matchingSvc *matching.Service) *CollectorHandler {
	return &CollectorHandler{collector: collectorSvc, pickup: pickupSvc, matching: matchingSvc}
}

func collectorView(col *collector.Collector) gin.H {
	bins := make(map[string]gin.H, len(col.Bins))
	for wt, bin := range col.Bins {
		bins[wt] = gin.H{"capacityKg": bin.CapacityKg, "currentKg": bin.CurrentKg}
	}
	return gin.H{
		"id":       col.ID,
		"name":     col.Name,
		"email":    col.Email,
		"phone":    col.Phone,
		"photoUrl": col.PhotoURL,
		"vehicle": gin.H{
			"type":               col.Vehicle.Type,
			"number":             col.Vehicle.Number,
			"registrationDocUrl": col.Vehicle.RegistrationDocURL,
		},
		"maxWeightKg":   col.MaxWeightKg,
		"currentLoadKg": col.CurrentLoadKg,
		"bins":          bins,
		"isOnline":      col.IsOnline,
		"rating":        col.Rating,
		"totalRatings":  col.TotalRatings,
		"totalPickups":  col.TotalPickups,
		"createdAt":     col.CreatedAt,
	}
}

type registerReq struct {
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	VehicleType        string `json:"vehicleType"`
	VehicleNumber      string `json:"vehicleNumber"`
	RegistrationDocURL string `json:"registrationDocUrl"`
	IDProofURL         string `json:"idProofUrl"`
}

func (h *CollectorHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	col, err := h.collector.Register(c.Request.Context(), collector.RegisterCommand{
		CollectorID:        middleware.CallerUID(c),
		Email:              middleware.CallerEmail(c),
		Name:               req.Name,
		Phone:              req.Phone,
		VehicleType:        req.VehicleType,
		VehicleNumber:      req.VehicleNumber,
		RegistrationDocURL: req.RegistrationDocURL,
		IDProofURL:         req.IDProofURL,
	})
	if err != nil {
		writeCollectorError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"collector": collectorView(col)})
}

func (h *CollectorHandler) Profile(c *gin.Context) {
	col, err := h.collector.Get(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeCollectorError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"collector": collectorView(col)})
}

type updateProfileReq struct {
	Name               *string `json:"name"`
	Phone              *string `json:"phone"`
	PhotoURL           *string `json:"photoUrl"`
	VehicleType        *string `json:"vehicleType"`
	VehicleNumber      *string `json:"vehicleNumber"`
	RegistrationDocURL *string `json:"registrationDocUrl"`
}

func (h *CollectorHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.collector.UpdateProfile(c.Request.Context(), collector.UpdateProfileCommand{
		CollectorID:        middleware.CallerUID(c),
		Name:               req.Name,
		Phone:              req.Phone,
		PhotoURL:           req.PhotoURL,
		VehicleType:        req.VehicleType,
		VehicleNumber:      req.VehicleNumber,
		RegistrationDocURL: req.RegistrationDocURL,
	})
	if err != nil {
		writeCollectorError(c, err)
		return
	}
	col, err := h.collector.Get(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeCollectorError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"collector": collectorView(col)})
}

type availabilityReq struct {
	IsOnline *bool `json:"isOnline"`
}

func (h *CollectorHandler) SetAvailability(c *gin.Context) {
	var req availabilityReq
	if err := c.ShouldBindJSON(&req); err != nil || req.IsOnline == nil {
		writeError(c, http.StatusBadRequest, "isOnline must be a boolean")
		return
	}
	if err := h.collector.SetAvailability(c.Request.Context(), middleware.CallerUID(c), *req.IsOnline); err != nil {
		writeCollectorError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"isOnline": *req.IsOnline})
}

type locationReq struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *CollectorHandler) UpdateLocation(c *gin.Context) {
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.collector.UpdateLocation(c.Request.Context(), middleware.CallerUID(c), req.Latitude, req.Longitude); err != nil {
		writeCollectorError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"updated": true})
}

// ListAvailable streams the PENDING pickups the caller's vehicle can take.
func (h *CollectorHandler) ListAvailable(c *gin.Context) {
	ps, err := h.matching.ListAvailable(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"pickups": pickupViews(ps)})
}

// Accept proposes the caller for a pickup: capacity is re-validated against
// the matcher, then the propose CAS runs with a fresh collector snapshot.
func (h *CollectorHandler) Accept(c *gin.Context) {
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
	col, err := h.matching.CheckFit(c.Request.Context(), middleware.CallerUID(c), p)
	if err != nil {
		writePickupError(c, err)
		return
	}
	err = h.pickup.Accept(c.Request.Context(), pickup.AcceptCommand{
		PickupID:    p.ID,
		CollectorID: col.ID,
		Snapshot: pickup.CollectorSnapshot{
			Name:          col.Name,
			Phone:         col.Phone,
			VehicleType:   col.Vehicle.Type,
			VehicleNumber: col.Vehicle.Number,
			Rating:        col.Rating,
		},
	})
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": pickup.StatusAwaitingApproval})
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *CollectorHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing pickup id")
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		writeError(c, http.StatusBadRequest, "status is required")
		return
	}
	err := h.pickup.Advance(c.Request.Context(), pickup.AdvanceCommand{
		PickupID:    types.ID(id),
		CollectorID: middleware.CallerUID(c),
		To:          pickup.Status(req.Status),
	})
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": req.Status})
}

type weightReq struct {
	ActualWeightKg float64 `json:"actualWeightKg"`
}

func (h *CollectorHandler) SetWeight(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing pickup id")
		return
	}
	var req weightReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.pickup.SetActualWeight(c.Request.Context(), pickup.WeightCommand{
		PickupID:    types.ID(id),
		CollectorID: middleware.CallerUID(c),
		ActualKg:    req.ActualWeightKg,
	})
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"actualWeightKg": req.ActualWeightKg})
}

func (h *CollectorHandler) History(c *gin.Context) {
	ps, err := h.pickup.History(c.Request.Context(), middleware.CallerUID(c), queryInt(c, "limit"))
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"pickups": pickupViews(ps)})
}
