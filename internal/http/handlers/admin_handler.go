// README: Admin handlers: approval queue, dashboard, account listing.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayishathul-rinsha/Binnit/internal/modules/collector"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/identity"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/pickup"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/stats"
	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

type AdminHandler struct {
	pickup    *pickup.Service
	collector *collector.Service
	stats     *stats.Service
	identity  *identity.Service
}

func NewAdminHandler(pickupSvc *pickup.Service, collectorSvc *collector.Service, statsSvc *stats.Service, identitySvc *identity.Service) *AdminHandler {
	return &AdminHandler{pickup: pickupSvc, collector: collectorSvc, stats: statsSvc, identity: identitySvc}
}

func (h *AdminHandler) PendingApproval(c *gin.Context) {
	ps, err := h.pickup.ListAwaitingApproval(c.Request.Context())
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"pickups": pickupViews(ps)})
}

type approveReq struct {
	Approved *bool  `json:"approved"`
	Reason   string `json:"reason"`
}

func (h *AdminHandler) Approve(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing pickup id")
		return
	}
	var req approveReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Approved == nil {
		writeError(c, http.StatusBadRequest, "approved must be a boolean")
		return
	}
	err := h.pickup.Decide(c.Request.Context(), pickup.DecideCommand{
		PickupID: types.ID(id),
		Approved: *req.Approved,
		Reason:   req.Reason,
	})
	if err != nil {
		writePickupError(c, err)
		return
	}
	status := pickup.StatusAccepted
	if !*req.Approved {
		status = pickup.StatusPending
	}
	writeJSON(c, http.StatusOK, gin.H{"status": status})
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	snap, err := h.stats.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"stats": snap})
}

// Bins is the fleet-wide bin activity list, derived from collector bins
// until smart-bin telemetry lands.
func (h *AdminHandler) Bins(c *gin.Context) {
	bins, err := h.collector.ListBins(c.Request.Context())
	if err != nil {
		writeCollectorError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"bins": bins, "count": len(bins)})
}

func (h *AdminHandler) Users(c *gin.Context) {
	accounts, err := h.identity.ListAccounts(c.Request.Context())
	if err != nil {
		writeIdentityError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"users": accounts})
}
