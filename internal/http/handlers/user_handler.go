// README: User profile handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayishathul-rinsha/Binnit/internal/http/middleware"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/identity"
)

type UserHandler struct {
	identity *identity.Service
}

func NewUserHandler(svc *identity.Service) *UserHandler {
	return &UserHandler{identity: svc}
}

func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.identity.Profile(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeIdentityError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"user": u})
}

type saveProfileReq struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	PhotoURL string `json:"photoUrl"`
}

func (h *UserHandler) SaveProfile(c *gin.Context) {
	var req saveProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	u, err := h.identity.SaveProfile(c.Request.Context(), identity.SaveProfileCommand{
		UID:      middleware.CallerUID(c),
		Name:     req.Name,
		Email:    middleware.CallerEmail(c),
		Phone:    req.Phone,
		Address:  req.Address,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		writeIdentityError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"user": u})
}

func (h *UserHandler) Addresses(c *gin.Context) {
	addrs, err := h.identity.Addresses(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeIdentityError(c, err)
		return
	}
	if addrs == nil {
		addrs = []identity.Address{}
	}
	writeJSON(c, http.StatusOK, gin.H{"addresses": addrs})
}

type addAddressReq struct {
	Label       string   `json:"label"`
	FullAddress string   `json:"fullAddress"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	IsDefault   bool     `json:"isDefault"`
}

func (h *UserHandler) AddAddress(c *gin.Context) {
	var req addAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	a, err := h.identity.AddAddress(c.Request.Context(), identity.AddAddressCommand{
		UID:         middleware.CallerUID(c),
		Label:       req.Label,
		FullAddress: req.FullAddress,
		Lat:         req.Lat,
		Lng:         req.Lng,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		writeIdentityError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"addressId": a.ID})
}
