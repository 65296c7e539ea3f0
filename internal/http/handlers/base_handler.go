// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ayishathul-rinsha/Binnit/internal/modules/collector"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/earnings"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/identity"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/matching"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/pickup"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeJSON stamps the success envelope onto the payload. Every response body
// carries a success flag so clients can branch without inspecting the status.
func writeJSON(c *gin.Context, status int, payload gin.H) {
	payload["success"] = true
	c.JSON(status, payload)
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Success: false, Error: msg})
}

// queryInt reads an optional integer query parameter, 0 when absent or junk.
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

// writePickupError maps pickup domain errors onto the HTTP taxonomy. A CAS
// loss is a 409 so clients re-read and retry; plainly illegal requests are
// 400s.
func writePickupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pickup.ErrValidation),
		errors.Is(err, pickup.ErrInvalidTransition),
		errors.Is(err, pickup.ErrCapacityExceeded):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, pickup.ErrForbidden):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, pickup.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, pickup.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, collector.ErrValidation):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, collector.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, matching.ErrOffline):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeCollectorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, collector.ErrValidation):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, collector.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, collector.ErrAlreadyRegistered):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeEarningsError(c *gin.Context, err error) {
	if errors.Is(err, earnings.ErrNotFound) {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}
	writeError(c, http.StatusInternalServerError, "internal error")
}

func writeIdentityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrValidation):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, identity.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
