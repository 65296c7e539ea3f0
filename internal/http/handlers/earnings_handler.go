// README: Earnings handlers: summary, transaction history, payout marking.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayishathul-rinsha/Binnit/internal/http/middleware"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/earnings"
)

type EarningsHandler struct {
	earnings *earnings.Service
}

func NewEarningsHandler(svc *earnings.Service) *EarningsHandler {
	return &EarningsHandler{earnings: svc}
}

func (h *EarningsHandler) Summary(c *gin.Context) {
	s, err := h.earnings.Summary(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeEarningsError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"todayEarnings":   s.TodayEarnings,
		"weeklyEarnings":  s.WeeklyEarnings,
		"monthlyEarnings": s.MonthlyEarnings,
		"pendingPayment":  s.PendingPayment,
		"receivedPayment": s.ReceivedPayment,
	})
}

func (h *EarningsHandler) Transactions(c *gin.Context) {
	txs, err := h.earnings.Transactions(c.Request.Context(), middleware.CallerUID(c), queryInt(c, "limit"))
	if err != nil {
		writeEarningsError(c, err)
		return
	}
	out := make([]gin.H, 0, len(txs))
	for _, tx := range txs {
		out = append(out, gin.H{
			"id":          tx.ID,
			"pickupId":    tx.PickupID,
			"amount":      tx.Amount,
			"date":        tx.Date,
			"isPaid":      tx.IsPaid,
			"description": tx.Description,
		})
	}
	writeJSON(c, http.StatusOK, gin.H{"transactions": out})
}

func (h *EarningsHandler) MarkPaid(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing transaction id")
		return
	}
	if err := h.earnings.MarkPaid(c.Request.Context(), middleware.CallerUID(c), id); err != nil {
		writeEarningsError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"paid": true})
}
