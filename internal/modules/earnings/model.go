// README: Earnings ledger: running totals plus an append-only transaction log.
package earnings

import (
	"errors"
	"time"

	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

var ErrNotFound = errors.New("earnings record not found")

// Summary is one collector's running totals. Zero-valued when the collector
// has not completed any pickup yet.
type Summary struct {
	TodayEarnings   types.Money
	WeeklyEarnings  types.Money
	MonthlyEarnings types.Money
	PendingPayment  types.Money
	// ReceivedPayment is advanced by the payout process, not by completions.
	ReceivedPayment types.Money
}

// Transaction is one immutable record per completed pickup.
type Transaction struct {
	ID          string
	PickupID    types.ID
	Amount      types.Money
	Date        time.Time
	IsPaid      bool
	Description string
}
