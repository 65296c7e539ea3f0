// README: Earnings service: summary and transaction history reads.
package earnings

import (
	"context"

	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

const defaultTransactionLimit = 20

type Store interface {
	Summary(ctx context.Context, collectorID types.ID) (Summary, error)
	Transactions(ctx context.Context, collectorID types.ID, limit int) ([]Transaction, error)
	MarkPaid(ctx context.Context, collectorID types.ID, transactionID string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Summary(ctx context.Context, collectorID types.ID) (Summary, error) {
	return s.store.Summary(ctx, collectorID)
}

func (s *Service) Transactions(ctx context.Context, collectorID types.ID, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	return s.store.Transactions(ctx, collectorID, limit)
}

// MarkPaid is the payout process surface; completion credits never call it.
func (s *Service) MarkPaid(ctx context.Context, collectorID types.ID, transactionID string) error {
	return s.store.MarkPaid(ctx, collectorID, transactionID)
}
