// README: Earnings store backed by PostgreSQL. Credits are written by the
// pickup completion unit; this store serves reads and payout marking.
package earnings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

type DBStore struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Summary(ctx context.Context, collectorID types.ID) (Summary, error) {
	row := s.db.QueryRow(ctx, `
		SELECT today_earnings, weekly_earnings, monthly_earnings, pending_payment, received_payment
		FROM earnings
		WHERE collector_id = $1`, string(collectorID),
	)
	var today, weekly, monthly, pending, received int64
	err := row.Scan(&today, &weekly, &monthly, &pending, &received)
	if errors.Is(err, pgx.ErrNoRows) {
		// No completions yet reads as all zeros, not an error.
		return Summary{}, nil
	}
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		TodayEarnings:   types.Rupees(today),
		WeeklyEarnings:  types.Rupees(weekly),
		MonthlyEarnings: types.Rupees(monthly),
		PendingPayment:  types.Rupees(pending),
		ReceivedPayment: types.Rupees(received),
	}, nil
}

func (s *DBStore) Transactions(ctx context.Context, collectorID types.ID, limit int) ([]Transaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, pickup_id, amount, currency, date, is_paid, description
		FROM earning_transactions
		WHERE collector_id = $1
		ORDER BY date DESC
		LIMIT $2`, string(collectorID), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.PickupID, &t.Amount.Amount, &t.Amount.Currency, &t.Date, &t.IsPaid, &t.Description); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// MarkPaid settles one transaction: pending moves to received and the record
// flips to paid. Marking an already-paid transaction is a no-op returning
// ErrNotFound so retries cannot double-settle.
func (s *DBStore) MarkPaid(ctx context.Context, collectorID types.ID, transactionID string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		UPDATE earning_transactions
		SET is_paid = true
		WHERE id = $1 AND collector_id = $2 AND is_paid = false
		RETURNING amount`, transactionID, string(collectorID),
	)
	var amount int64
	if err := row.Scan(&amount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE earnings
		SET pending_payment = GREATEST(0, pending_payment - $2),
		    received_payment = received_payment + $2
		WHERE collector_id = $1`, string(collectorID), amount,
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}
