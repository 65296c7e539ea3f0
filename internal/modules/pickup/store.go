// README: Pickup store backed by PostgreSQL; CAS transitions and transactional units.
package pickup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

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

const pickupColumns = `
	id, requester_id, address, pickup_date, pickup_time, waste_types,
	weight_kg, price, base_price, weight_charge, type_charge, currency,
	notes, is_fragile, need_bags, need_help,
	status, status_version, collector_id, collector_info,
	actual_weight_kg, user_rating, timeline, created_at, updated_at`

func (s *DBStore) Create(ctx context.Context, p *Pickup) error {
	timeline, err := json.Marshal(p.Timeline)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO pickups (
			id, requester_id, address, pickup_date, pickup_time, waste_types,
			weight_kg, price, base_price, weight_charge, type_charge, currency,
			notes, is_fragile, need_bags, need_help,
			status, status_version, timeline, created_at, updated_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,
			$7,$8,$9,$10,$11,$12,
			$13,$14,$15,$16,
			$17,$18,$19,$20,$20
		)`,
		string(p.ID), string(p.RequesterID), p.Address, p.Date, p.Time, p.WasteTypes,
		p.WeightKg, p.Price.Amount, p.PriceBreakdown.BasePrice.Amount,
		p.PriceBreakdown.WeightCharge.Amount, p.PriceBreakdown.TypeCharge.Amount, p.Price.Currency,
		p.Notes, p.IsFragile, p.NeedBags, p.NeedHelp,
		string(p.Status), p.StatusVersion, timeline, p.CreatedAt,
	)
	return err
}

func (s *DBStore) Get(ctx context.Context, id types.ID) (*Pickup, error) {
	row := s.db.QueryRow(ctx, `SELECT `+pickupColumns+` FROM pickups WHERE id = $1`, string(id))
	p, err := scanPickup(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *DBStore) ListByRequester(ctx context.Context, userID types.ID) ([]*Pickup, error) {
	return s.list(ctx, `SELECT `+pickupColumns+`
		FROM pickups WHERE requester_id = $1 ORDER BY created_at DESC`, string(userID))
}

// ListPending returns unassigned pickups (PENDING, plus CONFIRMED which is
// PENDING with payment stamped) most recent first, the matcher's input
// ordering.
func (s *DBStore) ListPending(ctx context.Context) ([]*Pickup, error) {
	return s.list(ctx, `SELECT `+pickupColumns+`
		FROM pickups WHERE status IN ('PENDING', 'CONFIRMED') ORDER BY created_at DESC`)
}

func (s *DBStore) ListAwaitingApproval(ctx context.Context) ([]*Pickup, error) {
	return s.list(ctx, `SELECT `+pickupColumns+`
		FROM pickups WHERE status = 'AWAITING_ADMIN_APPROVAL' ORDER BY updated_at DESC`)
}

func (s *DBStore) ListCompletedByCollector(ctx context.Context, collectorID types.ID, limit int) ([]*Pickup, error) {
	return s.list(ctx, `SELECT `+pickupColumns+`
		FROM pickups WHERE collector_id = $1 AND status = 'COMPLETED'
		ORDER BY created_at DESC LIMIT $2`, string(collectorID), limit)
}

// Transition performs one CAS status hop plus its timeline append. Returns
// false when the row no longer matches (from, version).
func (s *DBStore) Transition(ctx context.Context, id types.ID, from, to Status, version int, entry TimelineEntry) (bool, error) {
	raw, err := marshalEntry(entry)
	if err != nil {
		return false, err
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE pickups
		SET status = $1,
		    status_version = status_version + 1,
		    timeline = timeline || $2::jsonb,
		    updated_at = now()
		WHERE id = $3 AND status = $4 AND status_version = $5`,
		string(to), raw, string(id), string(from), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Assign is the propose half of the approval gate: PENDING ->
// AWAITING_ADMIN_APPROVAL with the collector snapshot captured in the same
// CAS update, so two racing collectors cannot both win.
func (s *DBStore) Assign(ctx context.Context, id types.ID, version int, collectorID types.ID, snap CollectorSnapshot, entry TimelineEntry) (bool, error) {
	raw, err := marshalEntry(entry)
	if err != nil {
		return false, err
	}
	info, err := json.Marshal(snap)
	if err != nil {
		return false, err
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE pickups
		SET status = 'AWAITING_ADMIN_APPROVAL',
		    status_version = status_version + 1,
		    collector_id = $1,
		    collector_info = $2,
		    timeline = timeline || $3::jsonb,
		    updated_at = now()
		WHERE id = $4 AND status IN ('PENDING', 'CONFIRMED') AND status_version = $5`,
		string(collectorID), info, raw, string(id), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Unassign is the reject half: back to PENDING with collector id and snapshot
// cleared, so the pickup re-enters the matching pool.
func (s *DBStore) Unassign(ctx context.Context, id types.ID, version int, entry TimelineEntry) (bool, error) {
	raw, err := marshalEntry(entry)
	if err != nil {
		return false, err
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE pickups
		SET status = 'PENDING',
		    status_version = status_version + 1,
		    collector_id = NULL,
		    collector_info = NULL,
		    timeline = timeline || $1::jsonb,
		    updated_at = now()
		WHERE id = $2 AND status = 'AWAITING_ADMIN_APPROVAL' AND status_version = $3`,
		raw, string(id), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// CompleteUnit is the single logical unit of work committed when a pickup
// finishes: status CAS, earnings credit, transaction record, load release.
type CompleteUnit struct {
	PickupID      types.ID
	CollectorID   types.ID
	StatusVersion int
	TransactionID string
	Entry         TimelineEntry
}

// Complete commits the completion unit in one transaction keyed by the
// PICKED_UP status. Returns false when the CAS loses.
func (s *DBStore) Complete(ctx context.Context, unit CompleteUnit) (bool, error) {
	raw, err := marshalEntry(unit.Entry)
	if err != nil {
		return false, err
	}
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		UPDATE pickups
		SET status = 'COMPLETED',
		    status_version = status_version + 1,
		    timeline = timeline || $1::jsonb,
		    updated_at = now()
		WHERE id = $2 AND status = 'PICKED_UP' AND collector_id = $3 AND status_version = $4
		RETURNING price, currency, COALESCE(actual_weight_kg, weight_kg), waste_types`,
		raw, string(unit.PickupID), string(unit.CollectorID), unit.StatusVersion,
	)
	var amount int64
	var currency string
	var weightKg float64
	var wasteTypes []string
	if err := row.Scan(&amount, &currency, &weightKg, &wasteTypes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO earnings (collector_id, today_earnings, weekly_earnings, monthly_earnings, pending_payment, received_payment)
		VALUES ($1, $2, $2, $2, $2, 0)
		ON CONFLICT (collector_id) DO UPDATE
		SET today_earnings = earnings.today_earnings + EXCLUDED.today_earnings,
		    weekly_earnings = earnings.weekly_earnings + EXCLUDED.weekly_earnings,
		    monthly_earnings = earnings.monthly_earnings + EXCLUDED.monthly_earnings,
		    pending_payment = earnings.pending_payment + EXCLUDED.pending_payment`,
		string(unit.CollectorID), amount,
	)
	if err != nil {
		return false, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO earning_transactions (id, collector_id, pickup_id, amount, currency, date, is_paid, description)
		VALUES ($1, $2, $3, $4, $5, now(), false, $6)`,
		unit.TransactionID, string(unit.CollectorID), string(unit.PickupID), amount, currency,
		fmt.Sprintf("Pickup %s - %gkg", unit.PickupID, weightKg),
	)
	if err != nil {
		return false, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE collectors
		SET total_pickups = total_pickups + 1,
		    current_load_kg = GREATEST(0, current_load_kg - $2),
		    updated_at = now()
		WHERE id = $1`,
		string(unit.CollectorID), weightKg,
	)
	if err != nil {
		return false, err
	}

	// Drain the bin the load was booked against.
	primary := "general"
	if len(wasteTypes) > 0 {
		primary = wasteTypes[0]
	}
	if err := drainBin(ctx, tx, unit.CollectorID, primary, weightKg); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// WeightUnit is the weight-correction unit of work: actual-weight replacement
// plus the delta applied to the collector's aggregate load and matching bin.
type WeightUnit struct {
	PickupID    types.ID
	CollectorID types.ID
	ActualKg    float64
}

// ApplyWeight commits the correction in one transaction and returns the
// applied delta (new - previous). The pickup row is locked so concurrent
// corrections serialize.
func (s *DBStore) ApplyWeight(ctx context.Context, unit WeightUnit) (float64, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		SELECT status, collector_id, COALESCE(actual_weight_kg, 0), waste_types
		FROM pickups WHERE id = $1 FOR UPDATE`, string(unit.PickupID),
	)
	var status string
	var collectorID *string
	var previousKg float64
	var wasteTypes []string
	if err := row.Scan(&status, &collectorID, &previousKg, &wasteTypes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if collectorID == nil || *collectorID != string(unit.CollectorID) {
		return 0, fmt.Errorf("%w: you are not assigned to this pickup", ErrForbidden)
	}
	if status != string(StatusReached) && status != string(StatusPickedUp) {
		return 0, fmt.Errorf("%w: weight can only be updated when status is REACHED or PICKED_UP", ErrValidation)
	}

	delta := unit.ActualKg - previousKg
	if delta == 0 {
		// Same cumulative value resubmitted; nothing to book.
		return 0, tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx, `
		UPDATE pickups SET actual_weight_kg = $2, updated_at = now() WHERE id = $1`,
		string(unit.PickupID), unit.ActualKg,
	)
	if err != nil {
		return 0, err
	}

	if delta > 0 {
		tag, err := tx.Exec(ctx, `
			UPDATE collectors
			SET current_load_kg = current_load_kg + $2, updated_at = now()
			WHERE id = $1 AND current_load_kg + $2 <= max_weight_kg`,
			string(unit.CollectorID), delta,
		)
		if err != nil {
			return 0, err
		}
		if tag.RowsAffected() == 0 {
			return 0, fmt.Errorf("%w: actual weight exceeds remaining vehicle capacity", ErrCapacityExceeded)
		}
	} else {
		_, err := tx.Exec(ctx, `
			UPDATE collectors
			SET current_load_kg = GREATEST(0, current_load_kg + $2), updated_at = now()
			WHERE id = $1`,
			string(unit.CollectorID), delta,
		)
		if err != nil {
			return 0, err
		}
	}

	primary := "general"
	if len(wasteTypes) > 0 {
		primary = wasteTypes[0]
	}
	if err := fillBin(ctx, tx, unit.CollectorID, primary, delta); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return delta, nil
}

func (s *DBStore) SetRating(ctx context.Context, id types.ID, value int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE pickups SET user_rating = $2, updated_at = now() WHERE id = $1`,
		string(id), value,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// fillBin applies a weight delta to the collector's bin for the given waste
// type, falling back to the general catch-all bin. Collectors without bins
// (single-load vehicles) are untouched. Positive deltas must fit the bin.
func fillBin(ctx context.Context, tx pgx.Tx, collectorID types.ID, wasteType string, delta float64) error {
	binKey := wasteType
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM collector_bins WHERE collector_id = $1 AND waste_type = $2)`,
		string(collectorID), binKey,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		binKey = "general"
	}

	if delta > 0 {
		tag, err := tx.Exec(ctx, `
			UPDATE collector_bins
			SET current_kg = current_kg + $3
			WHERE collector_id = $1 AND waste_type = $2 AND current_kg + $3 <= capacity_kg`,
			string(collectorID), binKey, delta,
		)
		if err != nil {
			return err
		}
		var hasBins bool
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM collector_bins WHERE collector_id = $1)`,
			string(collectorID),
		).Scan(&hasBins); err != nil {
			return err
		}
		if hasBins && tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: bin for %s cannot hold the added weight", ErrCapacityExceeded, binKey)
		}
		return nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE collector_bins
		SET current_kg = GREATEST(0, current_kg + $3)
		WHERE collector_id = $1 AND waste_type = $2`,
		string(collectorID), binKey, delta,
	)
	return err
}

func drainBin(ctx context.Context, tx pgx.Tx, collectorID types.ID, wasteType string, kg float64) error {
	return fillBin(ctx, tx, collectorID, wasteType, -kg)
}

func (s *DBStore) list(ctx context.Context, query string, args ...any) ([]*Pickup, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Pickup
	for rows.Next() {
		p, err := scanPickup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanPickup(row scannable) (*Pickup, error) {
	var p Pickup
	var collectorID *string
	var collectorInfo, timeline []byte
	var basePrice, weightCharge, typeCharge int64

	err := row.Scan(
		&p.ID, &p.RequesterID, &p.Address, &p.Date, &p.Time, &p.WasteTypes,
		&p.WeightKg, &p.Price.Amount, &basePrice, &weightCharge, &typeCharge, &p.Price.Currency,
		&p.Notes, &p.IsFragile, &p.NeedBags, &p.NeedHelp,
		&p.Status, &p.StatusVersion, &collectorID, &collectorInfo,
		&p.ActualWeightKg, &p.Rating, &timeline, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.PriceBreakdown.BasePrice = types.Money{Amount: basePrice, Currency: p.Price.Currency}
	p.PriceBreakdown.WeightCharge = types.Money{Amount: weightCharge, Currency: p.Price.Currency}
	p.PriceBreakdown.TypeCharge = types.Money{Amount: typeCharge, Currency: p.Price.Currency}
	p.PriceBreakdown.Total = p.Price

	if collectorID != nil {
		id := types.ID(*collectorID)
		p.CollectorID = &id
	}
	if len(collectorInfo) > 0 {
		var snap CollectorSnapshot
		if err := json.Unmarshal(collectorInfo, &snap); err != nil {
			return nil, err
		}
		p.CollectorInfo = &snap
	}
	if len(timeline) > 0 {
		if err := json.Unmarshal(timeline, &p.Timeline); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func marshalEntry(entry TimelineEntry) ([]byte, error) {
	// Wrapped in an array so the jsonb || operator appends one element.
	return json.Marshal([]TimelineEntry{entry})
}
