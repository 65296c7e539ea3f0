// README: Pickup service implements the lifecycle state machine and approval gate.
package pickup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ayishathul-rinsha/Binnit/internal/modules/pricing"
	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

// Store is the persistence surface the service needs. *DBStore implements it;
// tests supply an in-memory fake with the same CAS semantics.
type Store interface {
	Create(ctx context.Context, p *Pickup) error
	Get(ctx context.Context, id types.ID) (*Pickup, error)
	ListByRequester(ctx context.Context, userID types.ID) ([]*Pickup, error)
	ListPending(ctx context.Context) ([]*Pickup, error)
	ListAwaitingApproval(ctx context.Context) ([]*Pickup, error)
	ListCompletedByCollector(ctx context.Context, collectorID types.ID, limit int) ([]*Pickup, error)
	Transition(ctx context.Context, id types.ID, from, to Status, version int, entry TimelineEntry) (bool, error)
	Assign(ctx context.Context, id types.ID, version int, collectorID types.ID, snap CollectorSnapshot, entry TimelineEntry) (bool, error)
	Unassign(ctx context.Context, id types.ID, version int, entry TimelineEntry) (bool, error)
	Complete(ctx context.Context, unit CompleteUnit) (bool, error)
	ApplyWeight(ctx context.Context, unit WeightUnit) (float64, error)
	SetRating(ctx context.Context, id types.ID, value int) error
}

type Pricing interface {
	Estimate(wasteTypes []string, weightKg float64) pricing.Breakdown
}

// Stats receives additive counter updates; implementations never fail the
// calling request.
type Stats interface {
	AddActive(ctx context.Context, n int64)
	AddWaste(ctx context.Context, kg float64)
	AddCompleted(ctx context.Context, n int64)
}

// CollectorRater folds a rating into the collector's running average.
type CollectorRater interface {
	AddRating(ctx context.Context, id types.ID, value int) error
}

type Service struct {
	store   Store
	pricing Pricing
	stats   Stats
	raters  CollectorRater
}

func NewService(store Store, pricing Pricing, stats Stats, raters CollectorRater) *Service {
	return &Service{store: store, pricing: pricing, stats: stats, raters: raters}
}

type CreateCommand struct {
	RequesterID types.ID
	Address     string
	Date        string
	Time        string
	WasteTypes  []string
	WeightKg    float64
	Notes       string
	IsFragile   bool
	NeedBags    bool
	NeedHelp    bool
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Pickup, error) {
	if cmd.RequesterID == "" || cmd.Address == "" || cmd.Date == "" || cmd.Time == "" || len(cmd.WasteTypes) == 0 {
		return nil, fmt.Errorf("%w: address, date, time, wasteTypes, and weightKg are required", ErrValidation)
	}
	if cmd.WeightKg <= 0 {
		return nil, fmt.Errorf("%w: weightKg must be a positive number", ErrValidation)
	}

	breakdown := s.pricing.Estimate(cmd.WasteTypes, cmd.WeightKg)
	now := time.Now().UTC()
	p := &Pickup{
		ID:             types.ID(uuid.NewString()),
		RequesterID:    cmd.RequesterID,
		Address:        cmd.Address,
		Date:           cmd.Date,
		Time:           cmd.Time,
		WasteTypes:     cmd.WasteTypes,
		WeightKg:       cmd.WeightKg,
		Price:          breakdown.Total,
		PriceBreakdown: breakdown,
		Notes:          cmd.Notes,
		IsFragile:      cmd.IsFragile,
		NeedBags:       cmd.NeedBags,
		NeedHelp:       cmd.NeedHelp,
		Status:         StatusPending,
		Timeline: []TimelineEntry{{
			Status:    string(StatusPending),
			Timestamp: now,
			Message:   "Pickup request created",
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	if s.stats != nil {
		s.stats.AddActive(ctx, 1)
		s.stats.AddWaste(ctx, cmd.WeightKg)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Pickup, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByRequester(ctx context.Context, userID types.ID) ([]*Pickup, error) {
	return s.store.ListByRequester(ctx, userID)
}

func (s *Service) ListPending(ctx context.Context) ([]*Pickup, error) {
	return s.store.ListPending(ctx)
}

func (s *Service) ListAwaitingApproval(ctx context.Context) ([]*Pickup, error) {
	return s.store.ListAwaitingApproval(ctx)
}

func (s *Service) History(ctx context.Context, collectorID types.ID, limit int) ([]*Pickup, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.store.ListCompletedByCollector(ctx, collectorID, limit)
}

type AcceptCommand struct {
	PickupID    types.ID
	CollectorID types.ID
	Snapshot    CollectorSnapshot
}

// Accept is the collector's propose half of the approval gate. Capacity and
// waste-type fit are validated by the caller against the matcher before the
// proposal; the CAS here settles races between competing collectors.
func (s *Service) Accept(ctx context.Context, cmd AcceptCommand) error {
	p, err := s.store.Get(ctx, cmd.PickupID)
	if err != nil {
		return err
	}
	// CONFIRMED is the paid variant of PENDING; payment never blocks acceptance.
	if p.Status != StatusPending && p.Status != StatusConfirmed {
		return &InvalidTransitionError{From: p.Status, To: StatusAwaitingApproval}
	}
	ok, err := s.store.Assign(ctx, p.ID, p.StatusVersion, cmd.CollectorID, cmd.Snapshot, TimelineEntry{
		Status:    string(StatusAwaitingApproval),
		Timestamp: time.Now().UTC(),
		Message:   fmt.Sprintf("Collector %s requested to accept", cmd.Snapshot.Name),
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

type DecideCommand struct {
	PickupID types.ID
	Approved bool
	Reason   string
}

// Decide is the admin's commit half of the approval gate. Rejection reverts
// the pickup to the unassigned pool without touching the collector's ledger;
// no capacity was reserved at propose time.
func (s *Service) Decide(ctx context.Context, cmd DecideCommand) error {
	p, err := s.store.Get(ctx, cmd.PickupID)
	if err != nil {
		return err
	}
	if p.Status != StatusAwaitingApproval {
		to := StatusAccepted
		if !cmd.Approved {
			to = StatusPending
		}
		return &InvalidTransitionError{From: p.Status, To: to}
	}

	now := time.Now().UTC()
	if cmd.Approved {
		ok, err := s.store.Transition(ctx, p.ID, StatusAwaitingApproval, StatusAccepted, p.StatusVersion, TimelineEntry{
			Status:    string(StatusAccepted),
			Timestamp: now,
			Message:   "Admin approved the pickup assignment",
		})
		if err != nil {
			return err
		}
		if !ok {
			return ErrConflict
		}
		return nil
	}

	message := cmd.Reason
	if message == "" {
		message = "Admin rejected the pickup assignment"
	}
	ok, err := s.store.Unassign(ctx, p.ID, p.StatusVersion, TimelineEntry{
		Status:    "REJECTED",
		Timestamp: now,
		Message:   message,
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

type AdvanceCommand struct {
	PickupID    types.ID
	CollectorID types.ID
	To          Status
}

// advanceTargets is what a collector may request through the status endpoint.
var advanceTargets = map[Status]bool{
	StatusOnTheWay:  true,
	StatusReached:   true,
	StatusPickedUp:  true,
	StatusCompleted: true,
}

// Advance moves an approved pickup along the linear completion chain. The
// COMPLETED hop commits the earnings credit and the capacity release in the
// same unit of work as the status change.
func (s *Service) Advance(ctx context.Context, cmd AdvanceCommand) error {
	if !advanceTargets[cmd.To] {
		return fmt.Errorf("%w: status must be one of ON_THE_WAY, REACHED, PICKED_UP, COMPLETED", ErrValidation)
	}
	p, err := s.store.Get(ctx, cmd.PickupID)
	if err != nil {
		return err
	}
	if p.CollectorID == nil || *p.CollectorID != cmd.CollectorID {
		return fmt.Errorf("%w: you are not assigned to this pickup", ErrForbidden)
	}
	if !CanTransition(p.Status, cmd.To) {
		return &InvalidTransitionError{From: p.Status, To: cmd.To}
	}

	entry := TimelineEntry{
		Status:    string(cmd.To),
		Timestamp: time.Now().UTC(),
		Message:   fmt.Sprintf("Status updated to %s", cmd.To),
	}

	if cmd.To == StatusCompleted {
		ok, err := s.store.Complete(ctx, CompleteUnit{
			PickupID:      p.ID,
			CollectorID:   cmd.CollectorID,
			StatusVersion: p.StatusVersion,
			TransactionID: uuid.NewString(),
			Entry:         entry,
		})
		if err != nil {
			return err
		}
		if !ok {
			return ErrConflict
		}
		if s.stats != nil {
			s.stats.AddActive(ctx, -1)
			s.stats.AddCompleted(ctx, 1)
		}
		return nil
	}

	ok, err := s.store.Transition(ctx, p.ID, p.Status, cmd.To, p.StatusVersion, entry)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

type WeightCommand struct {
	PickupID    types.ID
	CollectorID types.ID
	ActualKg    float64
}

// SetActualWeight replaces the pickup's weighed value and books the delta
// against the collector's load and bin. Resubmitting the same cumulative
// value is a no-op.
func (s *Service) SetActualWeight(ctx context.Context, cmd WeightCommand) error {
	if cmd.ActualKg <= 0 {
		return fmt.Errorf("%w: actualWeightKg must be a positive number", ErrValidation)
	}
	delta, err := s.store.ApplyWeight(ctx, WeightUnit{
		PickupID:    cmd.PickupID,
		CollectorID: cmd.CollectorID,
		ActualKg:    cmd.ActualKg,
	})
	if err != nil {
		return err
	}
	if delta != 0 && s.stats != nil {
		s.stats.AddWaste(ctx, delta)
	}
	return nil
}

type CancelCommand struct {
	PickupID    types.ID
	RequesterID types.ID
}

func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	p, err := s.store.Get(ctx, cmd.PickupID)
	if err != nil {
		return err
	}
	if p.RequesterID != cmd.RequesterID {
		return fmt.Errorf("%w: you can only cancel your own pickups", ErrForbidden)
	}
	if p.Status != StatusPending && p.Status != StatusConfirmed {
		return &InvalidTransitionError{From: p.Status, To: StatusCancelled}
	}
	ok, err := s.store.Transition(ctx, p.ID, p.Status, StatusCancelled, p.StatusVersion, TimelineEntry{
		Status:    string(StatusCancelled),
		Timestamp: time.Now().UTC(),
		Message:   "Pickup cancelled by user",
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	if s.stats != nil {
		s.stats.AddActive(ctx, -1)
	}
	return nil
}

// ConfirmPayment stamps the parallel payment axis. It does not gate the
// collection lifecycle; payment verification itself is simulated upstream.
func (s *Service) ConfirmPayment(ctx context.Context, id types.ID) error {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.Status != StatusPending {
		return &InvalidTransitionError{From: p.Status, To: StatusConfirmed}
	}
	ok, err := s.store.Transition(ctx, p.ID, StatusPending, StatusConfirmed, p.StatusVersion, TimelineEntry{
		Status:    string(StatusConfirmed),
		Timestamp: time.Now().UTC(),
		Message:   "Payment confirmed",
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

type RateCommand struct {
	PickupID    types.ID
	RequesterID types.ID
	Value       int
}

// Rate records the requester's 1-5 rating for a completed pickup and folds it
// into the assigned collector's average.
func (s *Service) Rate(ctx context.Context, cmd RateCommand) error {
	if cmd.Value < 1 || cmd.Value > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	p, err := s.store.Get(ctx, cmd.PickupID)
	if err != nil {
		return err
	}
	if p.RequesterID != cmd.RequesterID {
		return fmt.Errorf("%w: you can only rate your own pickups", ErrForbidden)
	}
	if p.Status != StatusCompleted {
		return fmt.Errorf("%w: can only rate completed pickups", ErrValidation)
	}
	if p.CollectorID == nil {
		return fmt.Errorf("%w: pickup has no assigned collector", ErrValidation)
	}
	if err := s.store.SetRating(ctx, p.ID, cmd.Value); err != nil {
		return err
	}
	if s.raters != nil {
		return s.raters.AddRating(ctx, *p.CollectorID, cmd.Value)
	}
	return nil
}
