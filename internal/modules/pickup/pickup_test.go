package pickup

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ayishathul-rinsha/Binnit/internal/modules/pricing"
	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

// memStore mirrors the conditional-update semantics of the SQL store: every
// status change checks (status, status_version) and bumps the version.
type memStore struct {
	mu      sync.Mutex
	pickups map[types.ID]*Pickup

	// collector state touched by ApplyWeight and Complete
	loadKg    map[types.ID]float64
	maxKg     map[types.ID]float64
	completed []CompleteUnit
}

func newMemStore() *memStore {
	return &memStore{
		pickups: make(map[types.ID]*Pickup),
		loadKg:  make(map[types.ID]float64),
		maxKg:   make(map[types.ID]float64),
	}
}

func (m *memStore) Create(_ context.Context, p *Pickup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.pickups[p.ID] = &cp
	return nil
}

func (m *memStore) Get(_ context.Context, id types.ID) (*Pickup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pickups[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) ListByRequester(_ context.Context, userID types.ID) ([]*Pickup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Pickup
	for _, p := range m.pickups {
		if p.RequesterID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) ListPending(_ context.Context) ([]*Pickup, error) {
	out := m.listByStatus(StatusPending)
	return append(out, m.listByStatus(StatusConfirmed)...), nil
}

func (m *memStore) ListAwaitingApproval(_ context.Context) ([]*Pickup, error) {
	return m.listByStatus(StatusAwaitingApproval), nil
}

func (m *memStore) listByStatus(st Status) []*Pickup {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Pickup
	for _, p := range m.pickups {
		if p.Status == st {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

func (m *memStore) ListCompletedByCollector(_ context.Context, collectorID types.ID, limit int) ([]*Pickup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Pickup
	for _, p := range m.pickups {
		if p.Status == StatusCompleted && p.CollectorID != nil && *p.CollectorID == collectorID {
			cp := *p
			out = append(out, &cp)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) Transition(_ context.Context, id types.ID, from, to Status, version int, entry TimelineEntry) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pickups[id]
	if !ok || p.Status != from || p.StatusVersion != version {
		return false, nil
	}
	p.Status = to
	p.StatusVersion++
	p.Timeline = append(p.Timeline, entry)
	return true, nil
}

func (m *memStore) Assign(_ context.Context, id types.ID, version int, collectorID types.ID, snap CollectorSnapshot, entry TimelineEntry) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pickups[id]
	if !ok || (p.Status != StatusPending && p.Status != StatusConfirmed) || p.StatusVersion != version {
		return false, nil
	}
	p.Status = StatusAwaitingApproval
	p.StatusVersion++
	p.CollectorID = &collectorID
	p.CollectorInfo = &snap
	p.Timeline = append(p.Timeline, entry)
	return true, nil
}

func (m *memStore) Unassign(_ context.Context, id types.ID, version int, entry TimelineEntry) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pickups[id]
	if !ok || p.Status != StatusAwaitingApproval || p.StatusVersion != version {
		return false, nil
	}
	p.Status = StatusPending
	p.StatusVersion++
	p.CollectorID = nil
	p.CollectorInfo = nil
	p.Timeline = append(p.Timeline, entry)
	return true, nil
}

func (m *memStore) Complete(_ context.Context, unit CompleteUnit) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pickups[unit.PickupID]
	if !ok || p.Status != StatusPickedUp || p.StatusVersion != unit.StatusVersion {
		return false, nil
	}
	p.Status = StatusCompleted
	p.StatusVersion++
	p.Timeline = append(p.Timeline, unit.Entry)
	settled := p.SettledWeightKg()
	if load := m.loadKg[unit.CollectorID] - settled; load > 0 {
		m.loadKg[unit.CollectorID] = load
	} else {
		m.loadKg[unit.CollectorID] = 0
	}
	m.completed = append(m.completed, unit)
	return true, nil
}

func (m *memStore) ApplyWeight(_ context.Context, unit WeightUnit) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pickups[unit.PickupID]
	if !ok {
		return 0, ErrNotFound
	}
	if p.CollectorID == nil || *p.CollectorID != unit.CollectorID {
		return 0, ErrForbidden
	}
	if p.Status != StatusReached && p.Status != StatusPickedUp {
		return 0, ErrValidation
	}
	var previous float64
	if p.ActualWeightKg != nil {
		previous = *p.ActualWeightKg
	}
	delta := unit.ActualKg - previous
	if delta > 0 && m.loadKg[unit.CollectorID]+delta > m.maxKg[unit.CollectorID] {
		return 0, ErrCapacityExceeded
	}
	if load := m.loadKg[unit.CollectorID] + delta; load > 0 {
		m.loadKg[unit.CollectorID] = load
	} else {
		m.loadKg[unit.CollectorID] = 0
	}
	kg := unit.ActualKg
	p.ActualWeightKg = &kg
	return delta, nil
}

func (m *memStore) SetRating(_ context.Context, id types.ID, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pickups[id]
	if !ok {
		return ErrNotFound
	}
	p.Rating = &value
	return nil
}

// statsRecorder counts stat updates so tests can assert on them.
type statsRecorder struct {
	mu        sync.Mutex
	active    int64
	completed int64
	wasteKg   float64
}

func (r *statsRecorder) AddActive(_ context.Context, n int64) {
	r.mu.Lock()
	r.active += n
	r.mu.Unlock()
}

func (r *statsRecorder) AddWaste(_ context.Context, kg float64) {
	r.mu.Lock()
	r.wasteKg += kg
	r.mu.Unlock()
}

func (r *statsRecorder) AddCompleted(_ context.Context, n int64) {
	r.mu.Lock()
	r.completed += n
	r.mu.Unlock()
}

type ratingRecorder struct {
	id    types.ID
	value int
}

func (r *ratingRecorder) AddRating(_ context.Context, id types.ID, value int) error {
	r.id, r.value = id, value
	return nil
}

func newTestService(store *memStore, stats *statsRecorder, raters CollectorRater) *Service {
	// a nil *statsRecorder must stay a nil interface inside the service
	var st Stats
	if stats != nil {
		st = stats
	}
	return NewService(store, pricing.NewService(), st, raters)
}

func mustCreate(t *testing.T, svc *Service, requester types.ID, wasteTypes []string, weightKg float64) *Pickup {
	t.Helper()
	p, err := svc.Create(context.Background(), CreateCommand{
		RequesterID: requester,
		Address:     "12 Beach Road",
		Date:        "2025-04-02",
		Time:        "10:00",
		WasteTypes:  wasteTypes,
		WeightKg:    weightKg,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return p
}

func assertStatus(t *testing.T, store *memStore, id types.ID, want Status) {
	t.Helper()
	p, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Status != want {
		t.Fatalf("status = %s, want %s", p.Status, want)
	}
}

func TestCreateComputesPriceAndTimeline(t *testing.T) {
	store := newMemStore()
	stats := &statsRecorder{}
	svc := newTestService(store, stats, nil)

	p := mustCreate(t, svc, "user-1", []string{"plastic"}, 12)

	if p.Status != StatusPending {
		t.Fatalf("status = %s, want %s", p.Status, StatusPending)
	}
	// 49 base + 12*5 weight + 5 plastic surcharge
	if got := p.Price.Amount; got != 114 {
		t.Fatalf("price = %d, want 114", got)
	}
	if len(p.Timeline) != 1 || p.Timeline[0].Status != string(StatusPending) {
		t.Fatalf("timeline = %+v, want single PENDING entry", p.Timeline)
	}
	if stats.active != 1 || stats.wasteKg != 12 {
		t.Fatalf("stats active=%d waste=%g, want 1 and 12", stats.active, stats.wasteKg)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(newMemStore(), nil, nil)

	_, err := svc.Create(context.Background(), CreateCommand{RequesterID: "user-1"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	_, err = svc.Create(context.Background(), CreateCommand{
		RequesterID: "user-1",
		Address:     "12 Beach Road",
		Date:        "2025-04-02",
		Time:        "10:00",
		WasteTypes:  []string{"general"},
		WeightKg:    -3,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for negative weight", err)
	}
}

func TestApprovalGateApprove(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil, nil)
	p := mustCreate(t, svc, "user-1", []string{"organic"}, 10)

	err := svc.Accept(context.Background(), AcceptCommand{
		PickupID:    p.ID,
		CollectorID: "col-1",
		Snapshot:    CollectorSnapshot{Name: "Ravi", VehicleType: "three_wheeler"},
	})
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	assertStatus(t, store, p.ID, StatusAwaitingApproval)

	if err := svc.Decide(context.Background(), DecideCommand{PickupID: p.ID, Approved: true}); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	assertStatus(t, store, p.ID, StatusAccepted)

	got, _ := store.Get(context.Background(), p.ID)
	if got.CollectorID == nil || *got.CollectorID != "col-1" {
		t.Fatalf("collectorID = %v, want col-1", got.CollectorID)
	}
}

func TestApprovalGateRejectClearsCollector(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil, nil)
	p := mustCreate(t, svc, "user-1", []string{"organic"}, 10)

	if err := svc.Accept(context.Background(), AcceptCommand{PickupID: p.ID, CollectorID: "col-1"}); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if err := svc.Decide(context.Background(), DecideCommand{PickupID: p.ID, Approved: false, Reason: "vehicle mismatch"}); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	got, _ := store.Get(context.Background(), p.ID)
	if got.Status != StatusPending {
		t.Fatalf("status = %s, want PENDING after rejection", got.Status)
	}
	if got.CollectorID != nil || got.CollectorInfo != nil {
		t.Fatal("collector fields should be cleared on rejection")
	}
	last := got.Timeline[len(got.Timeline)-1]
	if last.Status != "REJECTED" || last.Message != "vehicle mismatch" {
		t.Fatalf("last timeline entry = %+v, want REJECTED with reason", last)
	}
}

func TestAcceptRequiresPending(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil, nil)
	p := mustCreate(t, svc, "user-1", []string{"organic"}, 10)

	if err := svc.Accept(context.Background(), AcceptCommand{PickupID: p.ID, CollectorID: "col-1"}); err != nil {
		t.Fatalf("first Accept: %v", err)
	}
	err := svc.Accept(context.Background(), AcceptCommand{PickupID: p.ID, CollectorID: "col-2"})
	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("err = %v, want InvalidTransitionError", err)
	}
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want wrapping ErrInvalidTransition", err)
	}
}

func TestAcceptConfirmedPickup(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil, nil)
	p := mustCreate(t, svc, "user-1", []string{"organic"}, 10)

	// the payment stamp must not block acceptance
	if err := svc.ConfirmPayment(context.Background(), p.ID); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if err := svc.Accept(context.Background(), AcceptCommand{PickupID: p.ID, CollectorID: "col-1"}); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	assertStatus(t, store, p.ID, StatusAwaitingApproval)
}

func TestAdvanceChain(t *testing.T) {
	store := newMemStore()
	stats := &statsRecorder{}
	svc := newTestService(store, stats, nil)
	p := mustCreate(t, svc, "user-1", []string{"organic"}, 10)
	store.maxKg["col-1"] = 200

	if err := svc.Accept(context.Background(), AcceptCommand{PickupID: p.ID, CollectorID: "col-1"}); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if err := svc.Decide(context.Background(), DecideCommand{PickupID: p.ID, Approved: true}); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	for _, to := range []Status{StatusOnTheWay, StatusReached, StatusPickedUp, StatusCompleted} {
		err := svc.Advance(context.Background(), AdvanceCommand{PickupID: p.ID, CollectorID: "col-1", To: to})
		if err != nil {
			t.Fatalf("Advance to %s: %v", to, err)
		}
	}
	assertStatus(t, store, p.ID, StatusCompleted)
	if len(store.completed) != 1 {
		t.Fatalf("completed units = %d, want 1", len(store.completed))
	}
	if stats.active != 0 || stats.completed != 1 {
		t.Fatalf("stats active=%d completed=%d, want 0 and 1", stats.active, stats.completed)
	}
}

func TestAdvanceSkipRejected(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil, nil)
	p := mustCreate(t, svc, "user-1", []string{"organic"}, 10)

	if err := svc.Accept(context.Background(), AcceptCommand{PickupID: p.ID, CollectorID: "col-1"}); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if err := svc.Decide(context.Background(), DecideCommand{PickupID: p.ID, Approved: true}); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	// ACCEPTED cannot jump straight to PICKED_UP
	err := svc.Advance(context.Background(), AdvanceCommand{PickupID: p.ID, CollectorID: "col-1", To: StatusPickedUp})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestAdvanceByWrongCollector(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil, nil)
	p := mustCreate(t, svc, "user-1", []string{"organic"}, 10)

	if err := svc.Accept(context.Background(), AcceptCommand{PickupID: p.ID, CollectorID: "col-1"}); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if err := svc.Decide(context.Background(), DecideCommand{PickupID: p.ID, Approved: true}); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	err := svc.Advance(context.Background(), AdvanceCommand{PickupID: p.ID, CollectorID: "col-2", To: StatusOnTheWay})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestWeightCorrectionDelta(t *testing.T) {
	store := newMemStore()
	stats := &statsRecorder{}
	svc := newTestService(store, stats, nil)
	p := mustCreate(t, svc, "user-1", []string{"plastic"}, 10)
	store.maxKg["col-1"] = 200

	if err := svc.Accept(context.Background(), AcceptCommand{PickupID: p.ID, CollectorID: "col-1"}); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if err := svc.Decide(context.Background(), DecideCommand{PickupID: p.ID, Approved: true}); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	for _, to := range []Status{StatusOnTheWay, StatusReached} {
		if err := svc.Advance(context.Background(), AdvanceCommand{PickupID: p.ID, CollectorID: "col-1", To: to}); err != nil {
			t.Fatalf("Advance to %s: %v", to, err)
		}
	}

	// first weigh-in books the full amount
	if err := svc.SetActualWeight(context.Background(), WeightCommand{PickupID: p.ID, CollectorID: "col-1", ActualKg: 12}); err != nil {
		t.Fatalf("SetActualWeight: %v", err)
	}
	if store.loadKg["col-1"] != 12 {
		t.Fatalf("load = %g, want 12", store.loadKg["col-1"])
	}

	// correction books only the delta, down as well as up
	if err := svc.SetActualWeight(context.Background(), WeightCommand{PickupID: p.ID, CollectorID: "col-1", ActualKg: 9}); err != nil {
		t.Fatalf("SetActualWeight correction: %v", err)
	}
	if store.loadKg["col-1"] != 9 {
		t.Fatalf("load = %g, want 9 after downward correction", store.loadKg["col-1"])
	}

	got, _ := store.Get(context.Background(), p.ID)
	if got.ActualWeightKg == nil || *got.ActualWeightKg != 9 {
		t.Fatalf("actualWeightKg = %v, want 9", got.ActualWeightKg)
	}
	// stats saw +10 (create) +12 (weigh) -3 (correction)
	if stats.wasteKg != 19 {
		t.Fatalf("waste stat = %g, want 19", stats.wasteKg)
	}
}

func TestWeightCorrectionOverCapacity(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil, nil)
	p := mustCreate(t, svc, "user-1", []string{"plastic"}, 8)
	store.maxKg["col-1"] = 10

	if err := svc.Accept(context.Background(), AcceptCommand{PickupID: p.ID, CollectorID: "col-1"}); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if err := svc.Decide(context.Background(), DecideCommand{PickupID: p.ID, Approved: true}); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	for _, to := range []Status{StatusOnTheWay, StatusReached} {
		if err := svc.Advance(context.Background(), AdvanceCommand{PickupID: p.ID, CollectorID: "col-1", To: to}); err != nil {
			t.Fatalf("Advance to %s: %v", to, err)
		}
	}

	err := svc.SetActualWeight(context.Background(), WeightCommand{PickupID: p.ID, CollectorID: "col-1", ActualKg: 15})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}
}

func TestCancelOnlyEarlyStatuses(t *testing.T) {
	store := newMemStore()
	stats := &statsRecorder{}
	svc := newTestService(store, stats, nil)
	p := mustCreate(t, svc, "user-1", []string{"general"}, 5)

	if err := svc.Cancel(context.Background(), CancelCommand{PickupID: p.ID, RequesterID: "user-2"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for non-owner", err)
	}
	if err := svc.Cancel(context.Background(), CancelCommand{PickupID: p.ID, RequesterID: "user-1"}); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	assertStatus(t, store, p.ID, StatusCancelled)
	if stats.active != 0 {
		t.Fatalf("active stat = %d, want 0 after cancel", stats.active)
	}

	// terminal: cannot cancel twice
	err := svc.Cancel(context.Background(), CancelCommand{PickupID: p.ID, RequesterID: "user-1"})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestCancelAfterAssignmentFails(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil, nil)
	p := mustCreate(t, svc, "user-1", []string{"general"}, 5)

	if err := svc.Accept(context.Background(), AcceptCommand{PickupID: p.ID, CollectorID: "col-1"}); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	err := svc.Cancel(context.Background(), CancelCommand{PickupID: p.ID, RequesterID: "user-1"})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestConfirmPayment(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil, nil)
	p := mustCreate(t, svc, "user-1", []string{"general"}, 5)

	if err := svc.ConfirmPayment(context.Background(), p.ID); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	assertStatus(t, store, p.ID, StatusConfirmed)

	if err := svc.ConfirmPayment(context.Background(), p.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition on repeat", err)
	}
}

func TestRateCompletedPickup(t *testing.T) {
	store := newMemStore()
	rater := &ratingRecorder{}
	svc := newTestService(store, nil, rater)
	p := mustCreate(t, svc, "user-1", []string{"organic"}, 10)
	store.maxKg["col-1"] = 200

	if err := svc.Accept(context.Background(), AcceptCommand{PickupID: p.ID, CollectorID: "col-1"}); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if err := svc.Decide(context.Background(), DecideCommand{PickupID: p.ID, Approved: true}); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	// too early
	err := svc.Rate(context.Background(), RateCommand{PickupID: p.ID, RequesterID: "user-1", Value: 5})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation before completion", err)
	}

	for _, to := range []Status{StatusOnTheWay, StatusReached, StatusPickedUp, StatusCompleted} {
		if err := svc.Advance(context.Background(), AdvanceCommand{PickupID: p.ID, CollectorID: "col-1", To: to}); err != nil {
			t.Fatalf("Advance to %s: %v", to, err)
		}
	}

	if err := svc.Rate(context.Background(), RateCommand{PickupID: p.ID, RequesterID: "user-1", Value: 6}); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for out-of-range value", err)
	}
	if err := svc.Rate(context.Background(), RateCommand{PickupID: p.ID, RequesterID: "user-1", Value: 4}); err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if rater.id != "col-1" || rater.value != 4 {
		t.Fatalf("rater got (%s, %d), want (col-1, 4)", rater.id, rater.value)
	}

	got, _ := store.Get(context.Background(), p.ID)
	if got.Rating == nil || *got.Rating != 4 {
		t.Fatalf("rating = %v, want 4", got.Rating)
	}
}

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusAwaitingApproval, true},
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusAccepted, false},
		{StatusConfirmed, StatusAwaitingApproval, true},
		{StatusAwaitingApproval, StatusAccepted, true},
		{StatusAwaitingApproval, StatusPending, true},
		{StatusAccepted, StatusOnTheWay, true},
		{StatusAccepted, StatusReached, false},
		{StatusOnTheWay, StatusReached, true},
		{StatusReached, StatusPickedUp, true},
		{StatusPickedUp, StatusCompleted, true},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
