// README: Pickup aggregate, status definitions, and the transition table.
package pickup

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ayishathul-rinsha/Binnit/internal/modules/pricing"
	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

type Status string

const (
	StatusPending          Status = "PENDING"
	StatusConfirmed        Status = "CONFIRMED"
	StatusAwaitingApproval Status = "AWAITING_ADMIN_APPROVAL"
	StatusAccepted         Status = "ACCEPTED"
	StatusOnTheWay         Status = "ON_THE_WAY"
	StatusReached          Status = "REACHED"
	StatusPickedUp         Status = "PICKED_UP"
	StatusCompleted        Status = "COMPLETED"
	StatusCancelled        Status = "CANCELLED"
)

// AllowedTransitions represents the pickup state flow as code. Statuses
// absent from the map are terminal.
var AllowedTransitions = map[Status][]Status{
	StatusPending:          {StatusAwaitingApproval, StatusConfirmed, StatusCancelled},
	StatusConfirmed:        {StatusAwaitingApproval, StatusCancelled},
	StatusAwaitingApproval: {StatusAccepted, StatusPending},
	StatusAccepted:         {StatusOnTheWay},
	StatusOnTheWay:         {StatusReached},
	StatusReached:          {StatusPickedUp},
	StatusPickedUp:         {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

var (
	ErrNotFound          = errors.New("pickup not found")
	ErrConflict          = errors.New("pickup state conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("bad request")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InvalidTransitionError names the current status and the legal next states
// so clients can correct themselves.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	allowed := make([]string, 0, len(AllowedTransitions[e.From]))
	for _, s := range AllowedTransitions[e.From] {
		allowed = append(allowed, string(s))
	}
	return fmt.Sprintf("cannot transition from %s to %s, allowed: %s",
		e.From, e.To, strings.Join(allowed, ", "))
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// CollectorSnapshot is the denormalized collector info captured at propose
// time. It is deliberately not refreshed after assignment.
type CollectorSnapshot struct {
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	VehicleType   string  `json:"vehicleType"`
	VehicleNumber string  `json:"vehicleNumber"`
	Rating        float64 `json:"rating"`
}

// TimelineEntry is one immutable audit record. The timeline is append-only,
// never reordered or truncated.
type TimelineEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

type Pickup struct {
	ID             types.ID
	RequesterID    types.ID
	Address        string
	Date           string
	Time           string
	WasteTypes     []string
	WeightKg       float64
	Price          types.Money
	PriceBreakdown pricing.Breakdown
	Notes          string
	IsFragile      bool
	NeedBags       bool
	NeedHelp       bool
	Status         Status
	StatusVersion  int
	CollectorID    *types.ID
	CollectorInfo  *CollectorSnapshot
	ActualWeightKg *float64
	Rating         *int
	Timeline       []TimelineEntry
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PrimaryWasteType is the first-listed waste type, the one a weight delta is
// booked against. Defaults to general.
func (p *Pickup) PrimaryWasteType() string {
	if len(p.WasteTypes) > 0 {
		return p.WasteTypes[0]
	}
	return "general"
}

// SettledWeightKg prefers the weighed value over the declared estimate.
func (p *Pickup) SettledWeightKg() float64 {
	if p.ActualWeightKg != nil {
		return *p.ActualWeightKg
	}
	return p.WeightKg
}
