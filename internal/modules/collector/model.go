// README: Collector aggregate: profile, vehicle, and capacity ledger.
package collector

import (
	"errors"
	"time"

	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

var (
	ErrNotFound          = errors.New("collector not found")
	ErrAlreadyRegistered = errors.New("collector profile already exists")
	ErrValidation        = errors.New("bad request")
)

type Vehicle struct {
	Type               string
	Number             string
	RegistrationDocURL string
}

// Bin is one typed capacity slot within a multi-bin vehicle.
type Bin struct {
	CapacityKg float64
	CurrentKg  float64
}

type Collector struct {
	ID            types.ID
	Name          string
	Email         string
	Phone         string
	PhotoURL      string
	IDProofURL    string
	Vehicle       Vehicle
	MaxWeightKg   float64
	CurrentLoadKg float64
	// Bins is nil for single-load vehicle classes.
	Bins         map[string]Bin
	IsOnline     bool
	Rating       float64
	RatingSum    int64
	TotalRatings int
	TotalPickups int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RemainingCapacityKg is the aggregate headroom of the vehicle.
func (c *Collector) RemainingCapacityKg() float64 {
	return c.MaxWeightKg - c.CurrentLoadKg
}

// BinStatus is one row of the fleet-wide bin activity view.
type BinStatus struct {
	CollectorID types.ID `json:"collectorId"`
	WasteType   string   `json:"wasteType"`
	CapacityKg  float64  `json:"capacityKg"`
	CurrentKg   float64  `json:"currentKg"`
	FillPercent float64  `json:"fillPercent"`
}
