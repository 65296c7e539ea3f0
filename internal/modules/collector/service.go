// README: Collector service: registration, profile, availability, rating.
package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

// Store is the persistence surface the service needs. *DBStore implements it.
type Store interface {
	Create(ctx context.Context, c *Collector) error
	Get(ctx context.Context, id types.ID) (*Collector, error)
	UpdateProfile(ctx context.Context, id types.ID, upd ProfileUpdate) error
	SetAvailability(ctx context.Context, id types.ID, online bool) error
	SetLocation(ctx context.Context, id types.ID, lat, lng float64) error
	AddRating(ctx context.Context, id types.ID, value int) error
	ListBins(ctx context.Context) ([]BinStatus, error)
}

// Stats receives additive counter updates. Implementations must not fail the
// calling request.
type Stats interface {
	AddCollectors(ctx context.Context, n int64)
}

type Service struct {
	store Store
	stats Stats
}

func NewService(store Store, stats Stats) *Service {
	return &Service{store: store, stats: stats}
}

type RegisterCommand struct {
	CollectorID        types.ID
	Email              string
	Name               string
	Phone              string
	VehicleType        string
	VehicleNumber      string
	RegistrationDocURL string
	IDProofURL         string
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Collector, error) {
	if cmd.CollectorID == "" || cmd.Name == "" || cmd.Phone == "" || cmd.VehicleType == "" || cmd.VehicleNumber == "" {
		return nil, fmt.Errorf("%w: name, phone, vehicleType, and vehicleNumber are required", ErrValidation)
	}
	spec, err := LookupVehicle(cmd.VehicleType)
	if err != nil {
		return nil, err
	}

	c := &Collector{
		ID:         cmd.CollectorID,
		Name:       cmd.Name,
		Email:      cmd.Email,
		Phone:      cmd.Phone,
		IDProofURL: cmd.IDProofURL,
		Vehicle: Vehicle{
			Type:               cmd.VehicleType,
			Number:             cmd.VehicleNumber,
			RegistrationDocURL: cmd.RegistrationDocURL,
		},
		MaxWeightKg: spec.MaxWeightKg,
		Bins:        NewBins(spec),
		CreatedAt:   time.Now().UTC(),
	}
	c.UpdatedAt = c.CreatedAt

	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	if s.stats != nil {
		s.stats.AddCollectors(ctx, 1)
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Collector, error) {
	return s.store.Get(ctx, id)
}

type UpdateProfileCommand struct {
	CollectorID        types.ID
	Name               *string
	Phone              *string
	PhotoURL           *string
	VehicleType        *string
	VehicleNumber      *string
	RegistrationDocURL *string
}

// UpdateProfile applies partial profile changes. Changing the vehicle class
// resets the whole capacity ledger: new ceiling, zero load, fresh bins.
func (s *Service) UpdateProfile(ctx context.Context, cmd UpdateProfileCommand) error {
	upd := ProfileUpdate{
		Name:               cmd.Name,
		Phone:              cmd.Phone,
		PhotoURL:           cmd.PhotoURL,
		VehicleNumber:      cmd.VehicleNumber,
		RegistrationDocURL: cmd.RegistrationDocURL,
	}
	if cmd.VehicleType != nil {
		spec, err := LookupVehicle(*cmd.VehicleType)
		if err != nil {
			return err
		}
		reset := &VehicleReset{
			Vehicle:     Vehicle{Type: *cmd.VehicleType},
			MaxWeightKg: spec.MaxWeightKg,
			Bins:        NewBins(spec),
		}
		if cmd.VehicleNumber != nil {
			reset.Vehicle.Number = *cmd.VehicleNumber
		}
		if cmd.RegistrationDocURL != nil {
			reset.Vehicle.RegistrationDocURL = *cmd.RegistrationDocURL
		}
		upd.VehicleReset = reset
	}
	return s.store.UpdateProfile(ctx, cmd.CollectorID, upd)
}

func (s *Service) SetAvailability(ctx context.Context, id types.ID, online bool) error {
	return s.store.SetAvailability(ctx, id, online)
}

func (s *Service) UpdateLocation(ctx context.Context, id types.ID, lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: latitude/longitude out of range", ErrValidation)
	}
	return s.store.SetLocation(ctx, id, lat, lng)
}

// ListBins is the admin's fleet-wide bin activity view.
func (s *Service) ListBins(ctx context.Context) ([]BinStatus, error) {
	return s.store.ListBins(ctx)
}

// AddRating records one 1-5 rating against the collector's running average.
func (s *Service) AddRating(ctx context.Context, id types.ID, value int) error {
	if value < 1 || value > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	return s.store.AddRating(ctx, id, value)
}
