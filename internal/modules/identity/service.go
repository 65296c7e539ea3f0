// README: Identity service. Profile upserts and account listing for admins.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

type Store interface {
	Role(ctx context.Context, uid types.ID) (Role, error)
	Get(ctx context.Context, uid types.ID) (*User, error)
	Upsert(ctx context.Context, u *User) (created bool, err error)
	ListAddresses(ctx context.Context, uid types.ID) ([]Address, error)
	AddAddress(ctx context.Context, a *Address) error
	ListAccounts(ctx context.Context) ([]Account, error)
}

// Stats receives a counter bump when a brand new profile is created.
type Stats interface {
	AddUsers(ctx context.Context, delta int64)
}

type Service struct {
	store Store
	stats Stats
}

func NewService(store Store, stats Stats) *Service {
	return &Service{store: store, stats: stats}
}

func (s *Service) Role(ctx context.Context, uid types.ID) (Role, error) {
	return s.store.Role(ctx, uid)
}

func (s *Service) Profile(ctx context.Context, uid types.ID) (*User, error) {
	return s.store.Get(ctx, uid)
}

type SaveProfileCommand struct {
	UID      types.ID
	Name     string
	Email    string
	Phone    string
	Address  string
	PhotoURL string
}

func (s *Service) SaveProfile(ctx context.Context, cmd SaveProfileCommand) (*User, error) {
	u := &User{
		ID:       cmd.UID,
		Name:     strings.TrimSpace(cmd.Name),
		Email:    strings.TrimSpace(cmd.Email),
		Phone:    strings.TrimSpace(cmd.Phone),
		Address:  strings.TrimSpace(cmd.Address),
		PhotoURL: strings.TrimSpace(cmd.PhotoURL),
	}
	created, err := s.store.Upsert(ctx, u)
	if err != nil {
		return nil, err
	}
	if created && s.stats != nil {
		s.stats.AddUsers(ctx, 1)
	}
	return s.store.Get(ctx, cmd.UID)
}

func (s *Service) Addresses(ctx context.Context, uid types.ID) ([]Address, error) {
	return s.store.ListAddresses(ctx, uid)
}

type AddAddressCommand struct {
	UID         types.ID
	Label       string
	FullAddress string
	Lat         *float64
	Lng         *float64
	IsDefault   bool
}

func (s *Service) AddAddress(ctx context.Context, cmd AddAddressCommand) (*Address, error) {
	label := strings.TrimSpace(cmd.Label)
	full := strings.TrimSpace(cmd.FullAddress)
	if label == "" || full == "" {
		return nil, fmt.Errorf("%w: label and fullAddress are required", ErrValidation)
	}
	a := &Address{
		ID:          types.ID(uuid.NewString()),
		UserID:      cmd.UID,
		Label:       label,
		FullAddress: full,
		Lat:         cmd.Lat,
		Lng:         cmd.Lng,
		IsDefault:   cmd.IsDefault,
	}
	if err := s.store.AddAddress(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]Account, error) {
	return s.store.ListAccounts(ctx)
}
