// README: Matching service filters the pending pool against a collector's capacity.
package matching

import (
	"context"

	"github.com/ayishathul-rinsha/Binnit/internal/modules/collector"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/pickup"
	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

type PickupSource interface {
	ListPending(ctx context.Context) ([]*pickup.Pickup, error)
}

type CollectorSource interface {
	Get(ctx context.Context, id types.ID) (*collector.Collector, error)
}

type Service struct {
	pickups    PickupSource
	collectors CollectorSource
}

func NewService(pickups PickupSource, collectors CollectorSource) *Service {
	return &Service{pickups: pickups, collectors: collectors}
}

// ListAvailable returns the PENDING pickups the calling collector could take,
// newest first. The collector must be online to see the pool.
func (s *Service) ListAvailable(ctx context.Context, collectorID types.ID) ([]*pickup.Pickup, error) {
	c, err := s.collectors.Get(ctx, collectorID)
	if err != nil {
		return nil, err
	}
	if !c.IsOnline {
		return nil, ErrOffline
	}

	pending, err := s.pickups.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*pickup.Pickup, 0, len(pending))
	for _, p := range pending {
		if Fits(c, p) == nil {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// CheckFit re-validates capacity for one pickup at propose time and returns
// the collector so the caller can build the assignment snapshot.
func (s *Service) CheckFit(ctx context.Context, collectorID types.ID, p *pickup.Pickup) (*collector.Collector, error) {
	c, err := s.collectors.Get(ctx, collectorID)
	if err != nil {
		return nil, err
	}
	if err := Fits(c, p); err != nil {
		return nil, err
	}
	return c, nil
}
