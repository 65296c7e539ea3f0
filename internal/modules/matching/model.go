// README: Capacity fit rules between a collector's vehicle and a pickup.
package matching

import (
	"errors"
	"fmt"

	"github.com/ayishathul-rinsha/Binnit/internal/modules/collector"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/pickup"
)

var ErrOffline = errors.New("you must be online to view available pickups")

// Fits reports whether the pickup can be loaded onto the collector's vehicle,
// applying, in order: remaining aggregate capacity, the class absolute weight
// ceiling, the class waste-type allow-list, and per-type bin headroom. A nil
// return means the pickup is a candidate.
func Fits(c *collector.Collector, p *pickup.Pickup) error {
	weight := p.WeightKg

	if weight > c.RemainingCapacityKg() {
		return fmt.Errorf("%w: pickup weight exceeds your remaining vehicle capacity", pickup.ErrCapacityExceeded)
	}

	spec, err := collector.LookupVehicle(c.Vehicle.Type)
	if err != nil {
		return err
	}
	if weight > spec.MaxWeightKg {
		return fmt.Errorf("%w: pickup weight exceeds the %s ceiling of %gkg",
			pickup.ErrCapacityExceeded, c.Vehicle.Type, spec.MaxWeightKg)
	}

	if spec.AllowedWasteTypes != nil {
		for _, wt := range p.WasteTypes {
			if !contains(spec.AllowedWasteTypes, wt) {
				return fmt.Errorf("%w: %s cannot carry waste type %s",
					pickup.ErrCapacityExceeded, c.Vehicle.Type, wt)
			}
		}
	}

	if c.Bins != nil {
		for _, wt := range p.WasteTypes {
			bin, ok := c.Bins[wt]
			if !ok {
				// Unlisted types ride in the catch-all bin and always pass here.
				continue
			}
			if bin.CurrentKg+weight > bin.CapacityKg {
				return fmt.Errorf("%w: %s bin cannot hold another %gkg",
					pickup.ErrCapacityExceeded, wt, weight)
			}
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
