// README: Static vehicle capacity table (class -> payload, bins, type allow-list).
package collector

import (
	"fmt"
	"sort"
	"strings"
)

// VehicleSpec describes the carrying profile of one vehicle class.
type VehicleSpec struct {
	MaxWeightKg float64
	// BinCapacityKg maps waste type to per-bin capacity. Nil means the
	// vehicle carries a single undivided load.
	BinCapacityKg map[string]float64
	// AllowedWasteTypes restricts what the class may carry. Nil means
	// unrestricted.
	AllowedWasteTypes []string
}

var vehicleClasses = map[string]VehicleSpec{
	"two_wheeler": {
		MaxWeightKg:       10,
		AllowedWasteTypes: []string{"plastic"},
	},
	"three_wheeler": {
		MaxWeightKg: 200,
		BinCapacityKg: map[string]float64{
			"recyclable": 50,
			"organic":    40,
			"hazardous":  20,
			"e_waste":    30,
			"general":    60,
		},
	},
	"truck": {
		MaxWeightKg: 1000,
		BinCapacityKg: map[string]float64{
			"recyclable": 250,
			"organic":    200,
			"hazardous":  100,
			"e_waste":    150,
			"general":    300,
		},
	},
}

// LookupVehicle resolves a vehicle class key. Unknown keys are a validation
// error, not a fault.
func LookupVehicle(class string) (VehicleSpec, error) {
	spec, ok := vehicleClasses[class]
	if !ok {
		return VehicleSpec{}, fmt.Errorf("%w: invalid vehicleType %q, must be one of: %s",
			ErrValidation, class, strings.Join(VehicleClasses(), ", "))
	}
	return spec, nil
}

// VehicleClasses returns the known class keys in stable order.
func VehicleClasses() []string {
	keys := make([]string, 0, len(vehicleClasses))
	for k := range vehicleClasses {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewBins builds the zero-filled bin state for a class, or nil for
// single-load classes.
func NewBins(spec VehicleSpec) map[string]Bin {
	if spec.BinCapacityKg == nil {
		return nil
	}
	bins := make(map[string]Bin, len(spec.BinCapacityKg))
	for wt, cap := range spec.BinCapacityKg {
		bins[wt] = Bin{CapacityKg: cap}
	}
	return bins
}
