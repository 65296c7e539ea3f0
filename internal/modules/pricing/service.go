// README: Pricing service computes pickup price estimates.
package pricing

import (
	"math"

	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

const (
	basePrice  = 49
	perKgPrice = 5
)

// typeSurcharges lists the per-waste-type flat surcharge. Types absent from
// the map add nothing.
var typeSurcharges = map[string]int64{
	"general":    0,
	"recyclable": 0,
	"organic":    10,
	"hazardous":  50,
	"e_waste":    40,
	"paper":      0,
	"plastic":    5,
	"metal":      10,
	"glass":      15,
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Estimate computes the price breakdown for a declared weight and waste-type
// list. The weight charge rounds to the nearest whole unit.
func (s *Service) Estimate(wasteTypes []string, weightKg float64) Breakdown {
	weightCharge := int64(math.Round(weightKg * perKgPrice))

	var typeCharge int64
	for _, wt := range wasteTypes {
		typeCharge += typeSurcharges[wt]
	}

	return Breakdown{
		BasePrice:    types.Rupees(basePrice),
		WeightCharge: types.Rupees(weightCharge),
		TypeCharge:   types.Rupees(typeCharge),
		Total:        types.Rupees(basePrice + weightCharge + typeCharge),
	}
}
