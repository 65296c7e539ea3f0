// README: Price breakdown for a pickup request.
package pricing

import "github.com/ayishathul-rinsha/Binnit/internal/types"

type Breakdown struct {
	BasePrice    types.Money `json:"basePrice"`
	WeightCharge types.Money `json:"weightCharge"`
	TypeCharge   types.Money `json:"typeCharge"`
	Total        types.Money `json:"total"`
}
