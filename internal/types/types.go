// README: Common value objects shared across modules.
package types

// ID is an opaque document identifier (Firebase UID or UUID).
type ID string

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// DefaultCurrency is applied when a stored amount has no currency attached.
const DefaultCurrency = "INR"

func Rupees(amount int64) Money {
	return Money{Amount: amount, Currency: DefaultCurrency}
}
