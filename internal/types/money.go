// README: Common money value object used across modules.
package types

import "fmt"

// Money is an amount in the smallest currency unit. The fare rules operate
// in whole pesos, so Amount carries no centavo scaling for PHP.
type Money struct {
	Amount   int64  `json:"amount" firestore:"amount"`
	Currency string `json:"currency" firestore:"currency"`
}

// Display renders the amount the way the booking screens show it, e.g. "₱350".
func (m Money) Display() string {
	symbol := m.Currency
	if m.Currency == "PHP" {
		symbol = "₱"
	}
	return fmt.Sprintf("%s%d", symbol, m.Amount)
}
