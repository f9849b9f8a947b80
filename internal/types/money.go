// README: Common money value object used across modules.
package types

import (
	"fmt"
	"math"
)

const CurrencyBRL = "BRL"

// Money holds an amount in minor units (centavos for BRL).
type Money struct {
	Amount   int64
	Currency string
}

// NewMoney rounds a decimal amount half away from zero to minor units.
func NewMoney(amount float64, currency string) Money {
	return Money{Amount: int64(math.Round(amount * 100)), Currency: currency}
}

func (m Money) Float() float64 {
	return float64(m.Amount) / 100
}

// Display renders the amount the way the store prints prices, e.g. "R$ 6.13".
func (m Money) Display() string {
	if m.Currency == CurrencyBRL {
		return fmt.Sprintf("R$ %.2f", m.Float())
	}
	return fmt.Sprintf("%s %.2f", m.Currency, m.Float())
}
