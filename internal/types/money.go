// README: Common money value object used across modules.
package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money couples an exact decimal amount with an ISO 4217 currency code.
// Amounts are kept unrounded through intermediate arithmetic; Round is
// applied once, at the end of a price composition.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

func MoneyFromFloat(v float64, currency string) Money {
	return Money{Amount: decimal.NewFromFloat(v), Currency: currency}
}

func (m Money) Add(v decimal.Decimal) Money {
	return Money{Amount: m.Amount.Add(v), Currency: m.Currency}
}

func (m Money) Sub(v decimal.Decimal) Money {
	return Money{Amount: m.Amount.Sub(v), Currency: m.Currency}
}

func (m Money) MulInt(n int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(n))), Currency: m.Currency}
}

func (m Money) IsNegative() bool { return m.Amount.IsNegative() }

// Round rounds half-up to the currency's minor unit. All currencies this
// system handles use two decimal places.
func (m Money) Round() Money {
	return Money{Amount: m.Amount.Round(int32(MinorUnits(m.Currency))), Currency: m.Currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(int32(MinorUnits(m.Currency))), m.Currency)
}

// MinorUnits returns the number of decimal places for a currency.
func MinorUnits(currency string) int {
	return 2
}
