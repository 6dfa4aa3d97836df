// README: Promo code model: percent or fixed discounts with validity bounds.
package promo

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

func (d DiscountType) Valid() bool {
	return d == DiscountPercent || d == DiscountFixed
}

// Promo is a discount code. Discounts apply to the fee-inclusive total of a
// quote, after one-way and delivery fees.
type Promo struct {
	ID          int64
	Code        string
	Name        string
	Description *string

	DiscountType DiscountType
	Value        decimal.Decimal
	Currency     *string // only meaningful for fixed discounts

	StartDate *time.Time
	EndDate   *time.Time

	MinDays *int
	MaxDays *int
	Active  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesTo reports whether the promo is usable for a rental starting on
// start and lasting days whole days.
func (p *Promo) AppliesTo(start time.Time, days int) bool {
	if !p.Active {
		return false
	}
	d := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	if p.StartDate != nil && d.Before(*p.StartDate) {
		return false
	}
	if p.EndDate != nil && d.After(*p.EndDate) {
		return false
	}
	if p.MinDays != nil && days < *p.MinDays {
		return false
	}
	if p.MaxDays != nil && days > *p.MaxDays {
		return false
	}
	return true
}

// DiscountOn returns the discount amount for a fee-inclusive total.
func (p *Promo) DiscountOn(total decimal.Decimal) decimal.Decimal {
	if p.DiscountType == DiscountPercent {
		return total.Mul(p.Value).Div(decimal.NewFromInt(100))
	}
	return p.Value
}
