// README: The pricing resolver: rate selection, tier lookup, fee/discount composition.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"rentora/internal/modules/rate"
	"rentora/internal/types"
)

// Resolve computes the price for a rental. It is deterministic and pure:
// the same input always yields the same (rate_id, tier_id, price_per_day)
// triple regardless of call order or concurrent resolutions.
//
// Selection order: among active rates valid on the start date, rates with
// an explicit tier for the vehicle group are preferred over rates relying
// on parent inheritance, then the most recently created. A rate whose
// min/max day bounds exclude the duration, or whose tier chain has no
// bucket for it, falls through to the next candidate. When all candidates
// are exhausted the group's fallback daily price is used with nil rate
// references; without a fallback the resolution fails.
func Resolve(in ResolveInput) (*Quote, error) {
	if in.Group == nil || in.Catalog == nil || in.Days < 1 {
		return nil, ErrBadRequest
	}

	var (
		selected *rate.Rate
		tier     *rate.Tier
		tierMiss bool
	)
	for _, r := range in.Catalog.ActiveRatesOn(in.StartDate, in.Group.ID) {
		if !r.CoversDuration(in.Days) {
			continue
		}
		t, err := in.Catalog.ResolveTier(r.ID, in.Group.ID, r.ClampDuration(in.Days))
		switch {
		case err == nil:
			selected, tier = r, t
		case err == rate.ErrNoTier:
			tierMiss = true
			continue
		case err == rate.ErrRateCycle:
			return nil, fmt.Errorf("%w: rate %d: %v", ErrAmbiguousRateConfiguration, r.ID, err)
		default:
			return nil, err
		}
		break
	}

	if tier == nil {
		return resolveFallback(in, tierMiss)
	}

	q := &Quote{
		VehicleGroupID: in.Group.ID,
		RateID:         &selected.ID,
		RateTierID:     &tier.ID,
		Days:           in.Days,
		PricePerDay:    tier.PricePerDay,
		Currency:       tier.Currency,
	}

	subtotal := tier.PricePerDay.Mul(decimal.NewFromInt(int64(in.Days)))
	subtotal, err := applyModifier(subtotal, selected, in.IsAgreement)
	if err != nil {
		return nil, err
	}
	return compose(q, subtotal, in)
}

// resolveFallback prices a rental from the group's starting price when no
// rate produced a tier. tierMiss distinguishes "rates matched but no bucket
// covered the duration" from "no rate matched at all" in the failure case.
func resolveFallback(in ResolveInput, tierMiss bool) (*Quote, error) {
	if in.Group.BasePricePerDay == nil {
		if tierMiss {
			return nil, fmt.Errorf("%w: vehicle group %d, %d days", ErrNoTierForDuration, in.Group.ID, in.Days)
		}
		return nil, fmt.Errorf("%w: vehicle group %d has no starting price", ErrNoRateAvailable, in.Group.ID)
	}
	q := &Quote{
		VehicleGroupID: in.Group.ID,
		Days:           in.Days,
		PricePerDay:    *in.Group.BasePricePerDay,
		Currency:       types.DefaultCurrency,
	}
	subtotal := q.PricePerDay.Mul(decimal.NewFromInt(int64(in.Days)))
	return compose(q, subtotal, in)
}

// applyModifier applies the rate's single optional price modifier to the
// subtotal. Direction is explicit in the stored value: percent -10 takes
// ten percent off, fixed 15 adds a flat 15. Agreement-only modifiers are
// skipped for ordinary bookings. An unknown modifier type is a
// configuration-integrity failure.
func applyModifier(subtotal decimal.Decimal, r *rate.Rate, isAgreement bool) (decimal.Decimal, error) {
	if r.ModifierType == nil || r.ModifierValue == nil {
		return subtotal, nil
	}
	if r.ModifierAgreementOnly && !isAgreement {
		return subtotal, nil
	}
	switch *r.ModifierType {
	case rate.ModifierPercent:
		factor := decimal.NewFromInt(1).Add(r.ModifierValue.Div(decimal.NewFromInt(100)))
		return subtotal.Mul(factor), nil
	case rate.ModifierFixed:
		return subtotal.Add(*r.ModifierValue), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: rate %d has modifier type %q", ErrAmbiguousRateConfiguration, r.ID, *r.ModifierType)
	}
}

// compose runs the fixed composition order: fees after the modified
// subtotal, promotion discount after all fees, rounding exactly once at
// the end. Intermediate figures stay exact to avoid compounding error.
func compose(q *Quote, subtotal decimal.Decimal, in ResolveInput) (*Quote, error) {
	total := subtotal.Add(in.OneWayFee).Add(in.DeliveryFee)

	discount := decimal.Zero
	if in.Promo != nil {
		discount = in.Promo.DiscountOn(total)
		total = total.Sub(discount)
		if total.IsNegative() {
			total = decimal.Zero
		}
	}

	round := func(v decimal.Decimal) decimal.Decimal {
		return types.NewMoney(v, q.Currency).Round().Amount
	}
	q.Subtotal = round(subtotal)
	q.OneWayFee = round(in.OneWayFee)
	q.DeliveryFee = round(in.DeliveryFee)
	q.Discount = round(discount)
	q.Total = round(total)
	return q, nil
}
