// README: Pricing types: quote input, itemized result, typed resolution errors.
package pricing

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"rentora/internal/modules/fleet"
	"rentora/internal/modules/promo"
	"rentora/internal/modules/rate"
)

var (
	// ErrNoRateAvailable: no active rate's window covers the start date
	// and the vehicle group has no fallback starting price. Fatal to
	// booking creation.
	ErrNoRateAvailable = errors.New("no rate available for the requested date")

	// ErrNoTierForDuration: a rate matched but no bucket covers the
	// duration after the inheritance walk. Fatal.
	ErrNoTierForDuration = errors.New("no rate tier covers the rental duration")

	// ErrAmbiguousRateConfiguration: cyclic parent chain or malformed
	// modifier. A data-integrity defect for administrators, never worked
	// around silently.
	ErrAmbiguousRateConfiguration = errors.New("ambiguous rate configuration")

	ErrBadRequest = errors.New("invalid pricing request")
)

// ResolveInput carries everything the pure resolver needs. All reference
// data arrives pre-loaded; Resolve performs no I/O and has no side effects,
// so role checks and persistence live entirely with the caller.
type ResolveInput struct {
	Group   *fleet.VehicleGroup
	Catalog *rate.Catalog

	StartDate time.Time
	Days      int

	OneWayFee   decimal.Decimal
	DeliveryFee decimal.Decimal

	Promo       *promo.Promo
	IsAgreement bool
}

// Quote is the resolver's output: the figures persisted onto the booking
// snapshot. RateID and RateTierID are nil when the group's fallback price
// was used.
type Quote struct {
	VehicleGroupID int64  `json:"vehicle_group_id"`
	RateID         *int64 `json:"rate_id"`
	RateTierID     *int64 `json:"rate_tier_id"`

	Days        int             `json:"days"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	Currency    string          `json:"currency"`

	Subtotal    decimal.Decimal `json:"subtotal"`
	OneWayFee   decimal.Decimal `json:"one_way_fee"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// RentalDays converts a pickup/dropoff range into whole rental days.
// Partial days count as full ones; the minimum rental is one day.
func RentalDays(pickup, dropoff time.Time) int {
	d := int(math.Ceil(dropoff.Sub(pickup).Hours() / 24))
	if d < 1 {
		return 1
	}
	return d
}
