// README: Rate strategy model: rates, tiers, and day/hour/km range buckets.
package rate

import (
	"time"

	"github.com/shopspring/decimal"
)

// ModifierType is the sign-explicit kind of a price adjustment. Percent
// modifiers scale a subtotal by (1 + value/100); fixed modifiers add the
// value as a flat amount. Discounts carry a negative value ("Website -10%"
// is stored as percent/-10); the resolver never infers direction.
type ModifierType string

const (
	ModifierPercent ModifierType = "percent"
	ModifierFixed   ModifierType = "fixed"
)

func (m ModifierType) Valid() bool {
	return m == ModifierPercent || m == ModifierFixed
}

// Rate is a named pricing strategy with an inclusive validity window and an
// optional parent. A rate without an explicit tier for a vehicle group
// inherits its parent's tiers (walked upward, unbounded depth but expected
// shallow).
type Rate struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`

	ParentRateID *int64 `json:"parent_rate_id"`

	// Increment over the parent's prices, used by admin tooling when
	// deriving child tier tables.
	IncrementType  *ModifierType    `json:"increment_type"`
	IncrementValue *decimal.Decimal `json:"increment_value"`

	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`

	MinDays int  `json:"min_days"`
	MaxDays *int `json:"max_days"`

	UnlimitedKm bool   `json:"unlimited_km"`
	EditableBy  string `json:"editable_by"`
	IsActive    bool   `json:"is_active"`

	// Optional single price modifier applied to the subtotal.
	ModifierName          *string          `json:"modifier_name"`
	ModifierType          *ModifierType    `json:"modifier_type"`
	ModifierValue         *decimal.Decimal `json:"modifier_value"`
	ModifierAgreementOnly bool             `json:"modifier_agreement_only"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidOn reports whether date falls inside the rate's inclusive window.
func (r *Rate) ValidOn(date time.Time) bool {
	d := truncateDay(date)
	return !d.Before(truncateDay(r.ValidFrom)) && !d.After(truncateDay(r.ValidUntil))
}

// CoversDuration reports whether a rental of the given whole-day length is
// inside the rate's min/max bounds.
func (r *Rate) CoversDuration(days int) bool {
	if days < r.MinDays {
		return false
	}
	if r.MaxDays != nil && days > *r.MaxDays {
		return false
	}
	return true
}

// ClampDuration clamps a duration into the rate's bounds before bucket
// lookup.
func (r *Rate) ClampDuration(days int) int {
	if days < r.MinDays {
		return r.MinDays
	}
	if r.MaxDays != nil && days > *r.MaxDays {
		return *r.MaxDays
	}
	return days
}

// Tier is a price-per-day bucket for a specific (rate, vehicle group, day
// range). ToDays nil means the bucket is unbounded above. Buckets for a
// given (rate, vehicle group) must not overlap.
type Tier struct {
	ID             int64           `json:"id"`
	RateID         int64           `json:"rate_id"`
	VehicleGroupID int64           `json:"vehicle_group_id"`
	FromDays       int             `json:"from_days"`
	ToDays         *int            `json:"to_days"`
	PricePerDay    decimal.Decimal `json:"price_per_day"`
	Currency       string          `json:"currency"`
}

// Contains reports whether days falls inside the tier's bucket.
func (t *Tier) Contains(days int) bool {
	if days < t.FromDays {
		return false
	}
	return t.ToDays == nil || days <= *t.ToDays
}

// Overlaps reports whether two buckets share at least one duration value.
func (t *Tier) Overlaps(o *Tier) bool {
	if o.ToDays != nil && *o.ToDays < t.FromDays {
		return false
	}
	if t.ToDays != nil && *t.ToDays < o.FromDays {
		return false
	}
	return true
}

// DayRange is a descriptive label for the tier structure of a rate
// (e.g. "0 to 3 Days"). It carries no prices of its own.
type DayRange struct {
	ID       int64   `json:"id"`
	RateID   int64   `json:"rate_id"`
	FromDays int     `json:"from_days"`
	ToDays   *int    `json:"to_days"`
	Label    *string `json:"label"`
}

// HourRange supports hourly pricing policies on rates that enable them.
type HourRange struct {
	ID        int64 `json:"id"`
	RateID    int64 `json:"rate_id"`
	FromHours int   `json:"from_hours"`
	ToHours   *int  `json:"to_hours"`
}

// KmRange supports mileage-based pricing on rates without unlimited km.
type KmRange struct {
	ID     int64  `json:"id"`
	RateID int64  `json:"rate_id"`
	FromKm int    `json:"from_km"`
	ToKm   *int   `json:"to_km"`
	Label  string `json:"label"`
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
