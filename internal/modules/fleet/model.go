// README: Vehicle group reference data (categories of interchangeable vehicles).
package fleet

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// VehicleGroup is a named category of interchangeable vehicles sharing a
// price structure. Groups are soft-disabled via Active; rows referenced by
// rates or bookings are never hard-deleted.
type VehicleGroup struct {
	ID          int64
	Name        string
	Description *string

	Category     *string
	Seats        *int
	Doors        *int
	Transmission *string
	FuelType     *string

	// Fallback prices used when no rate tier matches a booking.
	BasePricePerDay   *decimal.Decimal
	BasePricePerWeek  *decimal.Decimal
	BasePricePerMonth *decimal.Decimal

	Features []string

	ImageURL     *string
	DisplayOrder int
	Active       bool

	MinRentalDays int
	MaxRentalDays *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// joinFeatures and splitFeatures convert between the comma-separated DB
// representation and the in-memory slice.
func joinFeatures(features []string) string {
	return strings.Join(features, ",")
}

func splitFeatures(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
