// README: Rental location model (branches, airports, delivery points).
package location

import "time"

type Location struct {
	ID           int64
	Name         string
	AddressLine1 string
	AddressLine2 *string
	City         string
	State        *string
	PostalCode   *string
	CountryCode  string
	Latitude     *float64
	Longitude    *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasCoordinates reports whether the location can be used for distance
// computations.
func (l *Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
