// README: One-way fee model: flat surcharge per (from_city, to_city) pair.
package oneway

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fee is the flat surcharge applied when pickup and dropoff cities differ.
// The (FromCity, ToCity) pair is unique and direction matters.
type Fee struct {
	ID        int64
	FromCity  string
	ToCity    string
	FeeAmount decimal.Decimal
	Currency  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
