// README: Booking aggregate with a frozen price snapshot, plus status definitions.
package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking is a confirmed rental. The price fields are a snapshot taken at
// creation time: group, rate and tier ids record provenance only, and later
// edits or deletes on the referenced rows never change what the customer
// was quoted.
type Booking struct {
	ID        int64
	Reference string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	VehicleGroupID *int64
	RateID         *int64
	RateTierID     *int64

	PickupDate  time.Time
	DropoffDate time.Time
	Days        int

	PickupCity  string
	DropoffCity string

	VehicleLocationID *int64
	PickupLocationID  *int64

	PricePerDay decimal.Decimal
	Subtotal    decimal.Decimal
	OneWayFee   decimal.Decimal
	DeliveryFee decimal.Decimal
	Discount    decimal.Decimal
	TotalAmount decimal.Decimal
	Currency    string
	PromoCode   *string

	Status        Status
	PaymentStatus PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllowedTransitions represents the booking lifecycle as code.
var AllowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusActive, StatusCancelled},
	StatusActive:    {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	for _, next := range AllowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
