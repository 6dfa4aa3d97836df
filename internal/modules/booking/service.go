// README: Booking service: quote-then-book, status transitions.
package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentora/internal/modules/pricing"
)

var (
	ErrNotFound   = errors.New("booking not found")
	ErrBadRequest = errors.New("invalid booking request")

	// ErrStatusConflict means the booking was not in the expected status,
	// either because the transition is not allowed or because a concurrent
	// update won.
	ErrStatusConflict = errors.New("booking status conflict")
)

// Quoter resolves a price for the requested rental. The booking service
// never computes prices itself; it persists what the resolver returned.
type Quoter interface {
	Quote(ctx context.Context, cmd pricing.QuoteCommand) (*pricing.Quote, error)
}

type Service struct {
	store  *Store
	quoter Quoter
}

func NewService(store *Store, quoter Quoter) *Service {
	return &Service{store: store, quoter: quoter}
}

type CreateCommand struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	VehicleGroupID int64
	PickupDate     time.Time
	DropoffDate    time.Time
	PickupCity     string
	DropoffCity    string

	VehicleLocationID int64
	PickupLocationID  int64

	PromoCode   string
	IsAgreement bool
}

// Create resolves the price and persists the booking in one step. Every
// figure on the quote is denormalized onto the booking row, so the agreed
// price survives any later change to rates, tiers and fee tables.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Booking, error) {
	if strings.TrimSpace(cmd.CustomerName) == "" || strings.TrimSpace(cmd.CustomerEmail) == "" {
		return nil, ErrBadRequest
	}

	q, err := s.quoter.Quote(ctx, pricing.QuoteCommand{
		VehicleGroupID:    cmd.VehicleGroupID,
		PickupDate:        cmd.PickupDate,
		DropoffDate:       cmd.DropoffDate,
		PickupCity:        cmd.PickupCity,
		DropoffCity:       cmd.DropoffCity,
		VehicleLocationID: cmd.VehicleLocationID,
		PickupLocationID:  cmd.PickupLocationID,
		PromoCode:         cmd.PromoCode,
		IsAgreement:       cmd.IsAgreement,
	})
	if err != nil {
		return nil, err
	}

	groupID := q.VehicleGroupID
	b := &Booking{
		Reference:      newReference(),
		CustomerName:   cmd.CustomerName,
		CustomerEmail:  cmd.CustomerEmail,
		CustomerPhone:  cmd.CustomerPhone,
		VehicleGroupID: &groupID,
		RateID:         q.RateID,
		RateTierID:     q.RateTierID,
		PickupDate:     cmd.PickupDate,
		DropoffDate:    cmd.DropoffDate,
		Days:           q.Days,
		PickupCity:     cmd.PickupCity,
		DropoffCity:    cmd.DropoffCity,
		PricePerDay:    q.PricePerDay,
		Subtotal:       q.Subtotal,
		OneWayFee:      q.OneWayFee,
		DeliveryFee:    q.DeliveryFee,
		Discount:       q.Discount,
		TotalAmount:    q.Total,
		Currency:       q.Currency,
		Status:         StatusPending,
		PaymentStatus:  PaymentUnpaid,
	}
	if cmd.VehicleLocationID != 0 {
		b.VehicleLocationID = &cmd.VehicleLocationID
	}
	if cmd.PickupLocationID != 0 {
		b.PickupLocationID = &cmd.PickupLocationID
	}
	if cmd.PromoCode != "" {
		code := cmd.PromoCode
		b.PromoCode = &code
	}

	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Booking, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Booking, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, limit, offset)
}

// Transition moves a booking to a new status, enforcing the lifecycle
// table and losing cleanly on concurrent updates.
func (s *Service) Transition(ctx context.Context, id int64, to Status) (*Booking, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrStatusConflict, b.Status, to)
	}
	if err := s.store.UpdateStatus(ctx, id, b.Status, to); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

func (s *Service) MarkPaid(ctx context.Context, id int64) error {
	return s.store.UpdatePaymentStatus(ctx, id, PaymentPaid)
}

func newReference() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return "BK-" + strings.ToUpper(hex.EncodeToString(buf))
}
