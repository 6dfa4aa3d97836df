// README: One-way fee service; a missing city pair is a logged zero, not a failure.
package oneway

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"rentora/internal/types"
)

var (
	ErrNotFound   = errors.New("one-way fee not found")
	ErrBadRequest = errors.New("invalid one-way fee")
)

// Finder is the lookup surface the service needs; satisfied by *Store.
type Finder interface {
	FindActive(ctx context.Context, fromCity, toCity string) (*Fee, error)
}

type Service struct {
	store Finder
	admin *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store, admin: store}
}

// NewServiceWithFinder exists for tests that stub the lookup.
func NewServiceWithFinder(f Finder) *Service {
	return &Service{store: f}
}

// FeeFor returns the flat one-way fee for a pickup/dropoff city pair.
// Matching cities cost nothing. A missing pair is a configuration gap:
// it is logged and priced at zero rather than failing the booking.
func (s *Service) FeeFor(ctx context.Context, fromCity, toCity string) (decimal.Decimal, error) {
	if strings.EqualFold(strings.TrimSpace(fromCity), strings.TrimSpace(toCity)) {
		return decimal.Zero, nil
	}
	f, err := s.store.FindActive(ctx, fromCity, toCity)
	if errors.Is(err, ErrNotFound) {
		log.Printf("oneway: no fee configured for %s -> %s, defaulting to 0", fromCity, toCity)
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return f.FeeAmount, nil
}

func (s *Service) Create(ctx context.Context, f *Fee) error {
	if err := validateFee(f); err != nil {
		return err
	}
	return s.admin.Create(ctx, f)
}

func (s *Service) Update(ctx context.Context, f *Fee) error {
	if f.ID == 0 {
		return ErrBadRequest
	}
	if err := validateFee(f); err != nil {
		return err
	}
	return s.admin.Update(ctx, f)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.admin.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Fee, error) {
	return s.admin.List(ctx)
}

func validateFee(f *Fee) error {
	f.FromCity = strings.TrimSpace(f.FromCity)
	f.ToCity = strings.TrimSpace(f.ToCity)
	if f.FromCity == "" || f.ToCity == "" || strings.EqualFold(f.FromCity, f.ToCity) {
		return ErrBadRequest
	}
	if f.FeeAmount.IsNegative() {
		return ErrBadRequest
	}
	cur, ok := types.CanonicalCurrency(f.Currency)
	if !ok {
		return ErrBadRequest
	}
	f.Currency = cur
	return nil
}
