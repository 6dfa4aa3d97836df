// README: Promo service: lookup with applicability checks, admin CRUD.
package promo

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("promo not found")
	ErrNotApplicable = errors.New("promo not applicable to this rental")
	ErrBadRequest    = errors.New("invalid promo")
)

// Lookuper is the code lookup surface the service needs; satisfied by *Store.
type Lookuper interface {
	GetByCode(ctx context.Context, code string) (*Promo, error)
}

type Service struct {
	store Lookuper
	admin *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store, admin: store}
}

// NewServiceWithLookuper exists for tests that stub the lookup.
func NewServiceWithLookuper(l Lookuper) *Service {
	return &Service{store: l}
}

// Resolve finds an active promo by code and checks it against the rental
// window. ErrNotApplicable distinguishes a real code outside its bounds
// from an unknown one.
func (s *Service) Resolve(ctx context.Context, code string, start time.Time, days int) (*Promo, error) {
	p, err := s.store.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if !p.AppliesTo(start, days) {
		return nil, ErrNotApplicable
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, p *Promo) error {
	if err := validatePromo(p); err != nil {
		return err
	}
	return s.admin.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, p *Promo) error {
	if p.ID == 0 {
		return ErrBadRequest
	}
	if err := validatePromo(p); err != nil {
		return err
	}
	return s.admin.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.admin.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Promo, error) {
	return s.admin.List(ctx)
}

func validatePromo(p *Promo) error {
	p.Code = strings.TrimSpace(p.Code)
	if p.Code == "" || strings.TrimSpace(p.Name) == "" {
		return ErrBadRequest
	}
	if !p.DiscountType.Valid() {
		return ErrBadRequest
	}
	if p.Value.IsNegative() {
		return ErrBadRequest
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return ErrBadRequest
	}
	if p.MinDays != nil && p.MaxDays != nil && *p.MaxDays < *p.MinDays {
		return ErrBadRequest
	}
	return nil
}
