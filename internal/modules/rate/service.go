// README: Rate service: catalog access, CRUD with configuration validation.
package rate

import (
	"context"
	"errors"
	"strings"

	"rentora/internal/types"
)

var (
	ErrBadRequest    = errors.New("invalid rate configuration")
	ErrTierOverlap   = errors.New("tier day ranges overlap for the vehicle group")
	ErrDuplicateName = errors.New("rate name already in use")
)

type Service struct {
	store *Store
	cache *CatalogCache
}

func NewService(store *Store, cache *CatalogCache) *Service {
	return &Service{store: store, cache: cache}
}

// Catalog returns the current reference-data snapshot, served from the
// cache when warm.
func (s *Service) Catalog(ctx context.Context) (*Catalog, error) {
	if cat := s.cache.Get(ctx); cat != nil {
		return cat, nil
	}
	cat, err := s.store.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cat)
	return cat, nil
}

func (s *Service) Create(ctx context.Context, r *Rate) error {
	if err := s.validateRate(ctx, r); err != nil {
		return err
	}
	if err := s.store.Create(ctx, r); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) Update(ctx context.Context, r *Rate) error {
	if r.ID == 0 {
		return ErrBadRequest
	}
	if err := s.validateRate(ctx, r); err != nil {
		return err
	}
	if err := s.store.Update(ctx, r); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Rate, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Rate, error) {
	return s.store.List(ctx)
}

func (s *Service) TiersForRate(ctx context.Context, rateID int64) ([]Tier, error) {
	return s.store.TiersForRate(ctx, rateID)
}

// CreateTier validates the non-overlap invariant against the current
// catalog before inserting.
func (s *Service) CreateTier(ctx context.Context, t *Tier) error {
	if err := s.validateTier(ctx, t); err != nil {
		return err
	}
	if err := s.store.CreateTier(ctx, t); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// CreateTiersBulk inserts a full tier table for a rate, checking overlap
// across both existing and incoming buckets.
func (s *Service) CreateTiersBulk(ctx context.Context, tiers []Tier) error {
	for i := range tiers {
		if err := s.validateTier(ctx, &tiers[i]); err != nil {
			return err
		}
		for j := 0; j < i; j++ {
			if tiers[j].RateID == tiers[i].RateID &&
				tiers[j].VehicleGroupID == tiers[i].VehicleGroupID &&
				tiers[j].Overlaps(&tiers[i]) {
				return ErrTierOverlap
			}
		}
	}
	for i := range tiers {
		if err := s.store.CreateTier(ctx, &tiers[i]); err != nil {
			return err
		}
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) UpdateTier(ctx context.Context, t *Tier) error {
	if err := s.validateTier(ctx, t); err != nil {
		return err
	}
	if err := s.store.UpdateTier(ctx, t); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) DeleteTier(ctx context.Context, id int64) error {
	if err := s.store.DeleteTier(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) CreateDayRange(ctx context.Context, d *DayRange) error {
	if d.ToDays != nil && *d.ToDays < d.FromDays {
		return ErrBadRequest
	}
	if err := s.store.CreateDayRange(ctx, d); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) CreateHourRange(ctx context.Context, h *HourRange) error {
	if h.ToHours != nil && *h.ToHours < h.FromHours {
		return ErrBadRequest
	}
	if err := s.store.CreateHourRange(ctx, h); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) CreateKmRange(ctx context.Context, k *KmRange) error {
	if k.ToKm != nil && *k.ToKm < k.FromKm {
		return ErrBadRequest
	}
	if err := s.store.CreateKmRange(ctx, k); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) validateRate(ctx context.Context, r *Rate) error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrBadRequest
	}
	if r.ValidUntil.Before(r.ValidFrom) {
		return ErrBadRequest
	}
	if r.MinDays < 0 {
		return ErrBadRequest
	}
	if r.MaxDays != nil && *r.MaxDays < r.MinDays {
		return ErrBadRequest
	}
	if r.ModifierType != nil && !r.ModifierType.Valid() {
		return ErrBadRequest
	}
	if r.IncrementType != nil && !r.IncrementType.Valid() {
		return ErrBadRequest
	}
	if r.ParentRateID != nil {
		if *r.ParentRateID == r.ID {
			return ErrBadRequest
		}
		if _, err := s.store.Get(ctx, *r.ParentRateID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) validateTier(ctx context.Context, t *Tier) error {
	if t.RateID == 0 || t.VehicleGroupID == 0 {
		return ErrBadRequest
	}
	if t.FromDays < 0 || (t.ToDays != nil && *t.ToDays < t.FromDays) {
		return ErrBadRequest
	}
	if t.PricePerDay.IsNegative() {
		return ErrBadRequest
	}
	cur, ok := types.CanonicalCurrency(t.Currency)
	if !ok {
		return ErrBadRequest
	}
	t.Currency = cur

	cat, err := s.store.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	if cat.CheckTierOverlap(t) {
		return ErrTierOverlap
	}
	return nil
}
