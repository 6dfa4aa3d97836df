// README: Vehicle group service (validation + store access).
package fleet

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound   = errors.New("vehicle group not found")
	ErrBadRequest = errors.New("invalid vehicle group")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, g *VehicleGroup) error {
	if err := validateGroup(g); err != nil {
		return err
	}
	return s.store.Create(ctx, g)
}

func (s *Service) Update(ctx context.Context, g *VehicleGroup) error {
	if g.ID == 0 {
		return ErrBadRequest
	}
	if err := validateGroup(g); err != nil {
		return err
	}
	return s.store.Update(ctx, g)
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.store.Deactivate(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*VehicleGroup, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]VehicleGroup, error) {
	return s.store.List(ctx, activeOnly)
}

func validateGroup(g *VehicleGroup) error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrBadRequest
	}
	if g.MinRentalDays < 1 {
		g.MinRentalDays = 1
	}
	if g.MaxRentalDays != nil && *g.MaxRentalDays < g.MinRentalDays {
		return ErrBadRequest
	}
	return nil
}
