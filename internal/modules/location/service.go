// README: Location service; delivery fee from road distance with haversine fallback.
package location

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("location not found")

// Getter is the lookup surface the service needs; satisfied by *Store.
type Getter interface {
	Get(ctx context.Context, id int64) (*Location, error)
}

// DistanceEstimator returns the driving distance in kilometres between two
// coordinate pairs. Satisfied by the maps routing client.
type DistanceEstimator interface {
	DrivingDistanceKm(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (float64, error)
}

type Service struct {
	store    Getter
	admin    *Store
	router   DistanceEstimator
	feePerKm decimal.Decimal
}

func NewService(store *Store, router DistanceEstimator, feePerKm decimal.Decimal) *Service {
	return &Service{store: store, admin: store, router: router, feePerKm: feePerKm}
}

// NewServiceWithGetter exists for tests that stub the store.
func NewServiceWithGetter(g Getter, router DistanceEstimator, feePerKm decimal.Decimal) *Service {
	return &Service{store: g, router: router, feePerKm: feePerKm}
}

func (s *Service) Get(ctx context.Context, id int64) (*Location, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, l *Location) error {
	return s.admin.Create(ctx, l)
}

func (s *Service) List(ctx context.Context) ([]Location, error) {
	return s.admin.List(ctx)
}

// DeliveryFee computes the charge for bringing a vehicle from where it
// currently sits to the pickup location. Matching locations cost nothing.
// Road distance is preferred; when the routing client is absent or fails,
// the great-circle distance is used instead. Locations without coordinates
// price delivery at zero with a logged configuration gap.
func (s *Service) DeliveryFee(ctx context.Context, vehicleLocID, pickupLocID int64) (decimal.Decimal, error) {
	if vehicleLocID == pickupLocID {
		return decimal.Zero, nil
	}
	from, err := s.store.Get(ctx, vehicleLocID)
	if err != nil {
		return decimal.Zero, err
	}
	to, err := s.store.Get(ctx, pickupLocID)
	if err != nil {
		return decimal.Zero, err
	}
	if !from.HasCoordinates() || !to.HasCoordinates() {
		log.Printf("location: missing coordinates for delivery %d -> %d, defaulting fee to 0", vehicleLocID, pickupLocID)
		return decimal.Zero, nil
	}

	km := 0.0
	if s.router != nil {
		km, err = s.router.DrivingDistanceKm(ctx, *from.Latitude, *from.Longitude, *to.Latitude, *to.Longitude)
		if err != nil {
			log.Printf("location: routing failed (%v), falling back to haversine", err)
			km = 0
		}
	}
	if km == 0 {
		km = haversineKm(*from.Latitude, *from.Longitude, *to.Latitude, *to.Longitude)
	}
	return s.feePerKm.Mul(decimal.NewFromFloat(km)), nil
}
