package location

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func floatPtr(v float64) *float64 { return &v }

type stubGetter struct {
	locs map[int64]*Location
}

func (s *stubGetter) Get(_ context.Context, id int64) (*Location, error) {
	if l, ok := s.locs[id]; ok {
		return l, nil
	}
	return nil, ErrNotFound
}

type stubRouter struct {
	km  float64
	err error
}

func (s *stubRouter) DrivingDistanceKm(context.Context, float64, float64, float64, float64) (float64, error) {
	return s.km, s.err
}

func testLocations() *stubGetter {
	return &stubGetter{locs: map[int64]*Location{
		1: {ID: 1, City: "Tbilisi", Latitude: floatPtr(41.7151), Longitude: floatPtr(44.8271)},
		2: {ID: 2, City: "Batumi", Latitude: floatPtr(41.6168), Longitude: floatPtr(41.6367)},
		3: {ID: 3, City: "Kutaisi"}, // no coordinates
	}}
}

func TestHaversineKm(t *testing.T) {
	// Tbilisi to Batumi is roughly 265 km great-circle.
	got := haversineKm(41.7151, 44.8271, 41.6168, 41.6367)
	if math.Abs(got-265) > 10 {
		t.Errorf("haversineKm = %.1f, want ~265", got)
	}
}

func TestDeliveryFeeSameLocation(t *testing.T) {
	svc := NewServiceWithGetter(testLocations(), nil, decimal.RequireFromString("0.5"))
	fee, err := svc.DeliveryFee(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("DeliveryFee: %v", err)
	}
	if !fee.IsZero() {
		t.Errorf("fee = %s, want 0", fee)
	}
}

func TestDeliveryFeeUsesRouter(t *testing.T) {
	svc := NewServiceWithGetter(testLocations(), &stubRouter{km: 300}, decimal.RequireFromString("0.5"))
	fee, err := svc.DeliveryFee(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("DeliveryFee: %v", err)
	}
	if !fee.Equal(decimal.NewFromInt(150)) {
		t.Errorf("fee = %s, want 150", fee)
	}
}

func TestDeliveryFeeFallsBackToHaversine(t *testing.T) {
	svc := NewServiceWithGetter(testLocations(), &stubRouter{err: errors.New("quota")}, decimal.NewFromInt(1))
	fee, err := svc.DeliveryFee(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("DeliveryFee: %v", err)
	}
	km, _ := fee.Float64()
	if math.Abs(km-265) > 10 {
		t.Errorf("fallback fee = %.1f, want ~265 at 1/km", km)
	}
}

func TestDeliveryFeeMissingCoordinates(t *testing.T) {
	svc := NewServiceWithGetter(testLocations(), nil, decimal.NewFromInt(1))
	fee, err := svc.DeliveryFee(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("DeliveryFee: %v", err)
	}
	if !fee.IsZero() {
		t.Errorf("fee = %s, want 0 for location without coordinates", fee)
	}
}
