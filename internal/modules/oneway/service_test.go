package oneway

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

// stubFinder is a test double for the fee lookup.
type stubFinder struct {
	fees map[string]*Fee
}

func (s *stubFinder) FindActive(_ context.Context, from, to string) (*Fee, error) {
	if f, ok := s.fees[from+"|"+to]; ok {
		return f, nil
	}
	return nil, ErrNotFound
}

func TestFeeForKnownPair(t *testing.T) {
	svc := NewServiceWithFinder(&stubFinder{fees: map[string]*Fee{
		"Tbilisi|Batumi": {FromCity: "Tbilisi", ToCity: "Batumi", FeeAmount: decimal.RequireFromString("60"), Currency: "EUR", IsActive: true},
	}})

	fee, err := svc.FeeFor(context.Background(), "Tbilisi", "Batumi")
	if err != nil {
		t.Fatalf("FeeFor: %v", err)
	}
	if !fee.Equal(decimal.RequireFromString("60")) {
		t.Errorf("fee = %s, want 60", fee)
	}
}

func TestFeeForMissingPairDefaultsToZero(t *testing.T) {
	svc := NewServiceWithFinder(&stubFinder{fees: map[string]*Fee{}})

	fee, err := svc.FeeFor(context.Background(), "Tbilisi", "Kutaisi")
	if err != nil {
		t.Fatalf("FeeFor for missing pair must not error, got %v", err)
	}
	if !fee.IsZero() {
		t.Errorf("fee = %s, want 0", fee)
	}
}

func TestFeeForSameCityIsZero(t *testing.T) {
	svc := NewServiceWithFinder(&stubFinder{fees: map[string]*Fee{
		"Tbilisi|Tbilisi": {FeeAmount: decimal.RequireFromString("99")},
	}})

	fee, err := svc.FeeFor(context.Background(), "Tbilisi", "tbilisi ")
	if err != nil {
		t.Fatalf("FeeFor: %v", err)
	}
	if !fee.IsZero() {
		t.Errorf("same-city fee = %s, want 0", fee)
	}
}
