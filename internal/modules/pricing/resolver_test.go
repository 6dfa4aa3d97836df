// README: Resolver tests: selection, inheritance, composition, rounding.
package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"rentora/internal/modules/fleet"
	"rentora/internal/modules/promo"
	"rentora/internal/modules/rate"
)

var testDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }

func testGroup() *fleet.VehicleGroup {
	return &fleet.VehicleGroup{ID: 1, Name: "Compact", Active: true, MinRentalDays: 1}
}

// mainCatalog builds the canonical fixture: one rate "MAIN" with two
// buckets for group 1, 1-3 days at 30 and 4-7 days at 25.
func mainCatalog() *rate.Catalog {
	c := rate.NewCatalog()
	c.Rates[10] = &rate.Rate{
		ID:         10,
		Name:       "MAIN",
		ValidFrom:  testDate.AddDate(0, -1, 0),
		ValidUntil: testDate.AddDate(1, 0, 0),
		MinDays:    1,
		IsActive:   true,
		CreatedAt:  testDate.AddDate(0, -1, 0),
	}
	c.TiersByRate[10] = []rate.Tier{
		{ID: 101, RateID: 10, VehicleGroupID: 1, FromDays: 1, ToDays: intPtr(3), PricePerDay: decimal.NewFromInt(30), Currency: "EUR"},
		{ID: 102, RateID: 10, VehicleGroupID: 1, FromDays: 4, ToDays: intPtr(7), PricePerDay: decimal.NewFromInt(25), Currency: "EUR"},
	}
	return c
}

func mustResolve(t *testing.T, in ResolveInput) *Quote {
	t.Helper()
	q, err := Resolve(in)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return q
}

func assertAmount(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestResolveFiveDayRentalWithOneWayFee(t *testing.T) {
	q := mustResolve(t, ResolveInput{
		Group:     testGroup(),
		Catalog:   mainCatalog(),
		StartDate: testDate,
		Days:      5,
		OneWayFee: decimal.NewFromInt(60),
	})

	if q.RateID == nil || *q.RateID != 10 {
		t.Fatalf("RateID = %v, want 10", q.RateID)
	}
	if q.RateTierID == nil || *q.RateTierID != 102 {
		t.Fatalf("RateTierID = %v, want 102", q.RateTierID)
	}
	assertAmount(t, "PricePerDay", q.PricePerDay, "25")
	assertAmount(t, "Subtotal", q.Subtotal, "125")
	assertAmount(t, "OneWayFee", q.OneWayFee, "60")
	assertAmount(t, "Total", q.Total, "185")
	if q.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", q.Currency)
	}
}

func TestResolveDeterministic(t *testing.T) {
	in := ResolveInput{
		Group:     testGroup(),
		Catalog:   mainCatalog(),
		StartDate: testDate,
		Days:      5,
	}
	first := mustResolve(t, in)
	for i := 0; i < 100; i++ {
		q := mustResolve(t, in)
		if *q.RateID != *first.RateID || *q.RateTierID != *first.RateTierID || !q.Total.Equal(first.Total) {
			t.Fatalf("resolution %d differs: (%d,%d,%s) vs (%d,%d,%s)",
				i, *q.RateID, *q.RateTierID, q.Total, *first.RateID, *first.RateTierID, first.Total)
		}
	}
}

func TestResolveFallbackWhenNoBucketCoversDuration(t *testing.T) {
	g := testGroup()
	base := decimal.NewFromInt(40)
	g.BasePricePerDay = &base

	// 10 days is past every bucket; the group's starting price applies and
	// no rate references are recorded.
	q := mustResolve(t, ResolveInput{
		Group:     g,
		Catalog:   mainCatalog(),
		StartDate: testDate,
		Days:      10,
	})
	if q.RateID != nil || q.RateTierID != nil {
		t.Fatalf("rate refs = (%v, %v), want nil", q.RateID, q.RateTierID)
	}
	assertAmount(t, "PricePerDay", q.PricePerDay, "40")
	assertAmount(t, "Total", q.Total, "400")
}

func TestResolveNoTierForDuration(t *testing.T) {
	_, err := Resolve(ResolveInput{
		Group:     testGroup(),
		Catalog:   mainCatalog(),
		StartDate: testDate,
		Days:      10,
	})
	if !errors.Is(err, ErrNoTierForDuration) {
		t.Fatalf("err = %v, want ErrNoTierForDuration", err)
	}
}

func TestResolveNoRateAvailable(t *testing.T) {
	_, err := Resolve(ResolveInput{
		Group:     testGroup(),
		Catalog:   rate.NewCatalog(),
		StartDate: testDate,
		Days:      3,
	})
	if !errors.Is(err, ErrNoRateAvailable) {
		t.Fatalf("err = %v, want ErrNoRateAvailable", err)
	}
}

func TestResolveDurationOutsideRateBounds(t *testing.T) {
	c := mainCatalog()
	c.Rates[10].MinDays = 3
	c.Rates[10].MaxDays = intPtr(7)

	// Duration below MinDays: the rate does not apply and there is no
	// fallback price.
	_, err := Resolve(ResolveInput{
		Group:     testGroup(),
		Catalog:   c,
		StartDate: testDate,
		Days:      2,
	})
	if !errors.Is(err, ErrNoRateAvailable) {
		t.Fatalf("err = %v, want ErrNoRateAvailable", err)
	}
}

func TestResolveInheritsParentTiers(t *testing.T) {
	c := mainCatalog()
	// Retire the parent so only the child is a candidate; it carries no
	// tiers of its own and must inherit the parent's buckets.
	c.Rates[10].IsActive = false
	c.Rates[20] = &rate.Rate{
		ID:           20,
		Name:         "SUMMER",
		ParentRateID: int64Ptr(10),
		ValidFrom:    testDate.AddDate(0, -1, 0),
		ValidUntil:   testDate.AddDate(1, 0, 0),
		MinDays:      1,
		IsActive:     true,
		CreatedAt:    testDate,
	}

	q := mustResolve(t, ResolveInput{
		Group:     testGroup(),
		Catalog:   c,
		StartDate: testDate,
		Days:      2,
	})
	if *q.RateID != 20 {
		t.Errorf("RateID = %d, want the child rate 20", *q.RateID)
	}
	if *q.RateTierID != 101 {
		t.Errorf("RateTierID = %d, want the inherited tier 101", *q.RateTierID)
	}
	assertAmount(t, "PricePerDay", q.PricePerDay, "30")
}

func TestResolveCyclicParentChain(t *testing.T) {
	c := rate.NewCatalog()
	window := func(r *rate.Rate) *rate.Rate {
		r.ValidFrom = testDate.AddDate(0, -1, 0)
		r.ValidUntil = testDate.AddDate(1, 0, 0)
		r.MinDays = 1
		r.IsActive = true
		return r
	}
	c.Rates[1] = window(&rate.Rate{ID: 1, Name: "A", ParentRateID: int64Ptr(2)})
	c.Rates[2] = window(&rate.Rate{ID: 2, Name: "B", ParentRateID: int64Ptr(1)})

	_, err := Resolve(ResolveInput{
		Group:     testGroup(),
		Catalog:   c,
		StartDate: testDate,
		Days:      3,
	})
	if !errors.Is(err, ErrAmbiguousRateConfiguration) {
		t.Fatalf("err = %v, want ErrAmbiguousRateConfiguration", err)
	}
}

func TestResolveRoundsOnceAtTheEnd(t *testing.T) {
	c := mainCatalog()
	c.TiersByRate[10] = []rate.Tier{
		{ID: 101, RateID: 10, VehicleGroupID: 1, FromDays: 1, ToDays: intPtr(7), PricePerDay: decimal.RequireFromString("33.335"), Currency: "EUR"},
	}

	// 33.335 * 3 = 100.005. Rounding per step would give 100.00 or 100.02;
	// a single terminal half-up rounding gives 100.01.
	q := mustResolve(t, ResolveInput{
		Group:     testGroup(),
		Catalog:   c,
		StartDate: testDate,
		Days:      3,
	})
	assertAmount(t, "Total", q.Total, "100.01")
}

func TestResolveModifier(t *testing.T) {
	pct := rate.ModifierPercent
	fixed := rate.ModifierFixed
	minusTen := decimal.NewFromInt(-10)
	plusFifteen := decimal.NewFromInt(15)

	cases := []struct {
		name        string
		modType     *rate.ModifierType
		modValue    *decimal.Decimal
		agreement   bool
		isAgreement bool
		wantTotal   string
	}{
		// 5 days lands in the [4,7] bucket, so the pre-modifier subtotal is 5*25.
		{"no modifier", nil, nil, false, false, "125"},
		{"percent discount", &pct, &minusTen, false, false, "112.5"},
		{"fixed surcharge", &fixed, &plusFifteen, false, false, "140"},
		{"agreement-only skipped", &pct, &minusTen, true, false, "125"},
		{"agreement-only applied", &pct, &minusTen, true, true, "112.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := mainCatalog()
			c.Rates[10].ModifierType = tc.modType
			c.Rates[10].ModifierValue = tc.modValue
			c.Rates[10].ModifierAgreementOnly = tc.agreement

			q := mustResolve(t, ResolveInput{
				Group:       testGroup(),
				Catalog:     c,
				StartDate:   testDate,
				Days:        5,
				IsAgreement: tc.isAgreement,
			})
			assertAmount(t, "Total", q.Total, tc.wantTotal)
		})
	}
}

func TestResolveUnknownModifierType(t *testing.T) {
	c := mainCatalog()
	bogus := rate.ModifierType("percentage")
	v := decimal.NewFromInt(-10)
	c.Rates[10].ModifierType = &bogus
	c.Rates[10].ModifierValue = &v

	_, err := Resolve(ResolveInput{
		Group:     testGroup(),
		Catalog:   c,
		StartDate: testDate,
		Days:      5,
	})
	if !errors.Is(err, ErrAmbiguousRateConfiguration) {
		t.Fatalf("err = %v, want ErrAmbiguousRateConfiguration", err)
	}
}

func TestResolvePromoAppliesAfterFees(t *testing.T) {
	q := mustResolve(t, ResolveInput{
		Group:       testGroup(),
		Catalog:     mainCatalog(),
		StartDate:   testDate,
		Days:        5,
		OneWayFee:   decimal.NewFromInt(60),
		DeliveryFee: decimal.NewFromInt(15),
		Promo: &promo.Promo{
			Code:         "SAVE10",
			DiscountType: promo.DiscountPercent,
			Value:        decimal.NewFromInt(10),
			Active:       true,
		},
	})

	// 125 + 60 + 15 = 200; a 10% promo discounts the fee-inclusive total.
	assertAmount(t, "Subtotal", q.Subtotal, "125")
	assertAmount(t, "Discount", q.Discount, "20")
	assertAmount(t, "Total", q.Total, "180")
}

func TestResolveFixedPromoNeverGoesNegative(t *testing.T) {
	q := mustResolve(t, ResolveInput{
		Group:     testGroup(),
		Catalog:   mainCatalog(),
		StartDate: testDate,
		Days:      1,
		Promo: &promo.Promo{
			Code:         "HUGE",
			DiscountType: promo.DiscountFixed,
			Value:        decimal.NewFromInt(500),
			Active:       true,
		},
	})
	assertAmount(t, "Total", q.Total, "0")
}

func TestResolvePrefersRateWithDirectTier(t *testing.T) {
	c := mainCatalog()
	// A newer rate without a tier for group 1 must not win over the older
	// rate that prices the group directly.
	c.Rates[30] = &rate.Rate{
		ID:         30,
		Name:       "GENERIC",
		ValidFrom:  testDate.AddDate(0, -1, 0),
		ValidUntil: testDate.AddDate(1, 0, 0),
		MinDays:    1,
		IsActive:   true,
		CreatedAt:  testDate,
	}
	c.TiersByRate[30] = []rate.Tier{
		{ID: 301, RateID: 30, VehicleGroupID: 2, FromDays: 1, ToDays: intPtr(30), PricePerDay: decimal.NewFromInt(99), Currency: "EUR"},
	}

	q := mustResolve(t, ResolveInput{
		Group:     testGroup(),
		Catalog:   c,
		StartDate: testDate,
		Days:      2,
	})
	if *q.RateID != 10 {
		t.Errorf("RateID = %d, want 10", *q.RateID)
	}
}

func TestRentalDays(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		dropoff time.Time
		want    int
	}{
		{"exact three days", base.AddDate(0, 0, 3), 3},
		{"partial day rounds up", base.AddDate(0, 0, 3).Add(2 * time.Hour), 4},
		{"under a day is one day", base.Add(5 * time.Hour), 1},
		{"same instant is one day", base, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RentalDays(base, tc.dropoff); got != tc.want {
				t.Errorf("RentalDays = %d, want %d", got, tc.want)
			}
		})
	}
}
