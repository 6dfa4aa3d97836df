// README: Booking tests: lifecycle table + DB-backed snapshot immutability.
package booking

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"rentora/internal/modules/fleet"
	"rentora/internal/modules/pricing"
	"rentora/internal/modules/rate"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		// happy-path forward transitions
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusActive, true},
		{StatusActive, StatusCompleted, true},
		// cancels before the rental starts
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		// invalid: terminal states have no outgoing transitions
		{StatusCompleted, StatusActive, false},
		{StatusCancelled, StatusPending, false},
		// invalid: skipping states
		{StatusPending, StatusActive, false},
		{StatusPending, StatusCompleted, false},
		{StatusActive, StatusCancelled, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

type stubQuoter struct{ quote *pricing.Quote }

func (s stubQuoter) Quote(context.Context, pricing.QuoteCommand) (*pricing.Quote, error) {
	return s.quote, nil
}

// TestSnapshotSurvivesTierEdit is the core immutability guarantee: editing
// the tier a booking was priced from must not change the stored figures.
func TestSnapshotSurvivesTierEdit(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	fleetStore := fleet.NewStore(db)
	group := &fleet.VehicleGroup{Name: "Compact", Active: true, MinRentalDays: 1}
	if err := fleetStore.Create(ctx, group); err != nil {
		t.Fatalf("create group: %v", err)
	}

	rateStore := rate.NewStore(db)
	r := &rate.Rate{
		Name:       "MAIN",
		ValidFrom:  time.Now().AddDate(0, -1, 0),
		ValidUntil: time.Now().AddDate(1, 0, 0),
		MinDays:    1,
		EditableBy: "admin",
		IsActive:   true,
	}
	if err := rateStore.Create(ctx, r); err != nil {
		t.Fatalf("create rate: %v", err)
	}
	seven := 7
	tier := &rate.Tier{
		RateID: r.ID, VehicleGroupID: group.ID,
		FromDays: 1, ToDays: &seven,
		PricePerDay: decimal.NewFromInt(25), Currency: "EUR",
	}
	if err := rateStore.CreateTier(ctx, tier); err != nil {
		t.Fatalf("create tier: %v", err)
	}

	quote := &pricing.Quote{
		VehicleGroupID: group.ID,
		RateID:         &r.ID,
		RateTierID:     &tier.ID,
		Days:           5,
		PricePerDay:    decimal.NewFromInt(25),
		Currency:       "EUR",
		Subtotal:       decimal.NewFromInt(125),
		OneWayFee:      decimal.NewFromInt(60),
		Total:          decimal.NewFromInt(185),
	}
	svc := NewService(NewStore(db), stubQuoter{quote})

	pickup := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	b, err := svc.Create(ctx, CreateCommand{
		CustomerName:   "Nino K",
		CustomerEmail:  "nino@example.com",
		VehicleGroupID: group.ID,
		PickupDate:     pickup,
		DropoffDate:    pickup.AddDate(0, 0, 5),
		PickupCity:     "Tbilisi",
		DropoffCity:    "Batumi",
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// The admin raises the tier price after the booking exists.
	tier.PricePerDay = decimal.NewFromInt(99)
	if err := rateStore.UpdateTier(ctx, tier); err != nil {
		t.Fatalf("update tier: %v", err)
	}

	got, err := svc.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if !got.PricePerDay.Equal(decimal.NewFromInt(25)) {
		t.Errorf("PricePerDay = %s, want the snapshotted 25", got.PricePerDay)
	}
	if !got.TotalAmount.Equal(decimal.NewFromInt(185)) {
		t.Errorf("TotalAmount = %s, want the snapshotted 185", got.TotalAmount)
	}
	if got.RateID == nil || *got.RateID != r.ID {
		t.Errorf("RateID = %v, want %d", got.RateID, r.ID)
	}
}

// TestSnapshotSurvivesGroupDeletion covers the other half of the
// guarantee: removing the vehicle group nulls the provenance reference
// but leaves the booking and its agreed figures in place.
func TestSnapshotSurvivesGroupDeletion(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	fleetStore := fleet.NewStore(db)
	group := &fleet.VehicleGroup{Name: "Minivan", Active: true, MinRentalDays: 1}
	if err := fleetStore.Create(ctx, group); err != nil {
		t.Fatalf("create group: %v", err)
	}

	quote := &pricing.Quote{
		VehicleGroupID: group.ID,
		Days:           3,
		PricePerDay:    decimal.NewFromInt(50),
		Currency:       "EUR",
		Subtotal:       decimal.NewFromInt(150),
		Total:          decimal.NewFromInt(150),
	}
	svc := NewService(NewStore(db), stubQuoter{quote})

	pickup := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	b, err := svc.Create(ctx, CreateCommand{
		CustomerName:   "Tamar B",
		CustomerEmail:  "tamar@example.com",
		VehicleGroupID: group.ID,
		PickupDate:     pickup,
		DropoffDate:    pickup.AddDate(0, 0, 3),
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if b.VehicleGroupID == nil || *b.VehicleGroupID != group.ID {
		t.Fatalf("VehicleGroupID = %v, want %d", b.VehicleGroupID, group.ID)
	}

	if _, err := db.Exec(ctx, "DELETE FROM vehiclegroup WHERE id = $1", group.ID); err != nil {
		t.Fatalf("delete group: %v", err)
	}

	got, err := svc.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if got.VehicleGroupID != nil {
		t.Errorf("VehicleGroupID = %v, want nil after group deletion", got.VehicleGroupID)
	}
	if !got.TotalAmount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("TotalAmount = %s, want the snapshotted 150", got.TotalAmount)
	}
}

func TestTransitionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	fleetStore := fleet.NewStore(db)
	group := &fleet.VehicleGroup{Name: "Sedan", Active: true, MinRentalDays: 1}
	if err := fleetStore.Create(ctx, group); err != nil {
		t.Fatalf("create group: %v", err)
	}

	quote := &pricing.Quote{
		VehicleGroupID: group.ID,
		Days:           2,
		PricePerDay:    decimal.NewFromInt(40),
		Currency:       "EUR",
		Subtotal:       decimal.NewFromInt(80),
		Total:          decimal.NewFromInt(80),
	}
	svc := NewService(NewStore(db), stubQuoter{quote})

	pickup := time.Now().AddDate(0, 0, 3).Truncate(24 * time.Hour)
	b, err := svc.Create(ctx, CreateCommand{
		CustomerName:   "Giorgi M",
		CustomerEmail:  "giorgi@example.com",
		VehicleGroupID: group.ID,
		PickupDate:     pickup,
		DropoffDate:    pickup.AddDate(0, 0, 2),
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if b.Status != StatusPending {
		t.Fatalf("Status = %s, want pending", b.Status)
	}

	if _, err := svc.Transition(ctx, b.ID, StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := svc.Transition(ctx, b.ID, StatusCompleted); err == nil {
		t.Fatal("confirmed -> completed should be rejected")
	}
	if _, err := svc.Transition(ctx, b.ID, StatusActive); err != nil {
		t.Fatalf("activate: %v", err)
	}
	got, err := svc.Transition(ctx, b.ID, StatusCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got.Status != StatusCompleted {
		t.Errorf("Status = %s, want completed", got.Status)
	}
}

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("RENTORA_TEST_DSN")
	if dsn == "" {
		t.Skip("RENTORA_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigration(ctx, db); err != nil {
		t.Fatalf("apply migration: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE booking, ratetier, rate, vehiclegroup RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	return db
}

func applyMigration(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	content, err := os.ReadFile(filepath.Join(root, "migrations", "0001_init.sql"))
	if err != nil {
		return err
	}
	cleaned := stripSQLComments(string(content))
	for _, stmt := range splitSQL(cleaned) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
