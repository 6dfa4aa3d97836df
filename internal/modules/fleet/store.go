// README: Vehicle group store backed by PostgreSQL.
package fleet

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const groupColumns = `id, name, description, category, seats, doors, transmission, fuel_type,
	base_price_per_day, base_price_per_week, base_price_per_month,
	features, image_url, display_order, active, min_rental_days, max_rental_days,
	created_at, updated_at`

func (s *Store) Create(ctx context.Context, g *VehicleGroup) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO vehiclegroup (
			name, description, category, seats, doors, transmission, fuel_type,
			base_price_per_day, base_price_per_week, base_price_per_month,
			features, image_url, display_order, active, min_rental_days, max_rental_days
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id, created_at, updated_at`,
		g.Name, g.Description, g.Category, g.Seats, g.Doors, g.Transmission, g.FuelType,
		g.BasePricePerDay, g.BasePricePerWeek, g.BasePricePerMonth,
		joinFeatures(g.Features), g.ImageURL, g.DisplayOrder, g.Active, g.MinRentalDays, g.MaxRentalDays,
	)
	return row.Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func (s *Store) Get(ctx context.Context, id int64) (*VehicleGroup, error) {
	row := s.db.QueryRow(ctx, `SELECT `+groupColumns+` FROM vehiclegroup WHERE id = $1`, id)
	return scanGroup(row)
}

func (s *Store) GetByName(ctx context.Context, name string) (*VehicleGroup, error) {
	row := s.db.QueryRow(ctx, `SELECT `+groupColumns+` FROM vehiclegroup WHERE name = $1`, name)
	return scanGroup(row)
}

// List returns groups ordered for display. When activeOnly is set, disabled
// groups are filtered out.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]VehicleGroup, error) {
	q := `SELECT ` + groupColumns + ` FROM vehiclegroup`
	if activeOnly {
		q += ` WHERE active`
	}
	q += ` ORDER BY display_order, name`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VehicleGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, g *VehicleGroup) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE vehiclegroup
		SET name = $1, description = $2, category = $3, seats = $4, doors = $5,
		    transmission = $6, fuel_type = $7,
		    base_price_per_day = $8, base_price_per_week = $9, base_price_per_month = $10,
		    features = $11, image_url = $12, display_order = $13, active = $14,
		    min_rental_days = $15, max_rental_days = $16, updated_at = NOW()
		WHERE id = $17`,
		g.Name, g.Description, g.Category, g.Seats, g.Doors, g.Transmission, g.FuelType,
		g.BasePricePerDay, g.BasePricePerWeek, g.BasePricePerMonth,
		joinFeatures(g.Features), g.ImageURL, g.DisplayOrder, g.Active,
		g.MinRentalDays, g.MaxRentalDays, g.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-disables a group. Referencing rates and bookings keep
// their foreign keys.
func (s *Store) Deactivate(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `UPDATE vehiclegroup SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanGroup(row pgx.Row) (*VehicleGroup, error) {
	var g VehicleGroup
	var features string
	err := row.Scan(
		&g.ID, &g.Name, &g.Description, &g.Category, &g.Seats, &g.Doors, &g.Transmission, &g.FuelType,
		&g.BasePricePerDay, &g.BasePricePerWeek, &g.BasePricePerMonth,
		&features, &g.ImageURL, &g.DisplayOrder, &g.Active, &g.MinRentalDays, &g.MaxRentalDays,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	g.Features = splitFeatures(features)
	return &g, nil
}
