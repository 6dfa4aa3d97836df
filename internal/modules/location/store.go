// README: Location store backed by PostgreSQL.
package location

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

const locationColumns = `id, name, address_line1, address_line2, city, state, postal_code,
	country_code, latitude, longitude, created_at, updated_at`

func (s *Store) Create(ctx context.Context, l *Location) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO location (name, address_line1, address_line2, city, state, postal_code,
			country_code, latitude, longitude)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at, updated_at`,
		l.Name, l.AddressLine1, l.AddressLine2, l.City, l.State, l.PostalCode,
		l.CountryCode, l.Latitude, l.Longitude,
	)
	return row.Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

func (s *Store) Get(ctx context.Context, id int64) (*Location, error) {
	row := s.db.QueryRow(ctx, `SELECT `+locationColumns+` FROM location WHERE id = $1`, id)
	var l Location
	err := row.Scan(
		&l.ID, &l.Name, &l.AddressLine1, &l.AddressLine2, &l.City, &l.State, &l.PostalCode,
		&l.CountryCode, &l.Latitude, &l.Longitude, &l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) List(ctx context.Context) ([]Location, error) {
	rows, err := s.db.Query(ctx, `SELECT `+locationColumns+` FROM location ORDER BY city, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(
			&l.ID, &l.Name, &l.AddressLine1, &l.AddressLine2, &l.City, &l.State, &l.PostalCode,
			&l.CountryCode, &l.Latitude, &l.Longitude, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
