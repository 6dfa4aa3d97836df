// README: One-way fee store backed by PostgreSQL.
package oneway

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

const feeColumns = `id, from_city, to_city, fee_amount, currency, is_active, created_at, updated_at`

func (s *Store) Create(ctx context.Context, f *Fee) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO one_way_fees (from_city, to_city, fee_amount, currency, is_active)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at, updated_at`,
		f.FromCity, f.ToCity, f.FeeAmount, f.Currency, f.IsActive,
	)
	return row.Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

func (s *Store) Update(ctx context.Context, f *Fee) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE one_way_fees
		SET from_city = $1, to_city = $2, fee_amount = $3, currency = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6`,
		f.FromCity, f.ToCity, f.FeeAmount, f.Currency, f.IsActive, f.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM one_way_fees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]Fee, error) {
	rows, err := s.db.Query(ctx, `SELECT `+feeColumns+` FROM one_way_fees ORDER BY from_city, to_city`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Fee
	for rows.Next() {
		var f Fee
		if err := rows.Scan(&f.ID, &f.FromCity, &f.ToCity, &f.FeeAmount, &f.Currency, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// FindActive looks up the active fee row for a directed city pair,
// case-insensitively.
func (s *Store) FindActive(ctx context.Context, fromCity, toCity string) (*Fee, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+feeColumns+`
		FROM one_way_fees
		WHERE LOWER(from_city) = LOWER($1) AND LOWER(to_city) = LOWER($2) AND is_active`,
		fromCity, toCity,
	)
	var f Fee
	err := row.Scan(&f.ID, &f.FromCity, &f.ToCity, &f.FeeAmount, &f.Currency, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}
