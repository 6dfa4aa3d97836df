// README: Promo store backed by PostgreSQL.
package promo

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

const promoColumns = `id, code, name, description, discount_type, value, currency,
	start_date, end_date, min_days, max_days, active, created_at, updated_at`

func (s *Store) Create(ctx context.Context, p *Promo) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO promo (code, name, description, discount_type, value, currency,
			start_date, end_date, min_days, max_days, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, created_at, updated_at`,
		p.Code, p.Name, p.Description, p.DiscountType, p.Value, p.Currency,
		p.StartDate, p.EndDate, p.MinDays, p.MaxDays, p.Active,
	)
	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (s *Store) Update(ctx context.Context, p *Promo) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE promo
		SET code = $1, name = $2, description = $3, discount_type = $4, value = $5, currency = $6,
		    start_date = $7, end_date = $8, min_days = $9, max_days = $10, active = $11, updated_at = NOW()
		WHERE id = $12`,
		p.Code, p.Name, p.Description, p.DiscountType, p.Value, p.Currency,
		p.StartDate, p.EndDate, p.MinDays, p.MaxDays, p.Active, p.ID,
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
	tag, err := s.db.Exec(ctx, `DELETE FROM promo WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]Promo, error) {
	rows, err := s.db.Query(ctx, `SELECT `+promoColumns+` FROM promo ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Promo
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) GetByCode(ctx context.Context, code string) (*Promo, error) {
	row := s.db.QueryRow(ctx, `SELECT `+promoColumns+` FROM promo WHERE LOWER(code) = LOWER($1)`, code)
	return scanPromo(row)
}

func scanPromo(row pgx.Row) (*Promo, error) {
	var p Promo
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.DiscountType, &p.Value, &p.Currency,
		&p.StartDate, &p.EndDate, &p.MinDays, &p.MaxDays, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
