// README: Rate store backed by PostgreSQL; loads the full catalog snapshot.
package rate

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const rateColumns = `id, name, description, parent_rate_id, increment_type, increment_value,
	valid_from, valid_until, min_days, max_days, unlimited_km, editable_by, is_active,
	price_modifier_name, price_modifier_type, price_modifier_value, price_modifier_applies_to_agreement_only,
	created_at, updated_at`

func (s *Store) Create(ctx context.Context, r *Rate) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO rate (
			name, description, parent_rate_id, increment_type, increment_value,
			valid_from, valid_until, min_days, max_days, unlimited_km, editable_by, is_active,
			price_modifier_name, price_modifier_type, price_modifier_value,
			price_modifier_applies_to_agreement_only
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id, created_at, updated_at`,
		r.Name, r.Description, r.ParentRateID, r.IncrementType, r.IncrementValue,
		r.ValidFrom, r.ValidUntil, r.MinDays, r.MaxDays, r.UnlimitedKm, r.EditableBy, r.IsActive,
		r.ModifierName, r.ModifierType, r.ModifierValue, r.ModifierAgreementOnly,
	)
	if err := row.Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return translateRateError(err)
	}
	return nil
}

// translateRateError maps the unique constraint on rate.name to the
// package sentinel so callers can errors.Is on it.
func translateRateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateName
	}
	return err
}

func (s *Store) Get(ctx context.Context, id int64) (*Rate, error) {
	row := s.db.QueryRow(ctx, `SELECT `+rateColumns+` FROM rate WHERE id = $1`, id)
	return scanRate(row)
}

func (s *Store) List(ctx context.Context) ([]Rate, error) {
	rows, err := s.db.Query(ctx, `SELECT `+rateColumns+` FROM rate ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rate
	for rows.Next() {
		r, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, r *Rate) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE rate
		SET name = $1, description = $2, parent_rate_id = $3, increment_type = $4, increment_value = $5,
		    valid_from = $6, valid_until = $7, min_days = $8, max_days = $9,
		    unlimited_km = $10, editable_by = $11, is_active = $12,
		    price_modifier_name = $13, price_modifier_type = $14, price_modifier_value = $15,
		    price_modifier_applies_to_agreement_only = $16, updated_at = NOW()
		WHERE id = $17`,
		r.Name, r.Description, r.ParentRateID, r.IncrementType, r.IncrementValue,
		r.ValidFrom, r.ValidUntil, r.MinDays, r.MaxDays,
		r.UnlimitedKm, r.EditableBy, r.IsActive,
		r.ModifierName, r.ModifierType, r.ModifierValue, r.ModifierAgreementOnly, r.ID,
	)
	if err != nil {
		return translateRateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM rate WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CreateTier(ctx context.Context, t *Tier) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO ratetier (rate_id, vehicle_group_id, from_days, to_days, price_per_day, currency)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`,
		t.RateID, t.VehicleGroupID, t.FromDays, t.ToDays, t.PricePerDay, t.Currency,
	)
	return row.Scan(&t.ID)
}

func (s *Store) UpdateTier(ctx context.Context, t *Tier) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE ratetier
		SET from_days = $1, to_days = $2, price_per_day = $3, currency = $4, updated_at = NOW()
		WHERE id = $5`,
		t.FromDays, t.ToDays, t.PricePerDay, t.Currency, t.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTier(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM ratetier WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) TiersForRate(ctx context.Context, rateID int64) ([]Tier, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, rate_id, vehicle_group_id, from_days, to_days, price_per_day, currency
		FROM ratetier
		WHERE rate_id = $1
		ORDER BY vehicle_group_id, from_days`, rateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTiers(rows)
}

func (s *Store) CreateDayRange(ctx context.Context, d *DayRange) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO rate_day_range (rate_id, from_days, to_days, label)
		VALUES ($1,$2,$3,$4) RETURNING id`,
		d.RateID, d.FromDays, d.ToDays, d.Label,
	)
	return row.Scan(&d.ID)
}

func (s *Store) CreateHourRange(ctx context.Context, h *HourRange) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO rate_hour_range (rate_id, from_hours, to_hours)
		VALUES ($1,$2,$3) RETURNING id`,
		h.RateID, h.FromHours, h.ToHours,
	)
	return row.Scan(&h.ID)
}

func (s *Store) CreateKmRange(ctx context.Context, k *KmRange) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO rate_km_range (rate_id, from_km, to_km, label)
		VALUES ($1,$2,$3,$4) RETURNING id`,
		k.RateID, k.FromKm, k.ToKm, k.Label,
	)
	return row.Scan(&k.ID)
}

// LoadCatalog reads the full rate reference data in a constant number of
// queries and assembles the flat-map snapshot the resolver works on.
func (s *Store) LoadCatalog(ctx context.Context) (*Catalog, error) {
	c := NewCatalog()

	rows, err := s.db.Query(ctx, `SELECT `+rateColumns+` FROM rate`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		r, err := scanRate(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		c.Rates[r.ID] = r
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tierRows, err := s.db.Query(ctx, `
		SELECT id, rate_id, vehicle_group_id, from_days, to_days, price_per_day, currency
		FROM ratetier ORDER BY rate_id, vehicle_group_id, from_days`)
	if err != nil {
		return nil, err
	}
	tiers, err := collectTiers(tierRows)
	if err != nil {
		return nil, err
	}
	for _, t := range tiers {
		c.TiersByRate[t.RateID] = append(c.TiersByRate[t.RateID], t)
	}

	if err := s.loadRanges(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) loadRanges(ctx context.Context, c *Catalog) error {
	dayRows, err := s.db.Query(ctx, `SELECT id, rate_id, from_days, to_days, label FROM rate_day_range ORDER BY rate_id, from_days`)
	if err != nil {
		return err
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var d DayRange
		if err := dayRows.Scan(&d.ID, &d.RateID, &d.FromDays, &d.ToDays, &d.Label); err != nil {
			return err
		}
		c.DayRanges[d.RateID] = append(c.DayRanges[d.RateID], d)
	}
	if err := dayRows.Err(); err != nil {
		return err
	}

	hourRows, err := s.db.Query(ctx, `SELECT id, rate_id, from_hours, to_hours FROM rate_hour_range ORDER BY rate_id, from_hours`)
	if err != nil {
		return err
	}
	defer hourRows.Close()
	for hourRows.Next() {
		var h HourRange
		if err := hourRows.Scan(&h.ID, &h.RateID, &h.FromHours, &h.ToHours); err != nil {
			return err
		}
		c.HourRanges[h.RateID] = append(c.HourRanges[h.RateID], h)
	}
	if err := hourRows.Err(); err != nil {
		return err
	}

	kmRows, err := s.db.Query(ctx, `SELECT id, rate_id, from_km, to_km, label FROM rate_km_range ORDER BY rate_id, from_km`)
	if err != nil {
		return err
	}
	defer kmRows.Close()
	for kmRows.Next() {
		var k KmRange
		if err := kmRows.Scan(&k.ID, &k.RateID, &k.FromKm, &k.ToKm, &k.Label); err != nil {
			return err
		}
		c.KmRanges[k.RateID] = append(c.KmRanges[k.RateID], k)
	}
	return kmRows.Err()
}

func collectTiers(rows pgx.Rows) ([]Tier, error) {
	defer rows.Close()
	var out []Tier
	for rows.Next() {
		var t Tier
		if err := rows.Scan(&t.ID, &t.RateID, &t.VehicleGroupID, &t.FromDays, &t.ToDays, &t.PricePerDay, &t.Currency); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanRate(row pgx.Row) (*Rate, error) {
	var r Rate
	err := row.Scan(
		&r.ID, &r.Name, &r.Description, &r.ParentRateID, &r.IncrementType, &r.IncrementValue,
		&r.ValidFrom, &r.ValidUntil, &r.MinDays, &r.MaxDays, &r.UnlimitedKm, &r.EditableBy, &r.IsActive,
		&r.ModifierName, &r.ModifierType, &r.ModifierValue, &r.ModifierAgreementOnly,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
