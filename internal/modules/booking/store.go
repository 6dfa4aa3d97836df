// README: Booking store backed by PostgreSQL. The price snapshot is written once.
package booking

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

const bookingColumns = `id, reference, customer_name, customer_email, customer_phone,
	vehicle_group_id, rate_id, rate_tier_id,
	pickup_date, dropoff_date, days, pickup_city, dropoff_city,
	vehicle_location_id, pickup_location_id,
	price_per_day, subtotal, one_way_fee, delivery_fee, discount, total_amount,
	currency, promo_code, status, payment_status, created_at, updated_at`

func (s *Store) Create(ctx context.Context, b *Booking) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO booking (
			reference, customer_name, customer_email, customer_phone,
			vehicle_group_id, rate_id, rate_tier_id,
			pickup_date, dropoff_date, days, pickup_city, dropoff_city,
			vehicle_location_id, pickup_location_id,
			price_per_day, subtotal, one_way_fee, delivery_fee, discount, total_amount,
			currency, promo_code, status, payment_status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
		RETURNING id, created_at, updated_at`,
		b.Reference, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.VehicleGroupID, b.RateID, b.RateTierID,
		b.PickupDate, b.DropoffDate, b.Days, b.PickupCity, b.DropoffCity,
		b.VehicleLocationID, b.PickupLocationID,
		b.PricePerDay, b.Subtotal, b.OneWayFee, b.DeliveryFee, b.Discount, b.TotalAmount,
		b.Currency, b.PromoCode, string(b.Status), string(b.PaymentStatus),
	)
	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (s *Store) Get(ctx context.Context, id int64) (*Booking, error) {
	row := s.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM booking WHERE id = $1`, id)
	return scanBooking(row)
}

func (s *Store) GetByReference(ctx context.Context, ref string) (*Booking, error) {
	row := s.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM booking WHERE reference = $1`, ref)
	return scanBooking(row)
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]Booking, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM booking
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// UpdateStatus performs a guarded transition: the expected current status
// is part of the WHERE clause, so two concurrent transitions cannot both
// win.
func (s *Store) UpdateStatus(ctx context.Context, id int64, from, to Status) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE booking SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`,
		string(to), id, string(from))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, id int64, ps PaymentStatus) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE booking SET payment_status = $1, updated_at = NOW()
		WHERE id = $2`, string(ps), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.Reference, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.VehicleGroupID, &b.RateID, &b.RateTierID,
		&b.PickupDate, &b.DropoffDate, &b.Days, &b.PickupCity, &b.DropoffCity,
		&b.VehicleLocationID, &b.PickupLocationID,
		&b.PricePerDay, &b.Subtotal, &b.OneWayFee, &b.DeliveryFee, &b.Discount, &b.TotalAmount,
		&b.Currency, &b.PromoCode, &b.Status, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
