package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nived-gurung/trekbooking/internal/domain"
)

type BookingRepository interface {
	CreateTrekBooking(ctx context.Context, booking *domain.TrekBooking) error
	GetTrekBooking(ctx context.Context, id int64) (*domain.TrekBooking, error)
	UpdateTrekBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.TrekBooking, error)
	ListTrekBookingsByUser(ctx context.Context, userID int64) ([]domain.TrekBooking, error)

	CreateTravelBooking(ctx context.Context, booking *domain.TravelBooking) error
	GetTravelBooking(ctx context.Context, id int64) (*domain.TravelBooking, error)
	UpdateTravelBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.TravelBooking, error)
	ListTravelBookingsByUser(ctx context.Context, userID int64) ([]domain.TravelBooking, error)
}

const trekBookingColumns = `id, reference, user_id, trek_id, trek_date, people, total_cents, status, special_requests, created_at, updated_at`

const travelBookingColumns = `id, reference, user_id, package_id, travel_date, people, total_cents, status, created_at, updated_at`

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) CreateTrekBooking(ctx context.Context, booking *domain.TrekBooking) error {
	booking.Status = domain.BookingStatusPending
	err := r.db.QueryRow(ctx, `INSERT INTO trek_bookings (reference, user_id, trek_id, trek_date, people, total_cents, status, special_requests)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		booking.Reference, booking.UserID, booking.TrekID, booking.TrekDate, booking.People, booking.TotalCents, booking.Status, booking.SpecialRequests).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	return mapCreateErr(err)
}

func (r *PGBookingRepository) GetTrekBooking(ctx context.Context, id int64) (*domain.TrekBooking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+trekBookingColumns+` FROM trek_bookings WHERE id=$1`, id)
	var b domain.TrekBooking
	if err := scanTrekBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) UpdateTrekBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.TrekBooking, error) {
	row := r.db.QueryRow(ctx, `UPDATE trek_bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+trekBookingColumns, status, id)
	var b domain.TrekBooking
	if err := scanTrekBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) ListTrekBookingsByUser(ctx context.Context, userID int64) ([]domain.TrekBooking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+trekBookingColumns+` FROM trek_bookings WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.TrekBooking, 0)
	for rows.Next() {
		var b domain.TrekBooking
		if err := scanTrekBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) CreateTravelBooking(ctx context.Context, booking *domain.TravelBooking) error {
	booking.Status = domain.BookingStatusPending
	err := r.db.QueryRow(ctx, `INSERT INTO travel_bookings (reference, user_id, package_id, travel_date, people, total_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		booking.Reference, booking.UserID, booking.PackageID, booking.TravelDate, booking.People, booking.TotalCents, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	return mapCreateErr(err)
}

func (r *PGBookingRepository) GetTravelBooking(ctx context.Context, id int64) (*domain.TravelBooking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+travelBookingColumns+` FROM travel_bookings WHERE id=$1`, id)
	var b domain.TravelBooking
	if err := scanTravelBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) UpdateTravelBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.TravelBooking, error) {
	row := r.db.QueryRow(ctx, `UPDATE travel_bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+travelBookingColumns, status, id)
	var b domain.TravelBooking
	if err := scanTravelBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) ListTravelBookingsByUser(ctx context.Context, userID int64) ([]domain.TravelBooking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+travelBookingColumns+` FROM travel_bookings WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.TravelBooking, 0)
	for rows.Next() {
		var b domain.TravelBooking
		if err := scanTravelBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// mapCreateErr turns a foreign-key violation into ErrNotFound: a booking
// referencing a missing user or catalog item is a lookup failure, not a
// storage failure.
func mapCreateErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return domain.ErrNotFound
	}
	return err
}

func scanTrekBooking(row pgx.Row, b *domain.TrekBooking) error {
	return row.Scan(&b.ID, &b.Reference, &b.UserID, &b.TrekID, &b.TrekDate, &b.People, &b.TotalCents, &b.Status, &b.SpecialRequests, &b.CreatedAt, &b.UpdatedAt)
}

func scanTravelBooking(row pgx.Row, b *domain.TravelBooking) error {
	return row.Scan(&b.ID, &b.Reference, &b.UserID, &b.PackageID, &b.TravelDate, &b.People, &b.TotalCents, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

var _ BookingRepository = (*PGBookingRepository)(nil)
