package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/hotel-booking/internal/domain"
)

// BookingRepo defines the persistence operations for Bookings.
type BookingRepo interface {
	// Create inserts a new booking and returns the persisted record.
	// Returns domain.ErrDuplicateCode if the confirmation code is already taken;
	// the insert is skipped rather than failed so the surrounding transaction
	// stays usable for a retry.
	Create(ctx context.Context, b domain.Booking) (domain.Booking, error)

	// GetByID retrieves a single booking by primary key.
	// Returns domain.ErrNotFound if no booking with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Booking, error)

	// GetByConfirmationCode retrieves a single booking by its confirmation code.
	// Returns domain.ErrNotFound if no booking carries that code.
	GetByConfirmationCode(ctx context.Context, code string) (domain.Booking, error)

	// List returns all bookings ordered by id descending (newest first).
	List(ctx context.Context) ([]domain.Booking, error)

	// ListExport returns one denormalized row per booking, ordered by id descending.
	ListExport(ctx context.Context) ([]domain.BookingExportRow, error)

	// Delete removes a booking by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

const bookingColumns = `id, room_id, user_id, check_in_date, check_out_date,
		num_of_adults, num_of_children, confirmation_code, created_at`

// Create inserts a booking. ON CONFLICT DO NOTHING turns a code collision into
// an empty RETURNING set instead of an error that would abort the transaction.
func (r *pgBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	const q = `
		INSERT INTO bookings (room_id, user_id, check_in_date, check_out_date,
		                      num_of_adults, num_of_children, confirmation_code)
		VALUES (@room_id, @user_id, @check_in_date, @check_out_date,
		        @num_of_adults, @num_of_children, @confirmation_code)
		ON CONFLICT (confirmation_code) DO NOTHING
		RETURNING ` + bookingColumns

	args := pgx.NamedArgs{
		"room_id":           b.RoomID,
		"user_id":           b.GuestID,
		"check_in_date":     domain.Date(b.CheckIn),
		"check_out_date":    domain.Date(b.CheckOut),
		"num_of_adults":     b.Adults,
		"num_of_children":   b.Children,
		"confirmation_code": b.ConfirmationCode,
	}

	result, err := scanBooking(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w", domain.ErrDuplicateCode)
		}
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a booking by primary key.
func (r *pgBookingRepo) GetByID(ctx context.Context, id int64) (domain.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = @id`

	result, err := scanBooking(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByConfirmationCode retrieves a booking by its unique confirmation code.
func (r *pgBookingRepo) GetByConfirmationCode(ctx context.Context, code string) (domain.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE confirmation_code = @code`

	result, err := scanBooking(r.db.QueryRow(ctx, q, pgx.NamedArgs{"code": code}))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByConfirmationCode: %w", err)
	}
	return result, nil
}

// List returns all bookings, newest first.
func (r *pgBookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY id DESC`

	bookings, err := queryBookings(ctx, r.db, q, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.List: %w", err)
	}
	return bookings, nil
}

// ListExport joins bookings with their room and guest into flat rows.
func (r *pgBookingRepo) ListExport(ctx context.Context) ([]domain.BookingExportRow, error) {
	const q = `
		SELECT b.id, b.confirmation_code,
		       to_char(b.check_in_date, 'YYYY-MM-DD'), to_char(b.check_out_date, 'YYYY-MM-DD'),
		       b.num_of_adults, b.num_of_children, b.total_num_of_guest,
		       r.id, r.room_type,
		       u.id, u.name, u.email
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN users u ON u.id = b.user_id
		ORDER BY b.id DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListExport: %w", err)
	}
	defer rows.Close()

	out := []domain.BookingExportRow{}
	for rows.Next() {
		var e domain.BookingExportRow
		err := rows.Scan(&e.BookingID, &e.ConfirmationCode, &e.CheckIn, &e.CheckOut,
			&e.Adults, &e.Children, &e.TotalGuests,
			&e.RoomID, &e.RoomType,
			&e.GuestID, &e.GuestName, &e.GuestEmail)
		if err != nil {
			return nil, fmt.Errorf("repo.BookingRepo.ListExport: scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListExport: rows: %w", err)
	}
	return out, nil
}

// Delete removes a booking by primary key.
func (r *pgBookingRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM bookings WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.BookingRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BookingRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// listBookingsByRoom is shared by the booking and room repos; the room repo uses
// it to materialize Room.Bookings on the same connection or transaction.
func listBookingsByRoom(ctx context.Context, db db, roomID int64) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = @room_id
		ORDER BY check_in_date, id`
	return queryBookings(ctx, db, q, pgx.NamedArgs{"room_id": roomID})
}

// listBookingsByUser is shared by the booking and user repos.
func listBookingsByUser(ctx context.Context, db db, userID int64) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = @user_id
		ORDER BY check_in_date, id`
	return queryBookings(ctx, db, q, pgx.NamedArgs{"user_id": userID})
}

// queryBookings runs q and scans every row. Always returns a non-nil slice on success.
func queryBookings(ctx context.Context, db db, q string, args pgx.NamedArgs) ([]domain.Booking, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if args == nil {
		rows, err = db.Query(ctx, q)
	} else {
		rows, err = db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return bookings, nil
}

// scanBooking maps a single database row into a domain.Booking.
func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b        domain.Booking
		checkIn  pgtype.Date
		checkOut pgtype.Date
	)

	err := s.Scan(&b.ID, &b.RoomID, &b.GuestID, &checkIn, &checkOut,
		&b.Adults, &b.Children, &b.ConfirmationCode, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}

	b.CheckIn = domain.Date(checkIn.Time)
	b.CheckOut = domain.Date(checkOut.Time)
	return b, nil
}
