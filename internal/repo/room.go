package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/hotel-booking/internal/domain"
)

// RoomRepo defines the persistence operations for Rooms.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type RoomRepo interface {
	// Create inserts a new room and returns the persisted record.
	Create(ctx context.Context, room domain.Room) (domain.Room, error)

	// GetByID retrieves a single room with its bookings.
	// Returns domain.ErrNotFound if no room with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Room, error)

	// GetByIDForUpdate is GetByID with a row lock held until the surrounding
	// transaction ends. Concurrent booking creations for the same room queue
	// behind the lock, so the availability read and the insert cannot interleave.
	GetByIDForUpdate(ctx context.Context, id int64) (domain.Room, error)

	// List returns all rooms ordered by id descending. Bookings are not loaded.
	List(ctx context.Context) ([]domain.Room, error)

	// ListTypes returns the distinct room types, alphabetically.
	ListTypes(ctx context.Context) ([]string, error)

	// ListAvailable returns rooms whose type starts with roomType
	// (case-insensitive) and that hold no booking touching the stay.
	ListAvailable(ctx context.Context, stay domain.Stay, roomType string) ([]domain.Room, error)

	// ListUnbooked returns rooms that hold no bookings at all.
	ListUnbooked(ctx context.Context) ([]domain.Room, error)

	// Update overwrites the mutable fields of a room and returns the updated record.
	// Returns domain.ErrNotFound if no room with that ID exists.
	Update(ctx context.Context, room domain.Room) (domain.Room, error)

	// Delete removes a room and, by cascade, its bookings.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgRoomRepo is the Postgres implementation of RoomRepo.
type pgRoomRepo struct {
	db db
}

// NewRoomRepo constructs a RoomRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRoomRepo(db db) RoomRepo {
	return &pgRoomRepo{db: db}
}

// room_price is read back as text so the decimal survives unchanged.
const roomColumns = `id, room_type, room_price::text, room_description, room_photo_url, created_at`

// Create inserts a new room row and returns the full persisted record.
func (r *pgRoomRepo) Create(ctx context.Context, room domain.Room) (domain.Room, error) {
	const q = `
		INSERT INTO rooms (room_type, room_price, room_description, room_photo_url)
		VALUES (@room_type, (@room_price::text)::numeric, @room_description, @room_photo_url)
		RETURNING ` + roomColumns

	args := pgx.NamedArgs{
		"room_type":        room.Type,
		"room_price":       room.Price,
		"room_description": room.Description,
		"room_photo_url":   room.PhotoURL,
	}

	result, err := scanRoom(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Room{}, fmt.Errorf("repo.RoomRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a room by primary key together with its bookings.
func (r *pgRoomRepo) GetByID(ctx context.Context, id int64) (domain.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = @id`

	room, err := r.getWithBookings(ctx, q, id)
	if err != nil {
		return domain.Room{}, fmt.Errorf("repo.RoomRepo.GetByID: %w", err)
	}
	return room, nil
}

// GetByIDForUpdate locks the room row. Only meaningful inside a transaction.
func (r *pgRoomRepo) GetByIDForUpdate(ctx context.Context, id int64) (domain.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = @id FOR UPDATE`

	room, err := r.getWithBookings(ctx, q, id)
	if err != nil {
		return domain.Room{}, fmt.Errorf("repo.RoomRepo.GetByIDForUpdate: %w", err)
	}
	return room, nil
}

func (r *pgRoomRepo) getWithBookings(ctx context.Context, q string, id int64) (domain.Room, error) {
	room, err := scanRoom(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Room{}, err
	}
	room.Bookings, err = listBookingsByRoom(ctx, r.db, room.ID)
	if err != nil {
		return domain.Room{}, fmt.Errorf("bookings: %w", err)
	}
	return room, nil
}

// List returns all rooms, newest first.
func (r *pgRoomRepo) List(ctx context.Context) ([]domain.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms ORDER BY id DESC`

	rooms, err := r.queryRooms(ctx, q, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.RoomRepo.List: %w", err)
	}
	return rooms, nil
}

// ListTypes returns the distinct room types.
func (r *pgRoomRepo) ListTypes(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT room_type FROM rooms ORDER BY room_type`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.RoomRepo.ListTypes: %w", err)
	}
	types, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("repo.RoomRepo.ListTypes: scan: %w", err)
	}
	if types == nil {
		types = []string{}
	}
	return types, nil
}

// ListAvailable excludes any room with a booking whose closed range touches
// the requested stay. This search is deliberately coarser than the admission
// rule used when a booking is created: it also hides back-to-back turnovers.
func (r *pgRoomRepo) ListAvailable(ctx context.Context, stay domain.Stay, roomType string) ([]domain.Room, error) {
	const q = `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE room_type ILIKE @room_type || '%'
		  AND id NOT IN (
		      SELECT room_id FROM bookings
		      WHERE check_in_date <= @check_out_date
		        AND check_out_date >= @check_in_date
		  )
		ORDER BY id`

	args := pgx.NamedArgs{
		"room_type":      roomType,
		"check_in_date":  stay.CheckIn,
		"check_out_date": stay.CheckOut,
	}

	rooms, err := r.queryRooms(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.RoomRepo.ListAvailable: %w", err)
	}
	return rooms, nil
}

// ListUnbooked returns rooms with no bookings.
func (r *pgRoomRepo) ListUnbooked(ctx context.Context) ([]domain.Room, error) {
	const q = `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE NOT EXISTS (SELECT 1 FROM bookings WHERE bookings.room_id = rooms.id)
		ORDER BY id`

	rooms, err := r.queryRooms(ctx, q, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.RoomRepo.ListUnbooked: %w", err)
	}
	return rooms, nil
}

// Update overwrites the mutable fields of a room and returns the updated record.
func (r *pgRoomRepo) Update(ctx context.Context, room domain.Room) (domain.Room, error) {
	const q = `
		UPDATE rooms
		SET room_type        = @room_type,
		    room_price       = (@room_price::text)::numeric,
		    room_description = @room_description,
		    room_photo_url   = @room_photo_url
		WHERE id = @id
		RETURNING ` + roomColumns

	args := pgx.NamedArgs{
		"id":               room.ID,
		"room_type":        room.Type,
		"room_price":       room.Price,
		"room_description": room.Description,
		"room_photo_url":   room.PhotoURL,
	}

	result, err := scanRoom(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Room{}, fmt.Errorf("repo.RoomRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a room by primary key.
func (r *pgRoomRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM rooms WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.RoomRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RoomRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgRoomRepo) queryRooms(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Room, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := []domain.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return rooms, nil
}

// scanRoom maps a single database row into a domain.Room.
func scanRoom(s scanner) (domain.Room, error) {
	var room domain.Room
	err := s.Scan(&room.ID, &room.Type, &room.Price, &room.Description, &room.PhotoURL, &room.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Room{}, domain.ErrNotFound
		}
		return domain.Room{}, err
	}
	return room, nil
}
