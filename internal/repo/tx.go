package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Stores groups the repos bound to a single transaction.
type Stores struct {
	Rooms    RoomRepo
	Users    UserRepo
	Bookings BookingRepo
}

// Transactor runs a unit of work inside one database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(Stores) error) error
}

// beginner is satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// When given a pgx.Tx, Begin opens a savepoint, which lets integration tests
// run WithinTx inside their own rolled-back transaction.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// pgTransactor is the Postgres implementation of Transactor.
type pgTransactor struct {
	db beginner
}

// NewTransactor constructs a Transactor that opens transactions on db.
func NewTransactor(db beginner) Transactor {
	return &pgTransactor{db: db}
}

// WithinTx begins a transaction, hands fn repos bound to it, and commits on success.
func (t *pgTransactor) WithinTx(ctx context.Context, fn func(Stores) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.Transactor.WithinTx: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	stores := Stores{
		Rooms:    NewRoomRepo(tx),
		Users:    NewUserRepo(tx),
		Bookings: NewBookingRepo(tx),
	}
	if err := fn(stores); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.Transactor.WithinTx: commit: %w", err)
	}
	return nil
}
