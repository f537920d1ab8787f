package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/hotel-booking/internal/domain"
)

// UserRepo defines the persistence operations for Users.
type UserRepo interface {
	// Create inserts a new user. Returns domain.ErrAlreadyExists if the email is taken.
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// GetByID retrieves a single user with their booking history.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.User, error)

	// GetByEmail retrieves a user by email. Bookings are not loaded.
	// Returns domain.ErrNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// ExistsByEmail reports whether a user with that email is registered.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns all users ordered by id. Bookings are not loaded.
	List(ctx context.Context) ([]domain.User, error)

	// Delete removes a user and, by cascade, their bookings.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, email, name, phone_number, password_hash, role, created_at`

func (r *pgUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (email, name, phone_number, password_hash, role)
		VALUES (@email, @name, @phone_number, @password_hash, @role)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"email":         u.Email,
		"name":          u.Name,
		"phone_number":  u.PhoneNumber,
		"password_hash": u.PasswordHash,
		"role":          u.Role,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", domain.ErrAlreadyExists)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	u, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	u.Bookings, err = listBookingsByUser(ctx, r.db, u.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: bookings: %w", err)
	}
	return u, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	u, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return u, nil
}

func (r *pgUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE email = @email)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.UserRepo.ExistsByEmail: %w", err)
	}
	return exists, nil
}

func (r *pgUserRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.List: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.UserRepo.List: scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.UserRepo.List: rows: %w", err)
	}
	return users, nil
}

func (r *pgUserRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanUser maps a single database row into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.ID, &u.Email, &u.Name, &u.PhoneNumber, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
