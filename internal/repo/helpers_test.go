package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hotel-booking/internal/domain"
	"github.com/pkordes/hotel-booking/internal/repo"
	"github.com/pkordes/hotel-booking/testutil"
)

// newTestTx returns a rolled-back-on-cleanup transaction for repo tests.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	return testutil.NewTx(t)
}

// day returns midnight UTC of a fixed test calendar offset by n days.
func day(n int) time.Time {
	return time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func mustCreateRoom(t *testing.T, r repo.RoomRepo, roomType string) domain.Room {
	t.Helper()
	room, err := r.Create(context.Background(), domain.Room{
		Type:        roomType,
		Price:       "129.50",
		Description: "Sea view",
		PhotoURL:    "https://cdn.example.com/rooms/1.jpg",
	})
	require.NoError(t, err)
	return room
}

func mustCreateUser(t *testing.T, r repo.UserRepo, email string) domain.User {
	t.Helper()
	u, err := r.Create(context.Background(), domain.User{
		Email:        email,
		Name:         "Test Guest",
		PhoneNumber:  "+15550100",
		PasswordHash: "$2a$10$hash",
		Role:         domain.RoleUser,
	})
	require.NoError(t, err)
	return u
}

func mustCreateBooking(t *testing.T, r repo.BookingRepo, roomID, userID int64, in, out int, code string) domain.Booking {
	t.Helper()
	b, err := r.Create(context.Background(), domain.Booking{
		RoomID:           roomID,
		GuestID:          userID,
		CheckIn:          day(in),
		CheckOut:         day(out),
		Adults:           2,
		Children:         1,
		ConfirmationCode: code,
	})
	require.NoError(t, err)
	return b
}
