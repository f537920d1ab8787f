package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hotel-booking/internal/domain"
	"github.com/pkordes/hotel-booking/internal/repo"
)

// The outer test transaction makes WithinTx open a savepoint, so commit and
// rollback here release or discard the savepoint only.

func TestTransactor_WithinTx_Commits(t *testing.T) {
	tx := newTestTx(t)
	var roomID int64

	err := repo.NewTransactor(tx).WithinTx(context.Background(), func(s repo.Stores) error {
		room, err := s.Rooms.Create(context.Background(), domain.Room{Type: "STANDARD", Price: "80"})
		roomID = room.ID
		return err
	})
	require.NoError(t, err)

	_, err = repo.NewRoomRepo(tx).GetByID(context.Background(), roomID)
	assert.NoError(t, err, "room created inside WithinTx should be visible after commit")
}

func TestTransactor_WithinTx_RollsBackOnError(t *testing.T) {
	tx := newTestTx(t)
	var roomID int64
	boom := errors.New("boom")

	err := repo.NewTransactor(tx).WithinTx(context.Background(), func(s repo.Stores) error {
		room, err := s.Rooms.Create(context.Background(), domain.Room{Type: "STANDARD", Price: "80"})
		require.NoError(t, err)
		roomID = room.ID
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repo.NewRoomRepo(tx).GetByID(context.Background(), roomID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "room created inside a failed WithinTx should be rolled back")
}
