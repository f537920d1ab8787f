package repo_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hotel-booking/internal/domain"
	"github.com/pkordes/hotel-booking/internal/repo"
	"github.com/pkordes/hotel-booking/internal/service"
	"github.com/pkordes/hotel-booking/testutil"
)

// TestBookingService_Create_ConcurrentOverlapAdmitsOne runs two creates for the
// same room on separate connections. The stays share a check-in date, which
// conflicts whichever commits first, so the room lock must let exactly one in.
func TestBookingService_Create_ConcurrentOverlapAdmitsOne(t *testing.T) {
	pool := testutil.NewPool(t)
	ctx := context.Background()

	rooms := repo.NewRoomRepo(pool)
	users := repo.NewUserRepo(pool)
	room := mustCreateRoom(t, rooms, "STANDARD")
	guest := mustCreateUser(t, users, fmt.Sprintf("race-%d@example.com", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = rooms.Delete(context.Background(), room.ID)
		_ = users.Delete(context.Background(), guest.ID)
	})

	svc := service.NewBookingService(repo.NewTransactor(pool), repo.NewBookingRepo(pool), nil)
	stays := []domain.Booking{
		{CheckIn: day(1), CheckOut: day(5), Adults: 2},
		{CheckIn: day(1), CheckOut: day(4), Adults: 1},
	}

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, len(stays))
	)
	for i, proposed := range stays {
		wg.Add(1)
		go func(i int, proposed domain.Booking) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.Create(ctx, room.ID, guest.ID, proposed)
		}(i, proposed)
	}
	close(start)
	wg.Wait()

	var ok, unavailable int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrRoomUnavailable):
			unavailable++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one create should succeed")
	assert.Equal(t, 1, unavailable, "the other should see the room as unavailable")

	held, err := rooms.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Len(t, held.Bookings, 1)
}
