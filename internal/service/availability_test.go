package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/hotel-booking/internal/domain"
	"github.com/pkordes/hotel-booking/internal/service"
)

func TestIsAvailable_NoExistingStays(t *testing.T) {
	assert.True(t, service.IsAvailable(stay(10, 15), nil))
	assert.True(t, service.IsAvailable(stay(10, 15), []domain.Stay{}))
}

func TestIsAvailable_AgainstOneStay(t *testing.T) {
	existing := []domain.Stay{stay(10, 15)}

	tests := []struct {
		name      string
		candidate domain.Stay
		want      bool
	}{
		{"identical stay", stay(10, 15), false},
		{"turnover on check-out day", stay(15, 18), true},
		{"ends on existing check-in day", stay(5, 10), true},
		{"entirely before", stay(1, 5), true},
		{"entirely after", stay(20, 25), true},
		{"starts inside", stay(12, 18), false},
		{"nested inside", stay(12, 14), false},
		{"same check-in, shorter", stay(10, 12), false},
		{"same check-in, longer", stay(10, 20), false},
		{"same check-out, later start", stay(13, 15), false},
		{"contains existing", stay(8, 20), false},
		{"starts before, ends inside", stay(8, 12), true},
		{"starts before, shares check-out", stay(8, 15), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, service.IsAvailable(tc.candidate, existing))
		})
	}
}

func TestIsAvailable_AnyConflictRejects(t *testing.T) {
	existing := []domain.Stay{stay(1, 3), stay(5, 7), stay(20, 22)}

	assert.False(t, service.IsAvailable(stay(6, 9), existing))
	assert.True(t, service.IsAvailable(stay(9, 12), existing))
}

func TestIsAvailable_IsNotSymmetric(t *testing.T) {
	a := stay(8, 12)
	b := stay(10, 15)

	// a starts before b and leaves inside it: admitted against b.
	assert.True(t, service.IsAvailable(a, []domain.Stay{b}))
	// b starts inside a: rejected against a.
	assert.False(t, service.IsAvailable(b, []domain.Stay{a}))
}

func TestIsAvailable_IgnoresTimeOfDay(t *testing.T) {
	existing := []domain.Stay{stay(10, 15)}
	candidate := domain.Stay{
		CheckIn:  day(15).Add(14 * time.Hour),
		CheckOut: day(18).Add(10 * time.Hour),
	}

	assert.True(t, service.IsAvailable(candidate, existing))
}

func TestIsAvailable_DoesNotModifyInput(t *testing.T) {
	existing := []domain.Stay{stay(10, 15), stay(20, 25)}
	snapshot := append([]domain.Stay(nil), existing...)

	service.IsAvailable(stay(12, 22), existing)

	assert.Equal(t, snapshot, existing)
}
