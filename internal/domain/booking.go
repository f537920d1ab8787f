package domain

import "time"

// Stay is a check-in/check-out pair. Both dates are calendar dates; the
// time-of-day component is always midnight UTC.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewStay builds a Stay truncated to calendar dates.
func NewStay(checkIn, checkOut time.Time) Stay {
	return Stay{CheckIn: Date(checkIn), CheckOut: Date(checkOut)}
}

// Booking is a reservation of one room by one guest.
// It references its room and guest by ID only; repos materialize the
// Room.Bookings and User.Bookings collections on read.
type Booking struct {
	ID               int64
	RoomID           int64
	GuestID          int64
	CheckIn          time.Time
	CheckOut         time.Time
	Adults           int
	Children         int
	ConfirmationCode string
	CreatedAt        time.Time
}

// TotalGuests is derived from the adult and child counts.
func (b Booking) TotalGuests() int {
	return b.Adults + b.Children
}

// Stay returns the booking's date range.
func (b Booking) Stay() Stay {
	return NewStay(b.CheckIn, b.CheckOut)
}

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
