package domain

import "time"

// Booking lifecycle event types.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published after a booking is created or cancelled.
type BookingEvent struct {
	Type       string
	Booking    Booking
	OccurredAt time.Time
}
