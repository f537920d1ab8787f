package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/hotel-booking/internal/domain"
	"github.com/pkordes/hotel-booking/internal/repo"
)

// maxCodeAttempts bounds how many confirmation codes Create tries before giving up.
const maxCodeAttempts = 5

// BookingService implements the booking workflow: admission against a
// room's existing stays, confirmation code assignment, and persistence.
type BookingService struct {
	tx       repo.Transactor
	bookings repo.BookingRepo
	metrics  BookingMetrics
	events   EventPublisher
	newCode  func() (string, error)
	log      *slog.Logger
}

// BookingOption customizes a BookingService.
type BookingOption func(*BookingService)

// WithEventPublisher sets where booking lifecycle events are sent.
func WithEventPublisher(p EventPublisher) BookingOption {
	return func(s *BookingService) { s.events = p }
}

// WithCodeGenerator replaces NewConfirmationCode.
func WithCodeGenerator(fn func() (string, error)) BookingOption {
	return func(s *BookingService) { s.newCode = fn }
}

// WithLogger sets the logger used for non-fatal workflow warnings.
func WithLogger(l *slog.Logger) BookingOption {
	return func(s *BookingService) { s.log = l }
}

// NewBookingService constructs a BookingService. Reads go through bookings;
// Create runs inside a transaction opened by tx.
func NewBookingService(tx repo.Transactor, bookings repo.BookingRepo, metrics BookingMetrics, opts ...BookingOption) *BookingService {
	s := &BookingService{
		tx:       tx,
		bookings: bookings,
		metrics:  metrics,
		events:   nopPublisher{},
		newCode:  NewConfirmationCode,
		log:      slog.Default(),
	}
	if s.metrics == nil {
		s.metrics = nopMetrics{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create books roomID for guestID over the proposed stay.
//
// Outcomes:
//   - domain.ErrRoomNotFound when the room does not exist (guest is not looked up),
//   - domain.ErrGuestNotFound when the guest does not exist,
//   - domain.ErrRoomUnavailable when the stay overlaps an existing booking,
//   - domain.ErrSaveBooking wrapping the cause for anything else, including
//     invalid dates or guest counts.
//
// The room row stays locked until the transaction ends, so concurrent
// creates for the same room are admitted one at a time.
func (s *BookingService) Create(ctx context.Context, roomID, guestID int64, proposed domain.Booking) (created domain.Booking, err error) {
	stop := s.metrics.StartTimer()
	defer stop()
	defer func() {
		if err != nil {
			s.metrics.IncError()
			return
		}
		s.metrics.IncSuccess()
	}()

	err = s.tx.WithinTx(ctx, func(st repo.Stores) error {
		room, err := st.Rooms.GetByIDForUpdate(ctx, roomID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrRoomNotFound
			}
			return err
		}
		if _, err := st.Users.GetByID(ctx, guestID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrGuestNotFound
			}
			return err
		}
		if err := validateBooking(proposed); err != nil {
			return err
		}

		stay := proposed.Stay()
		if !IsAvailable(stay, room.Stays()) {
			return domain.ErrRoomUnavailable
		}

		proposed.RoomID = room.ID
		proposed.GuestID = guestID
		proposed.CheckIn, proposed.CheckOut = stay.CheckIn, stay.CheckOut
		created, err = s.insertWithUniqueCode(ctx, st.Bookings, proposed)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound),
			errors.Is(err, domain.ErrGuestNotFound),
			errors.Is(err, domain.ErrRoomUnavailable):
			return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
		}
		return domain.Booking{}, fmt.Errorf("%w: %w", domain.ErrSaveBooking, err)
	}

	s.publish(ctx, domain.EventBookingCreated, created)
	return created, nil
}

// insertWithUniqueCode assigns a fresh confirmation code and inserts b,
// regenerating the code when it collides with an existing one.
func (s *BookingService) insertWithUniqueCode(ctx context.Context, bookings repo.BookingRepo, b domain.Booking) (domain.Booking, error) {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return domain.Booking{}, err
		}
		b.ConfirmationCode = code

		saved, err := bookings.Create(ctx, b)
		if errors.Is(err, domain.ErrDuplicateCode) {
			s.log.WarnContext(ctx, "confirmation code collision", "attempt", attempt)
			continue
		}
		if err != nil {
			return domain.Booking{}, err
		}
		return saved, nil
	}
	return domain.Booking{}, fmt.Errorf("no unique confirmation code after %d attempts: %w", maxCodeAttempts, domain.ErrDuplicateCode)
}

// GetByConfirmationCode returns the booking holding code.
// Returns domain.ErrBookingNotFound if no booking has that code.
func (s *BookingService) GetByConfirmationCode(ctx context.Context, code string) (domain.Booking, error) {
	b, err := s.bookings.GetByConfirmationCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Booking{}, fmt.Errorf("service.BookingService.GetByConfirmationCode: %w", domain.ErrBookingNotFound)
		}
		return domain.Booking{}, fmt.Errorf("error finding a booking: %w", err)
	}
	return b, nil
}

// List returns every booking, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting all bookings: %w", err)
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

// Cancel deletes the booking with the given ID. The booking is looked up
// first; no delete is issued when it does not exist.
func (s *BookingService) Cancel(ctx context.Context, id int64) error {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("service.BookingService.Cancel: %w", domain.ErrBookingNotFound)
		}
		return fmt.Errorf("error cancelling a booking: %w", err)
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return fmt.Errorf("error cancelling a booking: %w", err)
	}

	s.publish(ctx, domain.EventBookingCancelled, b)
	return nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, b domain.Booking) {
	e := domain.BookingEvent{Type: eventType, Booking: b, OccurredAt: time.Now().UTC()}
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.WarnContext(ctx, "publish booking event",
			"type", eventType,
			"booking_id", b.ID,
			"error", err,
		)
	}
}

// validateBooking enforces the persistence rules of a proposed booking.
func validateBooking(b domain.Booking) error {
	if b.CheckIn.IsZero() || b.CheckOut.IsZero() {
		return fmt.Errorf("%w: check in and check out dates are required", domain.ErrValidation)
	}
	if !domain.Date(b.CheckOut).After(domain.Date(b.CheckIn)) {
		return fmt.Errorf("%w: check out date must come after check in date", domain.ErrValidation)
	}
	if b.Adults < 1 {
		return fmt.Errorf("%w: number of adults must be at least 1", domain.ErrValidation)
	}
	if b.Children < 0 {
		return fmt.Errorf("%w: number of children must not be negative", domain.ErrValidation)
	}
	return nil
}
