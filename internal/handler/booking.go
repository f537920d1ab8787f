package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/hotel-booking/internal/domain"
)

// CreateBooking handles POST /bookings/rooms/{roomId}/guests/{guestId}.
//
// Room, guest and availability failures answer 404 with a specific message;
// every other failure, including invalid dates, answers 500 with
// "error saving a booking: <cause>".
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	guestID, err := pathID(r, "guestId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var body BookingRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}

	created, err := s.bookings.Create(r.Context(), roomID, guestID, domain.Booking{
		CheckIn:  body.CheckInDate.Time,
		CheckOut: body.CheckOutDate.Time,
		Adults:   body.NumOfAdults,
		Children: body.NumOfChildren,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			notFound(w, "room not found")
		case errors.Is(err, domain.ErrGuestNotFound):
			notFound(w, "guest not found")
		case errors.Is(err, domain.ErrRoomUnavailable):
			notFound(w, "room not available for selected date range")
		default:
			s.internalError(w, r, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, bookingToResponse(created))
}

// ListBookings handles GET /bookings. Newest bookings come first.
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.bookings.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingToResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetBookingByCode handles GET /bookings/code/{code}.
func (s *Server) GetBookingByCode(w http.ResponseWriter, r *http.Request) {
	b, err := s.bookings.GetByConfirmationCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "booking not found")
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(b))
}

// CancelBooking handles DELETE /bookings/{id}.
func (s *Server) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.bookings.Cancel(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "booking does not exist")
			return
		}
		s.internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
