package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, check-out before check-in).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write collides with existing state, such as
// a stay that overlaps a booking already held on the room.
var ErrConflict = errors.New("conflict")

// ErrAlreadyExists is returned when a unique natural key (e.g. email) is taken.
// Handlers should map this to HTTP 409.
var ErrAlreadyExists = errors.New("already exists")

// ErrUnauthorized is returned when credentials or a bearer token are rejected.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUploadFailed is returned by the media store when a binary could not be stored.
var ErrUploadFailed = errors.New("unable to upload image")

// ErrDuplicateCode is returned by the booking repo when the generated
// confirmation code is already taken. The booking service regenerates and retries.
var ErrDuplicateCode = errors.New("confirmation code already in use")

// ErrSaveBooking marks every unexpected failure of the booking workflow.
// The wrapped cause is part of the message: "error saving a booking: <cause>".
// Handlers should map this to HTTP 500.
var ErrSaveBooking = errors.New("error saving a booking")

// Specific outcomes of the booking workflow. Each wraps a general sentinel so
// callers can match on either.
var (
	ErrRoomNotFound    = fmt.Errorf("room %w", ErrNotFound)
	ErrGuestNotFound   = fmt.Errorf("guest %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)
	ErrRoomUnavailable = fmt.Errorf("room not available for selected date range: %w", ErrConflict)
)
