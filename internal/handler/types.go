package handler

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/hotel-booking/internal/domain"
)

// RoomResponse is the JSON representation of a room.
type RoomResponse struct {
	ID              int64             `json:"id"`
	RoomType        string            `json:"room_type"`
	RoomPrice       string            `json:"room_price"`
	RoomDescription string            `json:"room_description,omitempty"`
	RoomPhotoURL    string            `json:"room_photo_url,omitempty"`
	Bookings        []BookingResponse `json:"bookings,omitempty"`
}

// BookingRequest is the body of POST /bookings/rooms/{roomId}/guests/{guestId}.
type BookingRequest struct {
	CheckInDate   openapi_types.Date `json:"check_in_date"`
	CheckOutDate  openapi_types.Date `json:"check_out_date"`
	NumOfAdults   int                `json:"num_of_adults"`
	NumOfChildren int                `json:"num_of_children"`
}

// BookingResponse is the JSON representation of a booking.
type BookingResponse struct {
	ID                      int64              `json:"id"`
	CheckInDate             openapi_types.Date `json:"check_in_date"`
	CheckOutDate            openapi_types.Date `json:"check_out_date"`
	NumOfAdults             int                `json:"num_of_adults"`
	NumOfChildren           int                `json:"num_of_children"`
	TotalNumOfGuest         int                `json:"total_num_of_guest"`
	BookingConfirmationCode string             `json:"booking_confirmation_code"`
	RoomID                  int64              `json:"room_id"`
	GuestID                 int64              `json:"guest_id"`
}

// UserResponse is the JSON representation of a user. The password hash is never exposed.
type UserResponse struct {
	ID          int64             `json:"id"`
	Email       string            `json:"email"`
	Name        string            `json:"name"`
	PhoneNumber string            `json:"phone_number,omitempty"`
	Role        string            `json:"role"`
	Bookings    []BookingResponse `json:"bookings,omitempty"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

func (b RegisterRequest) registration(role string) domain.Registration {
	return domain.Registration{
		Email:       b.Email,
		Name:        b.Name,
		PhoneNumber: b.PhoneNumber,
		Password:    b.Password,
		Role:        role,
	}
}

// CreateUserRequest is the body of the admin-only POST /users.
type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Token          string `json:"token"`
	Role           string `json:"role"`
	ExpirationTime string `json:"expiration_time"`
}

// --- mapping helpers --------------------------------------------------------

func roomToResponse(r domain.Room) RoomResponse {
	return RoomResponse{
		ID:              r.ID,
		RoomType:        r.Type,
		RoomPrice:       r.Price,
		RoomDescription: r.Description,
		RoomPhotoURL:    r.PhotoURL,
		Bookings:        bookingsToResponse(r.Bookings),
	}
}

// roomsToResponse always returns a non-nil slice so empty lists encode as [].
func roomsToResponse(rooms []domain.Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, roomToResponse(r))
	}
	return out
}

func bookingToResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		ID:                      b.ID,
		CheckInDate:             openapi_types.Date{Time: b.CheckIn},
		CheckOutDate:            openapi_types.Date{Time: b.CheckOut},
		NumOfAdults:             b.Adults,
		NumOfChildren:           b.Children,
		TotalNumOfGuest:         b.TotalGuests(),
		BookingConfirmationCode: b.ConfirmationCode,
		RoomID:                  b.RoomID,
		GuestID:                 b.GuestID,
	}
}

// bookingsToResponse returns nil for no bookings so the field is omitted.
func bookingsToResponse(bookings []domain.Booking) []BookingResponse {
	if len(bookings) == 0 {
		return nil
	}
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingToResponse(b))
	}
	return out
}

func userToResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Bookings:    bookingsToResponse(u.Bookings),
	}
}
