// Package domain contains the core data types for the hotel booking application.
// This package has no dependencies on other internal packages and is imported
// by every other internal package (repo, service, handler).
package domain

import "time"

// Room is a bookable unit of inventory.
// Type is an open label ("STANDARD", "DELUXE", "SUITE", ...), not a closed enum.
// Price is kept as the decimal string stored in the NUMERIC column so that
// no float rounding creeps in between the database and the API.
type Room struct {
	ID          int64     `json:"id"`
	Type        string    `json:"room_type"`
	Price       string    `json:"room_price"`
	Description string    `json:"room_description,omitempty"`
	PhotoURL    string    `json:"room_photo_url,omitempty"`
	Bookings    []Booking `json:"bookings,omitempty"` // populated on single-room reads only
	CreatedAt   time.Time `json:"created_at"`
}

// Stays returns the stays currently held on the room.
func (r Room) Stays() []Stay {
	stays := make([]Stay, 0, len(r.Bookings))
	for _, b := range r.Bookings {
		stays = append(stays, b.Stay())
	}
	return stays
}

// RoomPatch carries the optional fields of a room update.
// Empty strings mean "leave unchanged".
type RoomPatch struct {
	Type        string
	Price       string
	Description string
}
