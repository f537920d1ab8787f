package domain

import "time"

// Role labels understood by the authorization middleware.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is a registered guest or administrator.
// PasswordHash is never serialized.
type User struct {
	ID           int64
	Email        string
	Name         string
	PhoneNumber  string
	PasswordHash string
	Role         string
	Bookings     []Booking // populated on single-user reads only
	CreatedAt    time.Time
}

// Registration is the input to user registration before normalization.
type Registration struct {
	Email       string
	Name        string
	PhoneNumber string
	Password    string
	Role        string
}

// Session is the result of a successful login.
type Session struct {
	Token          string
	Role           string
	ExpirationTime string
}
