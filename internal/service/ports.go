// Package service contains the business logic for the hotel booking API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"io"
	"time"

	"github.com/pkordes/hotel-booking/internal/domain"
)

// BookingMetrics receives the signals of the booking-creation workflow.
// StartTimer begins a duration sample; the returned func records it.
type BookingMetrics interface {
	IncSuccess()
	IncError()
	StartTimer() (stop func())
}

// MediaStore stores a binary and returns a URL it can be fetched from.
type MediaStore interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
}

// EventPublisher emits booking lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, e domain.BookingEvent) error
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer mints bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(u domain.User) (token string, ttl time.Duration, err error)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.BookingEvent) error { return nil }

type nopMetrics struct{}

func (nopMetrics) IncSuccess()        {}
func (nopMetrics) IncError()          {}
func (nopMetrics) StartTimer() func() { return func() {} }
