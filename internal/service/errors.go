package service

import (
	"errors"

	"github.com/pkordes/hotel-booking/internal/domain"
)

// notFoundAs replaces a bare domain.ErrNotFound with a more specific sentinel
// that still matches domain.ErrNotFound.
func notFoundAs(err, specific error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return specific
	}
	return err
}
