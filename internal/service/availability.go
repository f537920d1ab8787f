package service

import "github.com/pkordes/hotel-booking/internal/domain"

// IsAvailable reports whether candidate may be admitted against the stays a
// room already holds. An empty set of existing stays is always available.
func IsAvailable(candidate domain.Stay, existing []domain.Stay) bool {
	for _, e := range existing {
		if overlaps(candidate, e) {
			return false
		}
	}
	return true
}

// overlaps applies the admission rule. It is not a half-open interval test:
//   - checking in on an existing check-out day is allowed (turnover),
//   - a shared check-in day or a shared check-out day always conflicts,
//   - a candidate that starts before an existing stay and leaves strictly
//     inside it is allowed.
//
// Do not replace this with start < otherEnd && otherStart < end.
func overlaps(c, e domain.Stay) bool {
	cIn, cOut := domain.Date(c.CheckIn), domain.Date(c.CheckOut)
	eIn, eOut := domain.Date(e.CheckIn), domain.Date(e.CheckOut)

	return (cIn.After(eIn) && cIn.Before(eOut)) ||
		cIn.Equal(eIn) ||
		cOut.Equal(eOut) ||
		(!cIn.After(eIn) && !cOut.Before(eOut))
}
