package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkordes/hotel-booking/internal/domain"
)

// ErrNoPrincipal is returned by PrincipalFrom when the context carries no caller.
var ErrNoPrincipal = errors.New("no authenticated principal")

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller stored by WithPrincipal.
func PrincipalFrom(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok {
		return Principal{}, fmt.Errorf("%w: %w", domain.ErrUnauthorized, ErrNoPrincipal)
	}
	return p, nil
}
