package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hotel-booking/internal/domain"
)

var ann = domain.User{ID: 42, Email: "ann@example.com", Role: domain.RoleAdmin}

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	iss := NewTokenIssuer("s3cret", 0)

	token, ttl, err := iss.Issue(ann)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, ttl)

	p, err := iss.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, Principal{UserID: 42, Email: "ann@example.com", Role: domain.RoleAdmin}, p)
}

func TestTokenIssuer_ClaimsCarryIDAndIssuer(t *testing.T) {
	iss := NewTokenIssuer("s3cret", time.Hour)

	token, _, err := iss.Issue(ann)
	require.NoError(t, err)

	var claims Claims
	_, _, err = jwt.NewParser().ParseUnverified(token, &claims)
	require.NoError(t, err)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenIssuer_Parse_WrongSecret(t *testing.T) {
	token, _, err := NewTokenIssuer("one", 0).Issue(ann)
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", 0).Parse(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenIssuer_Parse_Expired(t *testing.T) {
	iss := NewTokenIssuer("s3cret", time.Hour)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := iss.Issue(ann)
	require.NoError(t, err)

	_, err = NewTokenIssuer("s3cret", time.Hour).Parse(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenIssuer_Parse_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenIssuer("s3cret", 0).Parse(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenIssuer_Parse_Garbage(t *testing.T) {
	_, err := NewTokenIssuer("s3cret", 0).Parse("not-a-token")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPrincipalFrom(t *testing.T) {
	_, err := PrincipalFrom(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.ErrorIs(t, err, ErrNoPrincipal)

	ctx := WithPrincipal(context.Background(), Principal{UserID: 1, Role: domain.RoleUser})
	p, err := PrincipalFrom(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.UserID)
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: 4}

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, h.Compare(hash, "s3cret"))
	assert.Error(t, h.Compare(hash, "guess"))
}
