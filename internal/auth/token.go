// Package auth issues and verifies bearer tokens and hashes passwords.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/pkordes/hotel-booking/internal/domain"
)

const (
	// Issuer is the iss claim of every token minted here.
	Issuer = "hotel-booking"

	// DefaultTTL is how long a login stays valid.
	DefaultTTL = 7 * 24 * time.Hour
)

// Claims is the JWT payload.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller extracted from a token.
type Principal struct {
	UserID int64
	Email  string
	Role   string
}

// TokenIssuer signs HS256 tokens with a shared secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer returns an issuer signing with secret. A ttl <= 0 means DefaultTTL.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue mints a token for u and reports how long it stays valid.
func (i *TokenIssuer) Issue(u domain.User) (string, time.Duration, error) {
	now := i.now()
	claims := Claims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(u.ID, 10),
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", 0, fmt.Errorf("auth.TokenIssuer.Issue: %w", err)
	}
	return signed, i.ttl, nil
}

// Parse verifies token and returns its caller.
// Every rejection wraps domain.ErrUnauthorized.
func (i *TokenIssuer) Parse(token string) (Principal, error) {
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if !parsed.Valid {
		return Principal{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	if !claims.VerifyIssuer(Issuer, true) {
		return Principal{}, fmt.Errorf("%w: unexpected issuer %q", domain.ErrUnauthorized, claims.Issuer)
	}
	if !claims.VerifyExpiresAt(i.now(), true) {
		return Principal{}, fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: bad subject", domain.ErrUnauthorized)
	}
	return Principal{UserID: id, Email: claims.Email, Role: claims.Role}, nil
}
