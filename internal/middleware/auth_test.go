package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hotel-booking/internal/auth"
	"github.com/pkordes/hotel-booking/internal/domain"
	"github.com/pkordes/hotel-booking/internal/middleware"
)

// stubParser accepts exactly one token per principal.
type stubParser map[string]auth.Principal

func (s stubParser) Parse(token string) (auth.Principal, error) {
	p, ok := s[token]
	if !ok {
		return auth.Principal{}, errors.New("bad token")
	}
	return p, nil
}

var tokens = stubParser{
	"user-token":  {UserID: 1, Role: domain.RoleUser},
	"admin-token": {UserID: 2, Role: domain.RoleAdmin},
}

// principalEcho writes the caller's role so tests can see what reached the handler.
var principalEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	p, err := auth.PrincipalFrom(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(p.Role))
})

func serve(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	h := middleware.RequireAuth(tokens)(principalEcho)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer user-token", http.StatusOK, domain.RoleUser},
		{"scheme is case-insensitive", "bearer admin-token", http.StatusOK, domain.RoleAdmin},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic dXNlcjpwdw==", http.StatusUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, ""},
		{"unknown token", "Bearer forged", http.StatusUnauthorized, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(h, tc.header)

			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	h := middleware.RequireAuth(tokens)(middleware.RequireRole(domain.RoleAdmin)(principalEcho))

	assert.Equal(t, http.StatusOK, serve(h, "Bearer admin-token").Code)

	rec := serve(h, "Bearer user-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"forbidden"`)
}

func TestRequireRole_WithoutRequireAuth(t *testing.T) {
	h := middleware.RequireRole(domain.RoleAdmin)(principalEcho)

	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer admin-token").Code)
}
