package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/hotel-booking/internal/auth"
	"github.com/pkordes/hotel-booking/internal/domain"
)

// Register handles POST /auth/register. Self-registered accounts are always USER.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var body RegisterRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}

	u, err := s.users.Register(r.Context(), body.registration(""))
	s.writeCreatedUser(w, r, u, err)
}

// CreateUser handles POST /users, the admin route that may assign any role.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body CreateUserRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}

	u, err := s.users.CreateUser(r.Context(), body.registration(body.Role))
	s.writeCreatedUser(w, r, u, err)
}

func (s *Server) writeCreatedUser(w http.ResponseWriter, r *http.Request, u domain.User, err error) {
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			validationFailed(w, err)
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, codeConflict, err.Error())
		default:
			s.internalError(w, r, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, userToResponse(u))
}

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var body LoginRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	if body.Email == "" || body.Password == "" {
		badRequest(w, "email and password are required")
		return
	}

	session, err := s.users.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFound(w, "user not found")
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid credentials")
		default:
			s.internalError(w, r, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{
		Token:          session.Token,
		Role:           session.Role,
		ExpirationTime: session.ExpirationTime,
	})
}

// ListUsers handles GET /users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userToResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetUser handles GET /users/{id}. The user's booking history is included.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	s.writeUser(w, r, id)
}

// GetMe handles GET /users/me for the authenticated caller.
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	p, err := auth.PrincipalFrom(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
		return
	}
	s.writeUser(w, r, p.UserID)
}

func (s *Server) writeUser(w http.ResponseWriter, r *http.Request, id int64) {
	u, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "user not found")
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(u))
}

// DeleteUser handles DELETE /users/{id}.
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "user not found")
			return
		}
		s.internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
