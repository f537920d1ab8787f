package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/hotel-booking/internal/domain"
	"github.com/pkordes/hotel-booking/internal/repo"
)

// UserService implements registration, login and user administration.
type UserService struct {
	users  repo.UserRepo
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewUserService constructs a UserService.
func NewUserService(users repo.UserRepo, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a self-service account from reg. The requested role is
// ignored: public registration always yields a USER.
// Returns domain.ErrValidation for missing fields and domain.ErrAlreadyExists
// when the email is taken.
func (s *UserService) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	reg.Role = domain.RoleUser
	return s.create(ctx, "service.UserService.Register", reg)
}

// CreateUser creates an account on behalf of an administrator and honours the
// requested role. A blank role defaults to USER; anything other than USER or
// ADMIN is a validation error.
func (s *UserService) CreateUser(ctx context.Context, reg domain.Registration) (domain.User, error) {
	return s.create(ctx, "service.UserService.CreateUser", reg)
}

// create validates, hashes and stores reg. op prefixes wrapped store errors;
// validation and duplicate-email errors are returned unprefixed.
func (s *UserService) create(ctx context.Context, op string, reg domain.Registration) (domain.User, error) {
	reg = normalizeRegistration(reg)
	if err := validateRegistration(reg); err != nil {
		return domain.User{}, err
	}

	exists, err := s.users.ExistsByEmail(ctx, reg.Email)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return domain.User{}, fmt.Errorf("%s %w", reg.Email, domain.ErrAlreadyExists)
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: hash: %w", op, err)
	}

	created, err := s.users.Create(ctx, domain.User{
		Email:        reg.Email,
		Name:         reg.Name,
		PhoneNumber:  reg.PhoneNumber,
		PasswordHash: hash,
		Role:         reg.Role,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// Login verifies the credentials and issues a bearer token.
// Returns domain.ErrNotFound for an unknown email and domain.ErrUnauthorized
// for a wrong password.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.UserService.Login: %w", notFoundAs(err, domain.ErrUserNotFound))
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return domain.Session{}, fmt.Errorf("service.UserService.Login: %w", domain.ErrUnauthorized)
	}

	token, ttl, err := s.tokens.Issue(u)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.UserService.Login: issue token: %w", err)
	}
	return domain.Session{
		Token:          token,
		Role:           u.Role,
		ExpirationTime: expirationText(ttl),
	}, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.UserService.List: %w", err)
	}
	return users, nil
}

// GetByID returns a user with their booking history.
func (s *UserService) GetByID(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", notFoundAs(err, domain.ErrUserNotFound))
	}
	return u, nil
}

// Delete removes a user and their bookings.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", notFoundAs(err, domain.ErrUserNotFound))
	}
	return nil
}

// normalizeRegistration lowercases the email, upper-cases the role and
// defaults a blank role to USER.
func normalizeRegistration(reg domain.Registration) domain.Registration {
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Role = strings.ToUpper(strings.TrimSpace(reg.Role))
	if reg.Role == "" {
		reg.Role = domain.RoleUser
	}
	return reg
}

func validateRegistration(reg domain.Registration) error {
	var missing []string
	if reg.Email == "" {
		missing = append(missing, "email")
	}
	if reg.Name == "" {
		missing = append(missing, "name")
	}
	if reg.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", domain.ErrValidation, strings.Join(missing, ", "))
	}
	if reg.Role != domain.RoleUser && reg.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: role must be %s or %s", domain.ErrValidation, domain.RoleUser, domain.RoleAdmin)
	}
	return nil
}

func expirationText(ttl time.Duration) string {
	days := int(ttl / (24 * time.Hour))
	if days == 1 {
		return "1 Day"
	}
	return fmt.Sprintf("%d Days", days)
}
