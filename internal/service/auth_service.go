package service

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"golang.org/x/crypto/bcrypt"

	"user-dashboard/internal/auth"
	"user-dashboard/internal/domain"
	"user-dashboard/internal/repository"
)

// hashCost is the bcrypt work factor applied to every stored password.
const hashCost = 12

// AuthService orchestrates registration, login, and current-user lookup.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, *domain.PublicUser, error)
	Login(ctx context.Context, email, password string) (string, *domain.PublicUser, error)
	GetByID(ctx context.Context, id string) (*domain.PublicUser, error)
}

type authService struct {
	users repository.UserRepository
	codec *auth.TokenCodec
}

func NewAuthService(users repository.UserRepository, codec *auth.TokenCodec) AuthService {
	return &authService{users: users, codec: codec}
}

// Register validates the fields, hashes the password, persists the record,
// and issues a token bound to the new identity. A duplicate email fails the
// same way whether caught by the pre-check or by the store's unique index.
func (s *authService) Register(ctx context.Context, name, email, password string) (string, *domain.PublicUser, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if err := validateUserFields(name, email, password); err != nil {
		return "", nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.codec.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user.PublicView(), nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the same error so callers cannot enumerate accounts.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.PublicUser, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.NewValidationError("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.IsActive {
		return "", nil, domain.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	// targeted update, no revalidation of the record
	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return "", nil, err
	}
	user.LastLogin = &now

	token, err := s.codec.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user.PublicView(), nil
}

func (s *authService) GetByID(ctx context.Context, id string) (*domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.PublicView(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateUserFields applies the schema constraints shared by registration
// and admin user creation.
func validateUserFields(name, email, password string) error {
	err := validation.Errors{
		"name":     validation.Validate(name, validation.Required, validation.Length(2, 50)),
		"email":    validation.Validate(email, validation.Required, is.Email),
		"password": validation.Validate(password, validation.Required, validation.Length(6, 0)),
	}.Filter()
	if err != nil {
		return domain.NewValidationError(err.Error())
	}
	return nil
}
