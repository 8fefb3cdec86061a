package service

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"user-dashboard/internal/domain"
	"user-dashboard/internal/repository"
)

// ListParams carries the raw query parameters of an admin listing request.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	Role      string
	IsActive  string
	SortBy    string
	SortOrder string
}

// Pagination describes one page of an admin listing.
type Pagination struct {
	TotalUsers      int  `json:"totalUsers"`
	TotalPages      int  `json:"totalPages"`
	CurrentPage     int  `json:"currentPage"`
	Limit           int  `json:"limit"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// UserPage is the result of an admin listing: password-stripped records plus
// pagination metadata.
type UserPage struct {
	Users      []*domain.PublicUser `json:"users"`
	Pagination Pagination           `json:"pagination"`
}

// CreateParams are the fields of an admin user creation. Role and IsActive
// are caller-settable, unlike self registration.
type CreateParams struct {
	Name     string
	Email    string
	Password string
	Role     *string
	IsActive *bool
}

// UpdateParams are the fields of a partial update; nil fields stay untouched.
type UpdateParams struct {
	Name     *string
	Email    *string
	Role     *string
	IsActive *bool
}

// DeletedUser summarizes a removed record.
type DeletedUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserAdminService provides the privileged CRUD surface over user records.
// Callers must already have passed the admin gate.
type UserAdminService interface {
	List(ctx context.Context, params ListParams) (*UserPage, error)
	Get(ctx context.Context, id string) (*domain.PublicUser, error)
	Create(ctx context.Context, params CreateParams) (*domain.PublicUser, error)
	Update(ctx context.Context, id string, params UpdateParams) (*domain.PublicUser, error)
	Delete(ctx context.Context, callerID, id string) (*DeletedUser, error)
}

type userAdminService struct {
	users repository.UserRepository
}

func NewUserAdminService(users repository.UserRepository) UserAdminService {
	return &userAdminService{users: users}
}

func (s *userAdminService) List(ctx context.Context, params ListParams) (*UserPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 10
	}

	filter := repository.ListFilter{
		Search:  params.Search,
		Role:    domain.Role(params.Role),
		SortBy:  params.SortBy,
		SortAsc: params.SortOrder == "asc",
		Page:    page,
		Limit:   limit,
	}
	if params.IsActive != "" {
		active := params.IsActive == "true"
		filter.IsActive = &active
	}

	result, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := (result.Total + limit - 1) / limit
	users := make([]*domain.PublicUser, len(result.Users))
	for i := range result.Users {
		users[i] = result.Users[i].PublicView()
	}

	return &UserPage{
		Users: users,
		Pagination: Pagination{
			TotalUsers:      result.Total,
			TotalPages:      totalPages,
			CurrentPage:     page,
			Limit:           limit,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
	}, nil
}

func (s *userAdminService) Get(ctx context.Context, id string) (*domain.PublicUser, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.PublicView(), nil
}

func (s *userAdminService) Create(ctx context.Context, params CreateParams) (*domain.PublicUser, error) {
	name := strings.TrimSpace(params.Name)
	email := normalizeEmail(params.Email)

	if err := validateUserFields(name, email, params.Password); err != nil {
		return nil, err
	}

	role := domain.RoleUser
	if params.Role != nil && *params.Role != "" {
		role = domain.Role(*params.Role)
		if !role.Valid() {
			return nil, domain.NewValidationError("role: must be either user or admin")
		}
	}
	isActive := true
	if params.IsActive != nil {
		isActive = *params.IsActive
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), hashCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     isActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user.PublicView(), nil
}

// Update applies only the provided fields and re-validates just those.
// A changed email is re-checked for uniqueness against all other records.
func (s *userAdminService) Update(ctx context.Context, id string, params UpdateParams) (*domain.PublicUser, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	update := repository.UserUpdate{IsActive: params.IsActive}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if err := validation.Validate(name, validation.Required, validation.Length(2, 50)); err != nil {
			return nil, domain.NewValidationError("name: " + err.Error())
		}
		update.Name = &name
	}
	if params.Email != nil {
		email := normalizeEmail(*params.Email)
		if err := validation.Validate(email, validation.Required, is.Email); err != nil {
			return nil, domain.NewValidationError("email: " + err.Error())
		}
		existing, err := s.users.GetByEmail(ctx, email)
		if err == nil && existing.ID != id {
			return nil, domain.ErrDuplicateEmail
		} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		update.Email = &email
	}
	if params.Role != nil {
		role := domain.Role(*params.Role)
		if !role.Valid() {
			return nil, domain.NewValidationError("role: must be either user or admin")
		}
		update.Role = &role
	}

	user, err := s.users.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	return user.PublicView(), nil
}

func (s *userAdminService) Delete(ctx context.Context, callerID, id string) (*DeletedUser, error) {
	if callerID == id {
		return nil, domain.ErrSelfDeletion
	}
	if err := validateID(id); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &DeletedUser{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}
