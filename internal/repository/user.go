package repository

import (
	"context"
	"time"

	"user-dashboard/internal/domain"
)

// ListFilter narrows and orders a user listing. Zero values mean "no filter".
type ListFilter struct {
	// Search matches name OR email by case-insensitive substring.
	Search string
	// Role, when non-empty, matches exactly.
	Role domain.Role
	// IsActive is a tri-state: nil means no filter.
	IsActive *bool
	// SortBy is one of: name, email, role, isActive, lastLogin, createdAt,
	// updatedAt. Unknown values fall back to createdAt.
	SortBy string
	// SortAsc orders ascending when true, descending otherwise.
	SortAsc bool
	// Page is 1-based; Limit is the page size.
	Page  int
	Limit int
}

// ListResult is one page of users plus the unpaginated match count.
type ListResult struct {
	Users []domain.User
	Total int
}

// UserUpdate carries the fields of a partial update; nil fields are untouched.
type UserUpdate struct {
	Name     *string
	Email    *string
	Role     *domain.Role
	IsActive *bool
}

// UserRepository defines persistence operations for User records.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
