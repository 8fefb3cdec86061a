package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-dashboard/internal/domain"
)

const missingID = "7f3b2a58-0000-0000-0000-000000000000"

func newAdminService(t *testing.T) UserAdminService {
	t.Helper()
	repo, _ := newTestDeps(t)
	return NewUserAdminService(repo)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestAdminCreateDefaults(t *testing.T) {
	svc := newAdminService(t)

	user, err := svc.Create(context.Background(), CreateParams{
		Name:     "John Doe",
		Email:    "JOHN@X.COM",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "john@x.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)
}

func TestAdminCreateExplicitRoleAndState(t *testing.T) {
	svc := newAdminService(t)

	user, err := svc.Create(context.Background(), CreateParams{
		Name:     "Admin User",
		Email:    "admin@example.com",
		Password: "admin123",
		Role:     strPtr("admin"),
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.False(t, user.IsActive)
}

func TestAdminCreateInvalidRole(t *testing.T) {
	svc := newAdminService(t)

	_, err := svc.Create(context.Background(), CreateParams{
		Name:     "John Doe",
		Email:    "john@x.com",
		Password: "password123",
		Role:     strPtr("superuser"),
	})
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok, "expected validation error, got %v", err)
}

func TestAdminCreateDuplicate(t *testing.T) {
	svc := newAdminService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateParams{Name: "John", Email: "john@x.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateParams{Name: "Other", Email: "john@x.com", Password: "password456"})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAdminGet(t *testing.T) {
	svc := newAdminService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateParams{Name: "John", Email: "john@x.com", Password: "password123"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	_, err = svc.Get(ctx, "not-a-uuid")
	require.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.Get(ctx, missingID)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAdminUpdatePartial(t *testing.T) {
	svc := newAdminService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateParams{Name: "John", Email: "john@x.com", Password: "password123"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateParams{Name: strPtr("Johnny")})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", updated.Name)
	assert.Equal(t, "john@x.com", updated.Email)

	updated, err = svc.Update(ctx, created.ID, UpdateParams{
		Email:    strPtr("JOHNNY@X.COM"),
		Role:     strPtr("admin"),
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "johnny@x.com", updated.Email)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.False(t, updated.IsActive)
}

func TestAdminUpdateValidatesChangedFields(t *testing.T) {
	svc := newAdminService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateParams{Name: "John", Email: "john@x.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, UpdateParams{Name: strPtr("J")})
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok, "expected validation error, got %v", err)

	_, err = svc.Update(ctx, created.ID, UpdateParams{Email: strPtr("nope")})
	_, ok = domain.AsValidationError(err)
	assert.True(t, ok, "expected validation error, got %v", err)

	_, err = svc.Update(ctx, created.ID, UpdateParams{Role: strPtr("root")})
	_, ok = domain.AsValidationError(err)
	assert.True(t, ok, "expected validation error, got %v", err)
}

func TestAdminUpdateEmailUniqueness(t *testing.T) {
	svc := newAdminService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateParams{Name: "Alice", Email: "alice@x.com", Password: "password123"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateParams{Name: "Bob", Email: "bob@x.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, b.ID, UpdateParams{Email: strPtr("alice@x.com")})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	// keeping one's own email is not a conflict
	_, err = svc.Update(ctx, a.ID, UpdateParams{Email: strPtr("alice@x.com")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, missingID, UpdateParams{Name: strPtr("Nobody")})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAdminDelete(t *testing.T) {
	svc := newAdminService(t)
	ctx := context.Background()

	admin, err := svc.Create(ctx, CreateParams{Name: "Admin", Email: "admin@x.com", Password: "admin123", Role: strPtr("admin")})
	require.NoError(t, err)
	victim, err := svc.Create(ctx, CreateParams{Name: "John", Email: "john@x.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, admin.ID, admin.ID)
	require.ErrorIs(t, err, domain.ErrSelfDeletion)

	deleted, err := svc.Delete(ctx, admin.ID, victim.ID)
	require.NoError(t, err)
	assert.Equal(t, victim.ID, deleted.ID)
	assert.Equal(t, "John", deleted.Name)
	assert.Equal(t, "john@x.com", deleted.Email)

	_, err = svc.Get(ctx, victim.ID)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.Delete(ctx, admin.ID, victim.ID)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.Delete(ctx, admin.ID, "not-a-uuid")
	require.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestAdminListPagination(t *testing.T) {
	svc := newAdminService(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := svc.Create(ctx, CreateParams{
			Name:     fmt.Sprintf("User %02d", i),
			Email:    fmt.Sprintf("user%02d@x.com", i),
			Password: "password123",
		})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, ListParams{Page: 2, Limit: 3, SortBy: "name", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, 7, page.Pagination.TotalUsers)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.True(t, page.Pagination.HasNextPage)
	assert.True(t, page.Pagination.HasPreviousPage)
	require.Len(t, page.Users, 3)
	assert.Equal(t, "User 03", page.Users[0].Name)

	last, err := svc.List(ctx, ListParams{Page: 3, Limit: 3})
	require.NoError(t, err)
	assert.False(t, last.Pagination.HasNextPage)
	require.Len(t, last.Users, 1)

	// out-of-range page params fall back to defaults
	first, err := svc.List(ctx, ListParams{Page: 0, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Pagination.CurrentPage)
	assert.Equal(t, 10, first.Pagination.Limit)
	assert.Len(t, first.Users, 7)
}

func TestAdminListFilters(t *testing.T) {
	svc := newAdminService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateParams{Name: "Admin", Email: "admin@x.com", Password: "admin123", Role: strPtr("admin")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateParams{Name: "Sleepy", Email: "sleepy@x.com", Password: "password123", IsActive: boolPtr(false)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateParams{Name: "Alice", Email: "alice@x.com", Password: "password123"})
	require.NoError(t, err)

	page, err := svc.List(ctx, ListParams{Role: "admin"})
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "Admin", page.Users[0].Name)

	page, err = svc.List(ctx, ListParams{IsActive: "false"})
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "Sleepy", page.Users[0].Name)

	page, err = svc.List(ctx, ListParams{Search: "ali"})
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "Alice", page.Users[0].Name)
}
