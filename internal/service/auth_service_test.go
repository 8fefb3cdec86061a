package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-dashboard/internal/auth"
	"user-dashboard/internal/domain"
	"user-dashboard/internal/repository"
	"user-dashboard/internal/repository/sqlite"
)

func newTestDeps(t *testing.T) (repository.UserRepository, *auth.TokenCodec) {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))

	return repo, auth.NewTokenCodec("test-secret", "user-dashboard", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	repo, codec := newTestDeps(t)
	svc := NewAuthService(repo, codec)
	ctx := context.Background()

	token, user, err := svc.Register(ctx, "John Doe", "JOHN@X.COM", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "john@x.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.Nil(t, user.LastLogin)

	// the issued token resolves back to the identity that produced it
	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, "john@x.com", claims.Email)

	loginToken, loggedIn, err := svc.Login(ctx, "john@x.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, loginToken)
	assert.Equal(t, user.ID, loggedIn.ID)
	require.NotNil(t, loggedIn.LastLogin)
	assert.WithinDuration(t, time.Now(), *loggedIn.LastLogin, 5*time.Second)
}

func TestPublicViewOmitsPassword(t *testing.T) {
	repo, codec := newTestDeps(t)
	svc := NewAuthService(repo, codec)

	_, user, err := svc.Register(context.Background(), "John Doe", "john@x.com", "password123")
	require.NoError(t, err)

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "Password")
}

func TestRegisterValidation(t *testing.T) {
	repo, codec := newTestDeps(t)
	svc := NewAuthService(repo, codec)
	ctx := context.Background()

	cases := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"short name", "J", "john@x.com", "password123"},
		{"long name", strings.Repeat("a", 51), "john@x.com", "password123"},
		{"bad email", "John Doe", "not-an-email", "password123"},
		{"short password", "John Doe", "john@x.com", "12345"},
		{"missing everything", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tc.userName, tc.email, tc.password)
			_, ok := domain.AsValidationError(err)
			assert.True(t, ok, "expected validation error, got %v", err)
		})
	}
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	repo, codec := newTestDeps(t)
	svc := NewAuthService(repo, codec)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "John Doe", "John@X.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Other John", "JOHN@x.COM", "password456")
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo, codec := newTestDeps(t)
	svc := NewAuthService(repo, codec)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "John Doe", "john@x.com", "password123")
	require.NoError(t, err)

	// wrong password and unknown email are indistinguishable
	_, _, err = svc.Login(ctx, "john@x.com", "wrongpassword")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@x.com", "password123")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	repo, codec := newTestDeps(t)
	svc := NewAuthService(repo, codec)
	ctx := context.Background()

	_, user, err := svc.Register(ctx, "John Doe", "john@x.com", "password123")
	require.NoError(t, err)

	active := false
	_, err = repo.Update(ctx, user.ID, repository.UserUpdate{IsActive: &active})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "john@x.com", "password123")
	require.ErrorIs(t, err, domain.ErrAccountInactive)
}
