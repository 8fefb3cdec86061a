package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "user-dashboard", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "data/users.db", cfg.Database.Path)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "http://localhost:3000", cfg.CORS.Origin)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DASH_SERVER_ADDR", "127.0.0.1:9090")
	t.Setenv("DASH_AUTH_JWTSECRET", "env-secret")
	t.Setenv("DASH_AUTH_TOKENTTLMINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 15, cfg.Auth.TokenTTLMinutes)
}
