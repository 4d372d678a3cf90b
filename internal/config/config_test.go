package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "social-network", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "mongodb://127.0.0.1:27017", cfg.Mongo.URI)
	assert.Equal(t, "social_network", cfg.Mongo.Database)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 20, cfg.RateLimit.Max)
}

func TestLoad_BcryptCostClampedUp(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_BCRYPT_COST", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestLoad_BcryptCostAboveMinimumKept(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_BCRYPT_COST", "14")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.Auth.BcryptCost)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestRequestTimeout(t *testing.T) {
	app := AppConfig{RequestTimeoutSeconds: 30}
	assert.Equal(t, "30s", app.RequestTimeout().String())

	assert.Zero(t, AppConfig{}.RequestTimeout())
}
