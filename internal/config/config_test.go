package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "test-secret")
	t.Setenv("APP_ENV", "test")

	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "securecampus", cfg.JWTIssuer)
	assert.Equal(t, "test-secret", cfg.JWTSigningKey)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 5, cfg.LoginMaxFailures)
	assert.Equal(t, 15*time.Minute, cfg.LoginWindow)
	assert.Equal(t, "memory", cfg.LoginLimiterStore)
	assert.Equal(t, 100, cfg.RateLimitPerMin)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "test-secret")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("LOGIN_MAX_FAILURES", "3")
	t.Setenv("LOGIN_WINDOW", "5m")
	t.Setenv("LOGIN_LIMITER_STORE", "redis")

	cfg := Load()

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.LoginMaxFailures)
	assert.Equal(t, 5*time.Minute, cfg.LoginWindow)
	assert.Equal(t, "redis", cfg.LoginLimiterStore)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "test-secret")
	t.Setenv("APP_ENV", "test")
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("LOGIN_MAX_FAILURES", "many")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.LoginMaxFailures)
}
