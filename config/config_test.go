package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_URL", "postgres://localhost:5432/app")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("S3_BUCKET", "media")
	t.Setenv("S3_ACCESS_KEY", "ak")
	t.Setenv("S3_SECRET_KEY", "sk")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres://localhost:5432/app", cfg.DBURL)
	assert.Equal(t, DefaultAccessTokenExpiryMin, cfg.AccessExpiryMin)
	assert.Equal(t, DefaultRefreshTokenExpiryMin, cfg.RefreshExpiryMin)
	assert.Equal(t, DefaultTokenLeewaySec, cfg.TokenLeewaySec)
	assert.Equal(t, DefaultBcryptCost, cfg.BcryptCost)
	assert.Equal(t, "us-east-1", cfg.S3Region)
	assert.Equal(t, "", cfg.S3Endpoint)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "30")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "1440")
	t.Setenv("TOKEN_LEEWAY_SEC", "10")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("S3_REGION", "eu-west-1")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30, cfg.AccessExpiryMin)
	assert.Equal(t, 1440, cfg.RefreshExpiryMin)
	assert.Equal(t, 10, cfg.TokenLeewaySec)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "eu-west-1", cfg.S3Region)
	assert.Equal(t, "http://localhost:9000", cfg.S3Endpoint)
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_EXPIRY", "not-a-number")

	cfg := Load()

	assert.Equal(t, DefaultAccessTokenExpiryMin, cfg.AccessExpiryMin)
}
