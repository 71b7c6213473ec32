package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PORT", "DB_SSLMODE", "SITE_URL", "CACHE_TTL", "CORS_ORIGINS", "LOGLEVEL", "ENV"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "5432", cfg.DbPort)
	assert.Equal(t, "disable", cfg.DbSSLMode)
	assert.Equal(t, "http://localhost:8080", cfg.SiteURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTLDuration())
}

func TestLoadConfig_TrimsSiteURLAndSplitsOrigins(t *testing.T) {
	t.Setenv("SITE_URL", "https://blog.example.com/")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://blog.example.com", cfg.SiteURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.Validate()
	assert.Error(t, err, "без DB_HOST/DB_USER/DB_NAME конфиг невалиден")

	cfg = &Config{DbHost: "db", DbUser: "blog", DbName: "blog", AccessTokenTTL: "nope", CacheTTL: "1m"}
	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Contains(t, warnings, "JWT_SECRET is empty, admin API is effectively locked")
	assert.Contains(t, warnings, "SMTP is not fully configured")
	assert.Contains(t, warnings, "ACCESS_TOKEN_EXPIRY is invalid, using 15m")
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL())
}

func TestGetDSNSafe_HidesPassword(t *testing.T) {
	cfg := &Config{DbUser: "u", DbPass: "secret", DbHost: "h", DbPort: "5432", DbName: "n", DbSSLMode: "disable"}
	assert.Equal(t, "postgres://u:secret@h:5432/n?sslmode=disable", cfg.GetDSN())
	assert.NotContains(t, cfg.GetDSNSafe(), "secret")
}
