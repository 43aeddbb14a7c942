package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("ACCESS_TOKEN_EXPIRY", "")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenExpiry)
	assert.Equal(t, 240*time.Hour, cfg.RefreshTokenExpiry)
	assert.Equal(t, "vidtube-backend", cfg.JWTIssuer)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.NotEqual(t, cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "1h")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "not-a-duration")
	t.Setenv("IS_PRODUCTION", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	tc := cfg.TokenConfig()
	assert.Equal(t, "access-secret", tc.AccessSecret)
	assert.Equal(t, time.Hour, tc.AccessExpiry)
	assert.Equal(t, "refresh-secret", tc.RefreshSecret)
	assert.Equal(t, defaultRefreshTokenExpiry, tc.RefreshExpiry, "invalid duration falls back to default")
}
