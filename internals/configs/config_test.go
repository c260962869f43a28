package configs

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load(viper.New())

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, "@every 15s", cfg.WhatsappPollSpec)
	assert.Equal(t, 14, cfg.TrialDays)
	assert.Equal(t, 7, cfg.OverdueGraceDays)
	assert.False(t, cfg.MidtransUseProd)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("TRIAL_DAYS", "30")
	t.Setenv("WA_GATEWAY_URL", "https://wa.example.com/")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,,")
	t.Setenv("MIDTRANS_USE_PROD", "true")

	cfg := Load(viper.New())

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 30, cfg.TrialDays)
	assert.Equal(t, "https://wa.example.com", cfg.WhatsappGatewayURL)
	assert.True(t, cfg.MidtransUseProd)
	require.Len(t, cfg.CorsOrigins, 2)
	assert.Equal(t, "https://b.example.com", cfg.CorsOrigins[1])
}

func TestDSN(t *testing.T) {
	cfg := Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Contains(t, cfg.DSN(), "postgres://u:p@h:5432/d?sslmode=disable")
}

func TestGetEnvFallback(t *testing.T) {
	assert.Equal(t, "fallback", GetEnv("ECCLESIA_SURELY_UNSET_KEY", "fallback"))
	t.Setenv("ECCLESIA_SET_KEY", "")
	assert.Equal(t, "", GetEnv("ECCLESIA_SET_KEY", "fallback"))
}
