package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, EnvProduction, cfg.Env)
	require.Equal(t, "prod.jibble.io", cfg.Domain)
	require.Equal(t, "identity.prod.jibble.io", cfg.IdentityHost)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.Equal(t, "./reports", cfg.ReportsDir)
	require.Equal(t, "Droplet", cfg.HolidayCalendar)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("JIBBLE_CLIENT_ID", "env-id")
	t.Setenv("JIBBLE_CLIENT_SECRET", "env-secret")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("HOLIDAY_CALENDAR", "India Holidays")
	t.Setenv("ENV", EnvDevelopment)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "env-id", cfg.ClientID)
	require.Equal(t, "env-secret", cfg.ClientSecret)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Equal(t, "India Holidays", cfg.HolidayCalendar)
	require.Equal(t, EnvDevelopment, cfg.Env)
}

func TestLoadFallsBackOnBadTimeout(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}
