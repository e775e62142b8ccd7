// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config carries everything the exporter needs: API credentials and hosts,
// the holiday calendar to apply, and where reports land.
type Config struct {
	Env string

	ClientID     string
	ClientSecret string
	Domain       string
	IdentityHost string
	HTTPTimeout  time.Duration

	ReportsDir      string
	HolidayCalendar string

	Log LogConfig
}

// LogConfig tunes the logger.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{
		Env:             v.GetString("ENV"),
		ClientID:        v.GetString("JIBBLE_CLIENT_ID"),
		ClientSecret:    v.GetString("JIBBLE_CLIENT_SECRET"),
		Domain:          v.GetString("JIBBLE_DOMAIN"),
		IdentityHost:    v.GetString("JIBBLE_IDENTITY_HOST"),
		HTTPTimeout:     parseDuration(v.GetString("HTTP_TIMEOUT"), 30*time.Second),
		ReportsDir:      v.GetString("REPORTS_DIR"),
		HolidayCalendar: v.GetString("HOLIDAY_CALENDAR"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvProduction)

	v.SetDefault("JIBBLE_CLIENT_ID", "")
	v.SetDefault("JIBBLE_CLIENT_SECRET", "")
	v.SetDefault("JIBBLE_DOMAIN", "prod.jibble.io")
	v.SetDefault("JIBBLE_IDENTITY_HOST", "identity.prod.jibble.io")
	v.SetDefault("HTTP_TIMEOUT", "30s")

	v.SetDefault("REPORTS_DIR", "./reports")
	v.SetDefault("HOLIDAY_CALENDAR", "Droplet")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
