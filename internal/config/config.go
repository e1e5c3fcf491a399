package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultInviteExpirationDays applies when INVITE_EXPIRATION_DAYS is unset or unusable.
const DefaultInviteExpirationDays = 7

// Config holds application configuration (env + Viper).
type Config struct {
	Env            string
	Port           string
	DatabaseURL    string // postgres DSN or sqlite:<path>
	RedisURL       string // empty disables stats and the error log
	AdminKey       string // empty rejects every admin request
	InviteTTL      time.Duration
	AllowedOrigins []string
	LogLevel       zerolog.Level
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3001")
	v.SetDefault("DATABASE_URL", "sqlite:membership.db")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return &Config{
		Env:            v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		DatabaseURL:    strings.TrimSpace(v.GetString("DATABASE_URL")),
		RedisURL:       strings.TrimSpace(v.GetString("REDIS_URL")),
		AdminKey:       v.GetString("ADMIN_KEY"),
		InviteTTL:      InviteTTL(v.GetString("INVITE_EXPIRATION_DAYS")),
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LogLevel:       level,
	}, nil
}

// InviteTTL converts a day count to a duration. Fractional days are allowed;
// empty, non-numeric, non-finite, non-positive or overflowing input yields the default.
func InviteTTL(raw string) time.Duration {
	def := DefaultInviteExpirationDays * 24 * time.Hour
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	days, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	if math.IsNaN(days) || math.IsInf(days, 0) || days <= 0 {
		return def
	}
	ns := days * float64(24*time.Hour)
	if ns >= math.MaxInt64 || ns < 1 {
		return def
	}
	return time.Duration(ns)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
