package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	LogLevel          string
	ContactReplyDelay time.Duration
}

// Load reads .env (if present) then the environment, falling back to
// defaults suitable for local development.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:              getenv("ADDR", ":8080"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		ContactReplyDelay: 1500 * time.Millisecond,
	}
	if v := os.Getenv("CONTACT_REPLY_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("CONTACT_REPLY_DELAY: %w", err)
		}
		cfg.ContactReplyDelay = d
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
