// Package config loads runtime configuration from the environment, with .env
// file support for development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	// DBPath is the SQLite database path. Required.
	DBPath string
	// Addr is the HTTP listen address.
	Addr string

	// SMTP transport settings. Host empty means SMTP is not configured.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	// HTTP mail relay settings. URL empty means the relay is not configured.
	RelayURL    string
	RelayAPIKey string

	// MailFrom is the sender address for both transports.
	MailFrom string

	// CacheTTL bounds the staleness of the post/cabinet/contact read cache.
	CacheTTL time.Duration

	// UniqueLocations enforces one item location per (item, post, cabinet).
	UniqueLocations bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	cfg := &Config{
		DBPath:          os.Getenv("MEDSTOCK_DB"),
		Addr:            envOr("MEDSTOCK_ADDR", ":8080"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPUsername:    os.Getenv("SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		RelayURL:        os.Getenv("MAIL_RELAY_URL"),
		RelayAPIKey:     os.Getenv("MAIL_RELAY_API_KEY"),
		MailFrom:        envOr("MAIL_FROM", "medstock@localhost"),
		CacheTTL:        30 * time.Second,
		UniqueLocations: true,
	}

	if cfg.DBPath == "" {
		return nil, fmt.Errorf("MEDSTOCK_DB is required")
	}

	cfg.SMTPPort = 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
		cfg.SMTPPort = port
	}

	if v := os.Getenv("MEDSTOCK_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MEDSTOCK_CACHE_TTL %q: %w", v, err)
		}
		cfg.CacheTTL = ttl
	}

	if v := os.Getenv("MEDSTOCK_UNIQUE_LOCATIONS"); v != "" {
		unique, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MEDSTOCK_UNIQUE_LOCATIONS %q: %w", v, err)
		}
		cfg.UniqueLocations = unique
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
