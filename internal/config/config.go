// Package config loads service settings from a YAML file, a .env file and
// PERMITPAL_* environment variables, in increasing order of precedence.
// Generation-service settings are read separately by llm.ConfigFromEnv.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr            string `yaml:"addr"`
		PublicURL       string `yaml:"public_url"`
		ReadTimeout     string `yaml:"read_timeout"`
		WriteTimeout    string `yaml:"write_timeout"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	Sessions struct {
		TTL string `yaml:"ttl"`
	} `yaml:"sessions"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
		TokenTTL  string `yaml:"token_ttl"`
	} `yaml:"auth"`
	Stripe struct {
		SecretKey  string `yaml:"secret_key"`
		PriceID    string `yaml:"price_id"`
		SuccessURL string `yaml:"success_url"`
		CancelURL  string `yaml:"cancel_url"`
	} `yaml:"stripe"`
	Retention struct {
		Window string `yaml:"window"`
		At     string `yaml:"at"`
	} `yaml:"retention"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the settings used when nothing is configured: SQLite at
// the default path, in-memory sessions, no payments.
func Default() Config {
	var cfg Config
	cfg.Server.Addr = ":8080"
	cfg.Server.PublicURL = "http://localhost:8080"
	cfg.Server.ReadTimeout = "15s"
	cfg.Server.WriteTimeout = "120s"
	cfg.Server.ShutdownTimeout = "10s"
	cfg.Database.Driver = "sqlite"
	cfg.Redis.Prefix = "permitpal:"
	cfg.Sessions.TTL = "2h"
	cfg.Auth.TokenTTL = "720h"
	cfg.Retention.Window = "720h"
	cfg.Retention.At = "03:00"
	cfg.Log.Level = "info"
	return cfg
}

// Load reads .env from the working directory if present, then the YAML
// file at path (skipped when path is empty), then environment overrides.
func Load(path string) (Config, error) {
	return load(path, ".env")
}

func load(path, envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Addr, "PERMITPAL_ADDR")
	setString(&cfg.Server.PublicURL, "PERMITPAL_PUBLIC_URL")

	setString(&cfg.Database.Driver, "PERMITPAL_DB_DRIVER")
	setString(&cfg.Database.DSN, "PERMITPAL_DB_DSN")

	setString(&cfg.Redis.Addr, "PERMITPAL_REDIS_ADDR")
	setString(&cfg.Redis.Password, "PERMITPAL_REDIS_PASSWORD")
	if v := os.Getenv("PERMITPAL_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}
	setString(&cfg.Sessions.TTL, "PERMITPAL_SESSION_TTL")

	setString(&cfg.Auth.JWTSecret, "PERMITPAL_JWT_SECRET")

	setString(&cfg.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	setString(&cfg.Stripe.SecretKey, "PERMITPAL_STRIPE_SECRET_KEY")
	setString(&cfg.Stripe.PriceID, "PERMITPAL_STRIPE_PRICE_ID")

	setString(&cfg.Retention.Window, "PERMITPAL_RETENTION_WINDOW")
	setString(&cfg.Log.Level, "PERMITPAL_LOG_LEVEL")
}

// Validate checks the settings the service cannot start without.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("unknown database driver: %q", c.Database.Driver)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses log.level ("debug", "info", "warn", "error").
func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// CheckoutURLs returns the Stripe redirect targets, defaulting to pages
// under server.public_url.
func (c Config) CheckoutURLs() (success, cancel string) {
	success, cancel = c.Stripe.SuccessURL, c.Stripe.CancelURL
	if success == "" {
		success = c.Server.PublicURL + "/checkout/success"
	}
	if cancel == "" {
		cancel = c.Server.PublicURL + "/"
	}
	return success, cancel
}

// Duration parses a duration string or returns the fallback if it is empty
// or malformed.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
