// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first with 'joho/godotenv' when present.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported user store backends.
const (
	AuthBackendDatabase = "database"
	AuthBackendMemory   = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the getemall API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL      string `env:"DB_URL,required,notEmpty"`
	DatabaseUser     string `env:"DB_USER"`
	DatabasePassword string `env:"DB_PASSWORD"`
	DatabaseSchema   string `env:"DB_SCHEMA" envDefault:"getemall"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	// Session storage (Redis). Sessions stay in memory when empty.
	RedisURL      string        `env:"REDIS_URL"`
	SessionSecret string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	// Authentication
	AuthBackend         string `env:"AUTH_BACKEND" envDefault:"database"`
	HealthReferenceUser string `env:"HEALTH_REFERENCE_USER" envDefault:"admin"`

	// Profile pictures
	UploadMaxBytes int64 `env:"UPLOAD_MAX_BYTES" envDefault:"1048576"`

	// Object Storage (S3-compatible, e.g. MinIO)
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION"   envDefault:"auto"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}
	return Parse()
}

// Parse maps the current environment into a [Config] without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.AuthBackend != AuthBackendDatabase && cfg.AuthBackend != AuthBackendMemory {
		return nil, fmt.Errorf("config: unknown AUTH_BACKEND %q", cfg.AuthBackend)
	}

	return cfg, nil
}

// DatabaseDSN merges DB_URL with the optional credentials and schema into a
// single postgres:// DSN. Credentials in DB_USER/DB_PASSWORD take precedence
// over those embedded in the URL.
func (c *Config) DatabaseDSN() (string, error) {
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return "", fmt.Errorf("config: invalid DB_URL: %w", err)
	}
	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return "", fmt.Errorf("config: DB_URL must use the postgres scheme, got %q", parsed.Scheme)
	}

	if c.DatabaseUser != "" {
		if c.DatabasePassword != "" {
			parsed.User = url.UserPassword(c.DatabaseUser, c.DatabasePassword)
		} else {
			parsed.User = url.User(c.DatabaseUser)
		}
	}

	if c.DatabaseSchema != "" {
		query := parsed.Query()
		query.Set("search_path", c.DatabaseSchema)
		parsed.RawQuery = query.Encode()
	}

	return parsed.String(), nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins returns the extra CORS origins.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}
