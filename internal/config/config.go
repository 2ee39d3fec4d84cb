// Package config loads and validates application configuration from
// environment variables, with an optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Exactly one storage backend must be configured: either a direct Postgres
// connection (DATABASE_URL) or a hosted PostgREST endpoint (SUPABASE_URL +
// SUPABASE_ANON_KEY).
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel controls the minimum log level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173"`

	// DatabaseURL is the Postgres connection string for the direct backend.
	DatabaseURL string `env:"DATABASE_URL"`

	// SupabaseURL and SupabaseAnonKey configure the hosted PostgREST backend.
	SupabaseURL     string `env:"SUPABASE_URL"`
	SupabaseAnonKey string `env:"SUPABASE_ANON_KEY"`

	// GooglePlacesKey enables the place-search endpoint when set.
	GooglePlacesKey string `env:"GOOGLE_PLACES_KEY"`
}

// UsesPostgres reports whether the direct Postgres backend is selected.
func (c Config) UsesPostgres() bool { return c.DatabaseURL != "" }

// Load reads configuration from the environment (and a .env file when one
// exists) and validates the backend selection.
func Load() (Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	hasPostgres := c.DatabaseURL != ""
	hasSupabase := c.SupabaseURL != "" || c.SupabaseAnonKey != ""

	switch {
	case hasPostgres && hasSupabase:
		return fmt.Errorf("config.Load: DATABASE_URL and SUPABASE_URL are mutually exclusive; set one backend")
	case !hasPostgres && !hasSupabase:
		return fmt.Errorf("config.Load: no backend configured; set DATABASE_URL or SUPABASE_URL + SUPABASE_ANON_KEY")
	case hasSupabase && (c.SupabaseURL == "" || c.SupabaseAnonKey == ""):
		return fmt.Errorf("config.Load: SUPABASE_URL and SUPABASE_ANON_KEY must both be set")
	}
	return nil
}
