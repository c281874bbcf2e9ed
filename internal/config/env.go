package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AppConfig is the process configuration for the CLI and HTTP server
type AppConfig struct {
	Port            string        `env:"PORT"                 envDefault:"8080"`
	Environment     string        `env:"APP_ENV"              envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL"            envDefault:"info"`
	PlanFile        string        `env:"PENSION_CONFIG"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"     envDefault:"10s"`
	ReportLocale    string        `env:"REPORT_LOCALE"        envDefault:"en-GB"`
}

// IsProduction reports whether APP_ENV selects production behaviour
func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks values the env tags cannot express
func (c AppConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadAppConfig reads optional .env files and then the environment.
// Missing .env files are ignored; variables already set are not overridden.
func LoadAppConfig(dotenvFiles ...string) (AppConfig, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return AppConfig{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg AppConfig
	if err := ParseEnv(&cfg); err != nil {
		return AppConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}
