package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the guide's settings.
// Environment variables are parsed from the GUIDE_ prefix.
type Config struct {
	BackendURL  string        `envconfig:"BACKEND_URL" default:"http://localhost:8000"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`

	// Logs go here while the terminal UI owns the screen.
	LogFile string `envconfig:"LOG_FILE" default:"streetbites.log"`

	// Fire the seed bootstrap when a chat session starts.
	SeedOnStart bool `envconfig:"SEED_ON_START" default:"true"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
}

// Validate normalises BackendURL and rejects unusable values.
func (c *Config) Validate() error {
	c.BackendURL = strings.TrimRight(strings.TrimSpace(c.BackendURL), "/")
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid BACKEND_URL: %q", c.BackendURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0, got %s", c.HTTPTimeout)
	}
	switch c.Environment {
	case EnvDevelopment, EnvTesting, EnvProduction:
	default:
		return fmt.Errorf("unsupported ENVIRONMENT: %s", c.Environment)
	}
	return nil
}

// New creates a new Config by parsing environment variables
// prefixed with GUIDE_, e.g. GUIDE_BACKEND_URL, GUIDE_HTTP_TIMEOUT.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("GUIDE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("backend_url", cfg.BackendURL).
		Dur("http_timeout", cfg.HTTPTimeout).
		Bool("debug", cfg.Debug).
		Str("log_file", cfg.LogFile).
		Bool("seed_on_start", cfg.SeedOnStart).
		Str("environment", string(cfg.Environment)).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting returns a config pointed at backendURL with seeding off.
func NewForTesting(backendURL string) *Config {
	return &Config{
		BackendURL:  backendURL,
		HTTPTimeout: 5 * time.Second,
		LogFile:     "streetbites.log",
		Environment: EnvTesting,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}
