// Package config loads runtime settings from the environment and wires the
// source registry and aggregator from them.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	TicketmasterAPIKey string `env:"TICKETMASTER_API_KEY"`
	EventbriteAPIKey   string `env:"EVENTBRITE_API_KEY"`
	BandsintownAppID   string `env:"BANDSINTOWN_APP_ID" envDefault:"music-event-finder"`

	Port     int    `env:"PORT" envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	SourceTimeout            time.Duration `env:"SOURCE_TIMEOUT" envDefault:"25s"`
	BandsintownRatePerSecond float64       `env:"BANDSINTOWN_RATE_PER_SECOND" envDefault:"5"`
	BandsintownConcurrency   int           `env:"BANDSINTOWN_CONCURRENCY" envDefault:"4"`
	ScraperDelay             bool          `env:"SCRAPER_DELAY" envDefault:"true"`
	GenreSynonymsFile        string        `env:"GENRE_SYNONYMS_FILE"`

	// Upstream overrides, empty means the live service.
	TicketmasterBaseURL string `env:"TICKETMASTER_BASE_URL"`
	EventbriteBaseURL   string `env:"EVENTBRITE_BASE_URL"`
	BandsintownBaseURL  string `env:"BANDSINTOWN_BASE_URL"`
	RABaseURL           string `env:"RA_BASE_URL"`
	RAMobileBaseURL     string `env:"RA_MOBILE_BASE_URL"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that the env parser cannot express.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	if c.BandsintownRatePerSecond < 0 {
		return fmt.Errorf("invalid BANDSINTOWN_RATE_PER_SECOND: %v", c.BandsintownRatePerSecond)
	}
	if c.BandsintownConcurrency < 0 {
		return fmt.Errorf("invalid BANDSINTOWN_CONCURRENCY: %d", c.BandsintownConcurrency)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
