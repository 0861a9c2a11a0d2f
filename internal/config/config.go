// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

// Package config provides layered configuration loading for Z3 Radar.
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (API_KEY, API_URL, SERVER_PORT, ...)
//   - Config file (config.yaml)
//   - Built-in defaults
package config

import (
	"fmt"
	"time"

	"github.com/TheOnly3aq/z3radar/internal/validation"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Upstream UpstreamConfig `koanf:"upstream"`
	Cars     CarsConfig     `koanf:"cars"`
	Database DatabaseConfig `koanf:"database"`
	Photos   PhotosConfig   `koanf:"photos"`
	Security SecurityConfig `koanf:"security"`
	Cache    CacheConfig    `koanf:"cache"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host" validate:"required"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// Environment selects production or development behavior. The photo
	// endpoint degrades to an empty result set on store failure only in
	// production; development surfaces the error.
	Environment string `koanf:"environment" validate:"oneof=development production"`
}

// UpstreamConfig holds settings for the vehicle-registration statistics API.
//
// APIKey and BaseURL are intentionally NOT required at startup: the proxy
// gateway reports their absence per request (HTTP 500) so the rest of the
// service keeps working on a partially configured deployment.
type UpstreamConfig struct {
	// BaseURL is the upstream statistics API base, e.g. https://api.example.com/cars
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`

	// APIKey is the shared secret attached to upstream requests and accepted
	// from callers via the x-api-key header.
	APIKey string `koanf:"api_key"`

	// Timeout bounds each upstream HTTP call.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// Ready reports whether the upstream is fully configured, with the same
// operator-facing messages the gateway uses.
func (u *UpstreamConfig) Ready() error {
	if u.APIKey == "" {
		return fmt.Errorf("API_KEY is not configured")
	}
	if u.BaseURL == "" {
		return fmt.Errorf("API_URL is not configured")
	}
	return nil
}

// CarsConfig holds the fixed allow-list of car identifiers this deployment
// serves. The endpoint allow-list is compile-time fixed; cars vary per
// deployment (Z3 for Z3 Radar, LEXUS for Lexus Tracker).
type CarsConfig struct {
	Allowed []string `koanf:"allowed" validate:"min=1,dive,required"`
}

// DatabaseConfig holds DuckDB settings for the photo store.
type DatabaseConfig struct {
	// Path is the DuckDB database file. Empty disables the photo store;
	// the photos endpoint then serves the degraded empty set in production.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads" validate:"min=0"`
}

// PhotosConfig holds photo gallery settings.
type PhotosConfig struct {
	// WebsiteTags are the exact website filter values the photos endpoint
	// honors. Any other ?website= value is ignored rather than rejected.
	WebsiteTags []string `koanf:"website_tags"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// CacheConfig holds TTL cache settings for derived endpoints. The proxy
// gateway itself never caches.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl" validate:"gte=0"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs with production behavior.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// CarAllowed reports whether the given car identifier is in the deployment's
// allow-list.
func (c *Config) CarAllowed(car string) bool {
	for _, allowed := range c.Cars.Allowed {
		if allowed == car {
			return true
		}
	}
	return false
}

// WebsiteTagAllowed reports whether the given website filter value is one of
// the recognized deployment tags.
func (c *Config) WebsiteTagAllowed(tag string) bool {
	for _, allowed := range c.Photos.WebsiteTags {
		if allowed == tag {
			return true
		}
	}
	return false
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8380,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Upstream: UpstreamConfig{
			BaseURL: "",
			APIKey:  "",
			Timeout: 30 * time.Second,
		},
		Cars: CarsConfig{
			Allowed: []string{"Z3"},
		},
		Database: DatabaseConfig{
			Path:      "",
			MaxMemory: "512MB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Photos: PhotosConfig{
			WebsiteTags: []string{"Z3Radar", "LexusTracker"},
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
