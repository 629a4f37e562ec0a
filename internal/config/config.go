// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, and validates that required
// values are present so the service fails fast on bad configuration.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values.
//   - Provide defaults for optional blocks (cache, pool tuning, observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix INVOICES_.

	Keys are normalized: the prefix is removed, the rest is lowercased, and a
	double underscore marks nesting. Single underscores stay part of the key.

	  INVOICES_SERVER__PORT       -> server.port       -> Config.Server.Port
	  INVOICES_DATABASE__SSL_MODE -> database.ssl_mode -> Config.Database.SSLMode
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "INVOICES_"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected by LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Auth          AuthConfig           `koanf:"auth"`
	Cache         CacheConfig          `koanf:"cache"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// MutationRateLimit is the number of form submissions per second a
	// single client may make against the dashboard actions.
	MutationRateLimit float64 `koanf:"mutation_rate_limit" validate:"min=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// Pool values are optional; zero means "use the default".
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`
}

// RedisConfig contains Redis connection details.
//
// Address is "host:port". An empty address disables Redis: the page cache
// falls back to process memory and notification jobs are not enqueued.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// AuthConfig stores authentication-related secrets.
//
// An empty SecretKey leaves the dashboard routes unauthenticated, which is
// only acceptable for local development.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key"`
}

// CacheConfig tunes the rendered page cache.
type CacheConfig struct {
	// PageTTL bounds how long a rendered listing page may be served from
	// cache when no mutation invalidates it first.
	PageTTL time.Duration `koanf:"page_ttl" validate:"min=0"`

	// MemorySize is the number of entries kept by the in-memory fallback.
	MemorySize int `koanf:"memory_size" validate:"min=0"`
}

// IntegrationConfig holds third-party API credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// Defaults for optional values.
const (
	DefaultPageTTL           = 5 * time.Minute
	DefaultCacheMemorySize   = 256
	DefaultMutationRateLimit = 10
	DefaultEmailFrom         = "Invoices <onboarding@resend.dev>"
)

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, applies defaults, and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	// A single env var carries the whole origin list, comma separated.
	mainConfig.Server.CORSAllowedOrigins = splitList(mainConfig.Server.CORSAllowedOrigins)

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults fills optional values that were left empty.
func (c *Config) applyDefaults() {
	if c.Cache.PageTTL == 0 {
		c.Cache.PageTTL = DefaultPageTTL
	}
	if c.Cache.MemorySize == 0 {
		c.Cache.MemorySize = DefaultCacheMemorySize
	}
	if c.Server.MutationRateLimit == 0 {
		c.Server.MutationRateLimit = DefaultMutationRateLimit
	}
	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = DefaultEmailFrom
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	} else {
		c.Observability.fillDefaults()
	}

	// Service name and environment always follow the primary config so
	// logs and traces are labelled consistently.
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
