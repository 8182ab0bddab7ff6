package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Provider  ProviderConfig
	Cache     CacheConfig
	Autosave  AutosaveConfig
	Storage   StorageConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// ProviderConfig holds external AI provider configuration. The API key and
// model live in the credentials record, not here: this is transport only.
type ProviderConfig struct {
	BaseURL string        `envconfig:"PROVIDER_URL" default:"https://api.openai.com"`
	Timeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"60s"`
}

// CacheConfig holds AI result cache configuration.
type CacheConfig struct {
	TTL      time.Duration `envconfig:"CACHE_TTL" default:"24h"`
	Capacity int           `envconfig:"CACHE_CAPACITY" default:"256"`
}

// AutosaveConfig holds session autosave configuration.
type AutosaveConfig struct {
	Interval time.Duration `envconfig:"AUTOSAVE_INTERVAL" default:"30s"`
	Debounce time.Duration `envconfig:"AUTOSAVE_DEBOUNCE" default:"2s"`
}

// StorageConfig holds key-value store configuration.
type StorageConfig struct {
	Dir string `envconfig:"STORAGE_DIR" default:"./data"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Provider: ProviderConfig{
			BaseURL: "https://api.openai.com",
			Timeout: 60 * time.Second,
		},
		Cache: CacheConfig{
			TTL:      24 * time.Hour,
			Capacity: 256,
		},
		Autosave: AutosaveConfig{
			Interval: 30 * time.Second,
			Debounce: 2 * time.Second,
		},
		Storage: StorageConfig{
			Dir: "./data",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
