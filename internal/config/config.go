// Package config loads the service configuration from YAML with
// environment overrides for secrets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/reelscope/reelscope/internal/domain/timing"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `yaml:"idle_timeout_seconds"`
}

// ReadTimeout returns the read timeout as a duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// IdleTimeout returns the idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSeconds) * time.Second
}

// RedisConfig holds post-cache settings.
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// TTL returns the cache TTL as a duration.
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLMinutes) * time.Minute
}

// ScraperConfig holds scrape-service client settings.
type ScraperConfig struct {
	BaseURL           string `yaml:"base_url"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// Timeout returns the request timeout as a duration.
func (s ScraperConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// EnrichmentConfig holds text-generation client settings. The API key
// only ever comes from the environment, never from the file.
type EnrichmentConfig struct {
	APIKey            string `yaml:"-"`
	BaseURL           string `yaml:"base_url"`
	Model             string `yaml:"model"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// Timeout returns the request timeout as a duration.
func (e EnrichmentConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// Config is the full service configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Redis      RedisConfig      `yaml:"redis"`
	Scraper    ScraperConfig    `yaml:"scraper"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`

	// Timing overrides the static reference tables when present.
	Timing *timing.Reference `yaml:"timing,omitempty"`
}

// apiKeyEnvVars are checked in order for the enrichment credential.
var apiKeyEnvVars = []string{"REELSCOPE_GENAI_KEY", "GENAI_API_KEY"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                "127.0.0.1",
			Port:                8080,
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 30,
			IdleTimeoutSeconds:  60,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			TTLMinutes: 15,
		},
		Scraper: ScraperConfig{
			BaseURL:           "http://localhost:8000",
			TimeoutSeconds:    60,
			RequestsPerMinute: 10,
		},
		Enrichment: EnrichmentConfig{
			BaseURL:           "https://generativelanguage.example.com/v1/chat/completions",
			Model:             "flash-lite",
			TimeoutSeconds:    30,
			RequestsPerMinute: 30,
		},
	}
}

// Load reads the YAML file at path, layered over defaults, then applies
// environment overrides. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse YAML config: %w", err)
		}
	}

	for _, env := range apiKeyEnvVars {
		if v := os.Getenv(env); v != "" {
			cfg.Enrichment.APIKey = v
			break
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Scraper.BaseURL == "" {
		return fmt.Errorf("scraper base_url must be set")
	}
	if c.Enrichment.BaseURL == "" {
		return fmt.Errorf("enrichment base_url must be set")
	}
	return nil
}
