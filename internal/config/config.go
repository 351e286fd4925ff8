// Package config loads the runtime configuration of the catalog CLI and server
// from the environment and an optional .env file.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/spotify-catalog-client/pkg/auth"
	"github.com/Sternrassler/spotify-catalog-client/pkg/client"
	"github.com/Sternrassler/spotify-catalog-client/pkg/logging"
	"github.com/Sternrassler/spotify-catalog-client/pkg/pagination"
	"github.com/Sternrassler/spotify-catalog-client/pkg/tracing"
)

type Config struct {
	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID" env-required:"true" env-description:"Spotify application client id"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET" env-required:"true" env-description:"Spotify application client secret"`
	SpotifyAPIURL       string `env:"SPOTIFY_API_URL" env-default:"https://api.spotify.com" env-description:"Spotify Web API origin"`
	SpotifyTokenURL     string `env:"SPOTIFY_TOKEN_URL" env-default:"https://accounts.spotify.com/api/token" env-description:"Client credentials token endpoint"`

	CacheCapacity int           `env:"CACHE_CAPACITY" env-default:"10" env-description:"Max results held in memory per client"`
	MaxPages      int           `env:"MAX_PAGES" env-default:"20" env-description:"Max album pages merged per request"`
	RedisURL      string        `env:"REDIS_URL" env-description:"Optional Redis store shared between clients"`
	CacheTTL      time.Duration `env:"CACHE_TTL" env-default:"1h" env-description:"Redis entry TTL when Spotify sends no caching headers"`

	Port        string        `env:"PORT" env-default:"8080" env-description:"HTTP listen port for serve"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" env-default:"30s" env-description:"Per-request upstream timeout"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn, error or disabled"`
	LogPretty bool   `env:"LOG_PRETTY" env-default:"false" env-description:"Human-readable console logs"`

	TracesExporter   string  `env:"OTEL_TRACES_EXPORTER" env-default:"none" env-description:"none, stdout or otlp"`
	TraceSampleRatio float64 `env:"OTEL_TRACES_SAMPLER_ARG" env-default:"1.0" env-description:"Fraction of traces sampled"`
}

// Load reads the given .env files (default: .env) into the environment, then
// the environment into a Config. A missing .env file is not an error.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Debug().Err(err).Msg("Failed to load env variables from file")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges cleanenv cannot express.
func (c *Config) Validate() error {
	if c.CacheCapacity < 1 {
		return fmt.Errorf("CACHE_CAPACITY must be >= 1 (got %d)", c.CacheCapacity)
	}
	if c.MaxPages < 1 {
		return fmt.Errorf("MAX_PAGES must be >= 1 (got %d)", c.MaxPages)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive (got %s)", c.CacheTTL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive (got %s)", c.HTTPTimeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// Usage returns the environment variable help text.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.LogLevel); err == nil {
		cfg.Level = level
	}
	cfg.Pretty = c.LogPretty
	return cfg
}

// Tracing returns the tracer provider configuration for the named service.
func (c *Config) Tracing(serviceName, version string) tracing.Config {
	return tracing.Config{
		ServiceName: serviceName,
		Version:     version,
		Exporter:    c.TracesExporter,
		SampleRatio: c.TraceSampleRatio,
	}
}

// RedisOptions parses REDIS_URL. It returns nil when no store is configured.
func (c *Config) RedisOptions() (*redis.Options, error) {
	if c.RedisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(c.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	return opts, nil
}

// Client returns the catalog client configuration. redisClient may be nil.
func (c *Config) Client(redisClient *redis.Client) client.Config {
	cfg := client.DefaultConfig(auth.ClientCredentials{
		ClientID:     c.SpotifyClientID,
		ClientSecret: c.SpotifyClientSecret,
		TokenURL:     c.SpotifyTokenURL,
	})
	cfg.BaseURL = c.SpotifyAPIURL
	cfg.Timeout = c.HTTPTimeout
	cfg.CacheCapacity = c.CacheCapacity
	cfg.Redis = redisClient
	cfg.StoreTTL = c.CacheTTL
	cfg.Pagination = pagination.Config{
		MaxPages: c.MaxPages,
		Timeout:  c.HTTPTimeout,
	}
	return cfg
}
