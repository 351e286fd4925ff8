// Package logging configures zerolog for the catalog client, server and CLI.
//
// Setup installs the process-wide logger once; packages then derive their own
// logger with NewLogger so every line carries a component field:
//
//	logging.Setup(logging.Config{Level: logging.LevelDebug, Pretty: true})
//	logger := logging.NewLogger(logging.ComponentClient)
//	logger.Debug().Str("key", key).Msg("Cache hit")
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel is a minimum log level name as accepted in LOG_LEVEL.
type LogLevel string

const (
	LevelDebug    LogLevel = "debug"
	LevelInfo     LogLevel = "info"
	LevelWarn     LogLevel = "warn"
	LevelError    LogLevel = "error"
	LevelDisabled LogLevel = "disabled"
)

// Component names used with NewLogger.
const (
	ComponentClient = "spotify-client"
	ComponentServer = "catalog-server"
	ComponentCLI    = "catalog-cli"
)

var levelAliases = map[string]zerolog.Level{
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"disabled": zerolog.Disabled,
	"off":      zerolog.Disabled,
	"none":     zerolog.Disabled,
}

// Config holds logger configuration.
type Config struct {
	Level LogLevel

	// Pretty switches from JSON lines to zerolog's console writer
	Pretty bool

	// Output defaults to os.Stderr so stdout stays free for command output
	Output io.Writer
}

// DefaultConfig returns info-level JSON logging to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
	}
}

// ParseLevel validates a level name, case-insensitively.
func ParseLevel(name string) (LogLevel, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if _, ok := levelAliases[key]; !ok {
		return "", fmt.Errorf("unknown log level %q", name)
	}
	return LogLevel(key), nil
}

// Setup installs the global zerolog logger and level and returns it.
// Unknown levels fall back to info.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(zerologLevel(cfg.Level))

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger
}

// NewLogger derives a logger tagged with component from the global logger.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func zerologLevel(level LogLevel) zerolog.Level {
	if l, ok := levelAliases[strings.ToLower(string(level))]; ok {
		return l
	}
	return zerolog.InfoLevel
}

// Level usage:
//
// Debug: cache hit/miss with key, request dispatch (mode, url), pagination progress
// Info:  client ready, Redis connected, server start and shutdown
// Warn:  upstream error statuses (404, 429, 5xx), rate limit blocks, Redis store
//        errors (the memory cache still serves), page limit reached
// Error: bodies that do not decode for the active mode, transport failures
//
// Common fields: component, mode, path, key, status_code, pages.
