// Package logging provides structured logging configuration using zerolog,
// with optional size-rotated log files.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer

	// File additionally writes JSON logs to a rotated file when Path is set.
	File FileConfig
}

// FileConfig configures the rotated log file.
type FileConfig struct {
	// Path of the log file. Empty disables file logging.
	Path string

	// MaxSize is the maximum size in megabytes before rotation.
	MaxSize int

	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int

	// MaxAge is the maximum number of days to retain old log files.
	MaxAge int

	// Compress determines if rotated files should be gzipped.
	Compress bool
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
		File: FileConfig{
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		},
	}
}

// Setup configures the global zerolog logger. The returned closer releases the
// log file, if any.
func Setup(cfg Config) (zerolog.Logger, io.Closer, error) {
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var output io.Writer = out
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	var closer io.Closer = nopCloser{}
	if cfg.File.Path != "" {
		file, err := newFileWriter(cfg.File)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		output = zerolog.MultiLevelWriter(output, file)
		closer = file
	}

	logger := zerolog.New(output).With().Timestamp().Logger()

	log.Logger = logger

	return logger, closer, nil
}

// newFileWriter creates a lumberjack rotated file writer.
func newFileWriter(cfg FileConfig) (*lumberjack.Logger, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Each request attempt (endpoint)
//   - Pagination flow (last page, limit, empty pages)
//   - Retry backoff
//
// Info: Normal operation events
//   - Completed paginated fetches
//   - Requests that succeeded after retry
//   - Server startup/shutdown
//
// Warn: Warning conditions
//   - Error responses (401, 404, 429, 5xx)
//   - Page failures that discard accumulated results
//   - Exhausted retries
//
// Error: Error conditions requiring attention
//   - Network failures
//   - Preset store failures
//   - Configuration errors
//
// Context Fields:
//   - component: wallhaven-client, pagination, whctl, serve
//   - endpoint: route name (search, wallpaper, collection_wallpapers, ...)
//   - status: HTTP status code
//   - error_class: client, server, rate_limit, network
//   - page, last_page, limit, items: pagination progress
//   - duration: elapsed time
