// Package logger provides the process-wide zerolog logger.
package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	once          sync.Once
)

// Init initializes the default logger. Console output by default; set
// format to "json" for machine-readable logs. Safe to call more than once.
func Init(level string, format string) {
	once.Do(func() {
		lvl, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil || level == "" {
			lvl = zerolog.InfoLevel
		}

		var logger zerolog.Logger
		if format == "json" {
			logger = zerolog.New(os.Stdout)
		} else {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		}
		defaultLogger = logger.Level(lvl).With().Timestamp().Logger()
	})
}

// Get returns the initialized default logger, initializing it with defaults
// if Init was never called.
func Get() zerolog.Logger {
	Init("info", "console")
	return defaultLogger
}

// Info logs an informational message using the default logger.
func Info(msg string, kv ...any) {
	l := Get()
	l.Info().Fields(kv).Msg(msg)
}

// Warn logs a warning message using the default logger.
func Warn(msg string, kv ...any) {
	l := Get()
	l.Warn().Fields(kv).Msg(msg)
}

// Error logs an error message using the default logger.
func Error(msg string, err error, kv ...any) {
	l := Get()
	l.Error().Err(err).Fields(kv).Msg(msg)
}

// Debug logs a debug message using the default logger.
func Debug(msg string, kv ...any) {
	l := Get()
	l.Debug().Fields(kv).Msg(msg)
}
