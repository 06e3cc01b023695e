// Package logger wraps github.com/rs/zerolog behind the teacher's
// original package-function call shape (Info/Warn/Error/Debug), plus a
// WithRequestID helper that threads the per-request correlation id
// (spec.md §2, §6) through as a structured field instead of a
// string-formatted one.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var base zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	base = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Base returns the process-wide logger with no request context
// attached, for call sites outside a dispatched request (startup,
// background cache eviction).
func Base() zerolog.Logger {
	return base
}

// WithRequestID returns a logger carrying requestID as a structured
// field, matched to every downstream MirrorPort/ConsensusPort call for
// that request.
func WithRequestID(requestID string) zerolog.Logger {
	return base.With().Str("request_id", requestID).Logger()
}

func Info(format string, args ...interface{}) {
	base.Info().Msgf(format, args...)
}

func Error(format string, args ...interface{}) {
	base.Error().Msgf(format, args...)
}

func Warn(format string, args ...interface{}) {
	base.Warn().Msgf(format, args...)
}

func Debug(format string, args ...interface{}) {
	base.Debug().Msgf(format, args...)
}
