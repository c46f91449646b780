// Package logging defines a minimal structured-logging interface used across
// the project, with slog and zap implementations.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "party updated", "user_id", userID, "slot", slot)
type Logger interface {
	// Debug logs diagnostic detail that is off by default.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

const (
	DriverSlog     = "slog"
	DriverSlogJSON = "slog-json"
	DriverZap      = "zap"
)

// New builds a Logger for the given driver name writing to w at the given
// level ("debug", "info", "warn", "error").
func New(driver, level string, w io.Writer) (Logger, error) {
	switch strings.ToLower(driver) {
	case "", DriverSlog:
		return newSlogText(w, level), nil
	case DriverSlogJSON:
		return newSlogJSON(w, level), nil
	case DriverZap:
		return newZap(w, level), nil
	default:
		return nil, fmt.Errorf("unknown log driver %q", driver)
	}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return newSlogText(io.Discard, "error")
}
