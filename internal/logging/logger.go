// Package logging provides the zerolog logger shared by the server and the
// CLI. Output is human-readable on a terminal and JSON elsewhere.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

type ctxKey struct{}

var defaultLogger = build(os.Stderr, os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"))

// Default returns the process-wide logger.
func Default() *zerolog.Logger { return &defaultLogger }

// Configure rebuilds the default logger from a format ("json" or "console")
// and a level name. Unknown levels fall back to info.
func Configure(format, level string) *zerolog.Logger {
	defaultLogger = build(os.Stderr, format, level)
	return &defaultLogger
}

// New returns a JSON logger writing to w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *zerolog.Logger) context.Context {
	if l == nil {
		l = Default()
	}
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx or the default one.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok && l != nil {
			return l
		}
	}
	return Default()
}

func build(w *os.File, format, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	var out io.Writer = w
	if format != "json" && isatty.IsTerminal(w.Fd()) {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
