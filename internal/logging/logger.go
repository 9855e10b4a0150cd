// Package logging provides structured logging for vitae on top of log/slog.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the structured logging interface used across the build pipeline
// and watch loop. Fields are alternating key/value pairs, slog-style.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(err error, msg string, fields ...any)

	With(fields ...any) Logger
	WithComponent(component string) Logger
}

type slogLogger struct {
	logger *slog.Logger
}

// Options configures logger construction.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	Output io.Writer
}

// New creates a structured logger. Nil-safe defaults: info level, text
// format, stderr output.
func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := slog.LevelInfo
	switch strings.ToLower(opts.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	return &slogLogger{logger: slog.New(handler)}
}

// Discard returns a logger that drops everything, for tests.
func Discard() Logger {
	return &slogLogger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *slogLogger) Debug(msg string, fields ...any) {
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, argsToAttrs(fields)...)
}

func (l *slogLogger) Info(msg string, fields ...any) {
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, msg, argsToAttrs(fields)...)
}

func (l *slogLogger) Warn(msg string, fields ...any) {
	l.logger.LogAttrs(context.Background(), slog.LevelWarn, msg, argsToAttrs(fields)...)
}

func (l *slogLogger) Error(err error, msg string, fields ...any) {
	attrs := argsToAttrs(fields)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.logger.LogAttrs(context.Background(), slog.LevelError, msg, attrs...)
}

func (l *slogLogger) With(fields ...any) Logger {
	return &slogLogger{logger: l.logger.With(fields...)}
}

func (l *slogLogger) WithComponent(component string) Logger {
	return &slogLogger{logger: l.logger.With(slog.String("component", component))}
}

func argsToAttrs(fields []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, slog.Any(key, fields[i+1]))
	}
	return attrs
}
