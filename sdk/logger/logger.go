// Package logger provides a slog-based logger with env-driven configuration.
package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hearthkeep/hearthkeep/sdk/environment"
)

// TraceIDFn is used to pull a trace id out of the request context so every
// log line for a request carries it.
type TraceIDFn func(ctx context.Context) string

// Logger is a wrapper around the standard slog.Logger.
type Logger struct {
	*slog.Logger
	traceIDFn TraceIDFn
}

// Options is the exportable configuration struct.
type Options struct {
	Level      string `env:"LOG_LEVEL" default:"INFO"`
	Format     string `env:"LOG_FORMAT" default:"json"`
	TimeFormat string `env:"LOG_TIME_FORMAT" default:"RFC3339"`
}

// options holds all configurable settings for the logger.
type options struct {
	level      slog.Level
	output     io.Writer
	addSource  bool
	format     string
	timeFormat string
	traceIDFn  TraceIDFn
}

// Option takes a config option and returns formatted config.
type Option func(*options)

func WithLevel(level string) Option {
	return func(o *options) {
		o.level = parseLevel(level)
	}
}

func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

func WithSource() Option {
	return func(o *options) {
		o.addSource = true
	}
}

func WithTraceID(fn TraceIDFn) Option {
	return func(o *options) {
		o.traceIDFn = fn
	}
}

// NewDefault creates a Logger with default settings and applies any options.
func NewDefault(opts ...Option) *Logger {
	cfg := Options{
		Level:      "INFO",
		Format:     "json",
		TimeFormat: time.RFC3339,
	}
	return newLogger(cfg, opts...)
}

// NewFromEnv creates a Logger configured from prefixed environment variables.
func NewFromEnv(prefix string, opts ...Option) (*Logger, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing logger config: %w", err)
	}
	return newLogger(cfg, opts...), nil
}

// NewStdLogger returns a standard library logger backed by this handler. The
// http.Server error log wants one of these.
func NewStdLogger(logger *Logger, level slog.Level) *log.Logger {
	return slog.NewLogLogger(logger.Logger.Handler(), level)
}

func newLogger(cfg Options, opts ...Option) *Logger {
	options := &options{
		level:      parseLevel(cfg.Level),
		output:     os.Stdout,
		format:     cfg.Format,
		timeFormat: cfg.TimeFormat,
	}
	for _, opt := range opts {
		opt(options)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     options.level,
		AddSource: options.addSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && options.timeFormat != "" {
				switch options.timeFormat {
				case "Unix":
					return slog.Int64(slog.TimeKey, a.Value.Time().Unix())
				case "UnixMilli":
					return slog.Int64(slog.TimeKey, a.Value.Time().UnixMilli())
				case "RFC3339":
					return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
				default:
					return slog.String(slog.TimeKey, a.Value.Time().Format(options.timeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	switch options.format {
	case "text":
		handler = slog.NewTextHandler(options.output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(options.output, handlerOpts)
	}

	return &Logger{
		Logger:    slog.New(handler),
		traceIDFn: options.traceIDFn,
	}
}

// Info logs at info level, injecting the trace id when one is configured.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.write(ctx, slog.LevelInfo, msg, args...)
}

// Debug logs at debug level.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.write(ctx, slog.LevelDebug, msg, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.write(ctx, slog.LevelWarn, msg, args...)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.write(ctx, slog.LevelError, msg, args...)
}

func (l *Logger) write(ctx context.Context, level slog.Level, msg string, args ...any) {
	if l.traceIDFn != nil {
		if tid := l.traceIDFn(ctx); tid != "" {
			args = append(args, "trace_id", tid)
		}
	}
	l.Logger.Log(ctx, level, msg, args...)
}
