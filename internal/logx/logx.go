// Package logx provides the structured logger used by jerseykit.
//
// Overview:
//   - Responsibility: Diagnostic logging in logfmt, JSON or human console form
//   - Key Types: Logger (core/log.Logger on top of log/slog), Options, Format
//   - Concurrency Model: All loggers are safe for concurrent use
//   - Error Semantics: No errors returned; write failures are dropped
//   - Performance Notes: Level checks happen before any record is built
//
// Usage:
//
//	logger := logx.New(logx.WithFormat(logx.FormatConsole), logx.WithLevel(slog.LevelDebug))
//	logger.Debug("command finished", log.Str("cmd", "mvn"), log.Int("exit_code", 0))
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"go.eggybyte.com/jerseykit/internal/core/identity"
	"go.eggybyte.com/jerseykit/internal/core/log"
	"go.eggybyte.com/jerseykit/internal/logx/internal"
)

// Format selects how records are rendered.
type Format string

const (
	// FormatLogfmt writes one key=value line per record, fields sorted.
	FormatLogfmt Format = "logfmt"
	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
	// FormatConsole writes styled, human-oriented lines.
	FormatConsole Format = "console"
)

// ParseFormat converts a flag or config value into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatLogfmt, FormatJSON, FormatConsole:
		return f, nil
	case "":
		return FormatConsole, nil
	default:
		return "", fmt.Errorf("unknown log format %q (want console, logfmt or json)", s)
	}
}

// ParseLevel converts a level name such as "debug" or "warn" into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q: %w", s, err)
	}
	return level, nil
}

// Options holds the settings applied by New.
type Options struct {
	Format           Format
	Level            slog.Level
	Color            bool      // logfmt only: color the level value
	Writer           io.Writer // defaults to os.Stderr
	SensitiveFields  []string  // values of these keys are replaced, logfmt and JSON
	DisableTimestamp bool
}

// Logger adapts a *slog.Logger to core/log.Logger.
type Logger struct {
	s *slog.Logger
}

var _ log.Logger = (*Logger)(nil)

// New builds a Logger. Without options it writes console output at info level to stderr.
func New(opts ...Option) log.Logger {
	o := Options{Format: FormatConsole, Level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Writer == nil {
		o.Writer = os.Stderr
	}
	return &Logger{s: slog.New(newHandler(o))}
}

func newHandler(o Options) slog.Handler {
	switch o.Format {
	case FormatJSON:
		return slog.NewJSONHandler(o.Writer, &slog.HandlerOptions{
			Level: o.Level,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if o.DisableTimestamp && a.Key == slog.TimeKey {
					return slog.Attr{}
				}
				if internal.IsSensitive(a.Key, o.SensitiveFields) {
					return slog.String(a.Key, internal.Redacted)
				}
				return a
			},
		})
	case FormatLogfmt:
		return internal.NewHandler(internal.Options{
			Level:            o.Level,
			Color:            o.Color,
			SensitiveFields:  o.SensitiveFields,
			DisableTimestamp: o.DisableTimestamp,
		}, o.Writer)
	default:
		// charmbracelet/log levels share slog's numeric values.
		return charmlog.NewWithOptions(o.Writer, charmlog.Options{
			ReportTimestamp: !o.DisableTimestamp,
			TimeFormat:      "15:04:05.00",
			Level:           charmlog.Level(o.Level),
		})
	}
}

// Option configures New.
type Option func(*Options)

// WithFormat selects the output format.
func WithFormat(f Format) Option { return func(o *Options) { o.Format = f } }

// WithLevel sets the minimum level.
func WithLevel(l slog.Level) Option { return func(o *Options) { o.Level = l } }

// WithColor colors the level value of logfmt records.
func WithColor(enabled bool) Option { return func(o *Options) { o.Color = enabled } }

// WithWriter sets the destination.
func WithWriter(w io.Writer) Option { return func(o *Options) { o.Writer = w } }

// WithSensitiveFields masks the values of the named keys.
func WithSensitiveFields(keys ...string) Option {
	return func(o *Options) { o.SensitiveFields = keys }
}

// WithoutTimestamp omits the time field, for reproducible output.
func WithoutTimestamp() Option { return func(o *Options) { o.DisableTimestamp = true } }

// With implements log.Logger.
func (l *Logger) With(kv ...any) log.Logger { return &Logger{s: l.s.With(kv...)} }

// Debug implements log.Logger.
func (l *Logger) Debug(msg string, kv ...any) { l.s.Debug(msg, kv...) }

// Info implements log.Logger.
func (l *Logger) Info(msg string, kv ...any) { l.s.Info(msg, kv...) }

// Warn implements log.Logger.
func (l *Logger) Warn(msg string, kv ...any) { l.s.Warn(msg, kv...) }

// Error implements log.Logger. A non-nil err is logged first under "error".
func (l *Logger) Error(err error, msg string, kv ...any) {
	if err != nil {
		kv = append([]any{slog.String("error", err.Error())}, kv...)
	}
	l.s.Error(msg, kv...)
}

// FromContext returns base with the invocation's run_id and command attached.
// base is returned unchanged when ctx carries no run metadata.
func FromContext(ctx context.Context, base log.Logger) log.Logger {
	meta, ok := identity.RunFrom(ctx)
	if !ok {
		return base
	}

	var kv []any
	if meta.RunID != "" {
		kv = append(kv, slog.String("run_id", meta.RunID))
	}
	if meta.Command != "" {
		kv = append(kv, slog.String("command", meta.Command))
	}
	if len(kv) == 0 {
		return base
	}
	return base.With(kv...)
}
