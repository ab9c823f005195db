// Package log defines the logging contract shared by jerseykit packages.
//
// Components accept a Logger and never construct one; the CLI picks the
// implementation (internal/logx) once per invocation. Key-value arguments
// follow log/slog conventions: alternating keys and values, or slog.Attr
// values built with the helpers below.
//
// Usage:
//
//	logger.Info("tool installed", log.Str("tool", "maven"), log.Dur("took", d))
package log

import (
	"log/slog"
	"time"
)

// Logger is a structured, leveled logger. Implementations must be safe for
// concurrent use.
type Logger interface {
	// With returns a Logger that adds kv to every entry.
	With(kv ...any) Logger
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	// Error logs msg with err attached under the "error" key.
	Error(err error, msg string, kv ...any)
}

// Str returns a string attribute.
func Str(k, v string) slog.Attr { return slog.String(k, v) }

// Int returns an integer attribute.
func Int(k string, v int) slog.Attr { return slog.Int(k, v) }

// Dur returns a duration attribute.
func Dur(k string, v time.Duration) slog.Attr { return slog.Duration(k, v) }

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }

type nop struct{}

func (n nop) With(...any) Logger        { return n }
func (nop) Debug(string, ...any)        {}
func (nop) Info(string, ...any)         {}
func (nop) Warn(string, ...any)         {}
func (nop) Error(error, string, ...any) {}
