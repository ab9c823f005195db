// Package internal provides the logfmt handler behind logx.
package internal

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-logfmt/logfmt"
	"github.com/muesli/termenv"
)

// Redacted replaces the value of every sensitive field.
const Redacted = "***REDACTED***"

// Options configures the logfmt handler.
type Options struct {
	Level            slog.Level
	Color            bool // ANSI colors on the level value
	SensitiveFields  []string
	DisableTimestamp bool
}

// Handler writes one logfmt line per record, fields sorted by key.
type Handler struct {
	opts   Options
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	levels map[slog.Level]lipgloss.Style
}

// NewHandler creates a Handler writing to w.
func NewHandler(opts Options, w io.Writer) *Handler {
	h := &Handler{opts: opts, mu: &sync.Mutex{}, w: w}
	if opts.Color {
		r := lipgloss.NewRenderer(w)
		r.SetColorProfile(termenv.ANSI)
		h.levels = map[slog.Level]lipgloss.Style{
			slog.LevelDebug: r.NewStyle().Foreground(lipgloss.Color("5")),
			slog.LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("6")),
			slog.LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("3")),
			slog.LevelError: r.NewStyle().Foreground(lipgloss.Color("1")),
		}
	}
	return h
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	enc := logfmt.NewEncoder(&buf)

	if !h.opts.DisableTimestamp {
		ts := r.Time
		if ts.IsZero() {
			ts = time.Now()
		}
		_ = enc.EncodeKeyval(slog.TimeKey, ts.Format(time.RFC3339))
	}
	_ = enc.EncodeKeyval(slog.LevelKey, r.Level.String())
	_ = enc.EncodeKeyval(slog.MessageKey, r.Message)

	attrs := slices.Clone(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	for _, a := range SortAttrs(attrs) {
		h.encode(enc, a)
	}
	if err := enc.EndRecord(); err != nil {
		return err
	}

	line := buf.String()
	if style, ok := h.levels[r.Level]; ok {
		plain := slog.LevelKey + "=" + r.Level.String()
		line = strings.Replace(line, plain, slog.LevelKey+"="+style.Render(r.Level.String()), 1)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

// encode writes one attribute. Keys logfmt cannot represent are dropped.
func (h *Handler) encode(enc *logfmt.Encoder, a slog.Attr) {
	if IsSensitive(a.Key, h.opts.SensitiveFields) {
		_ = enc.EncodeKeyval(a.Key, Redacted)
		return
	}

	v := value(a.Value.Resolve())
	if err := enc.EncodeKeyval(a.Key, v); errors.Is(err, logfmt.ErrUnsupportedValueType) {
		_ = enc.EncodeKeyval(a.Key, fmt.Sprint(v))
	}
}

func value(v slog.Value) any {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	default:
		return v.Any()
	}
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(slices.Clone(h.attrs), attrs...)
	return &clone
}

// WithGroup returns the handler unchanged; jerseykit logs flat key sets.
func (h *Handler) WithGroup(string) slog.Handler {
	return h
}

// SortAttrs returns a copy of attrs ordered by key. Equal keys keep their order.
func SortAttrs(attrs []slog.Attr) []slog.Attr {
	sorted := slices.Clone(attrs)
	slices.SortStableFunc(sorted, func(a, b slog.Attr) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return sorted
}

// IsSensitive reports whether key names a masked field, ignoring case.
func IsSensitive(key string, fields []string) bool {
	return slices.ContainsFunc(fields, func(f string) bool {
		return strings.EqualFold(key, f)
	})
}
