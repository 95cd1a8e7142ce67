package logger

import (
	"io"
	"log/slog"
	"os"
)

type options struct {
	w     io.Writer
	level slog.Level
	json  bool
	attrs []slog.Attr
}

// Option configures the logger factory.
type Option func(*options)

// WithOutput sets the destination writer. Default is os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.w = w
		}
	}
}

// WithLevel sets the minimum log level. Default is slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithJSONFormatter switches output to JSON, suitable for log aggregation.
func WithJSONFormatter() Option {
	return func(o *options) {
		o.json = true
	}
}

// WithAttrs attaches attributes to every record emitted by the logger.
func WithAttrs(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// New creates a configured *slog.Logger.
func New(opts ...Option) *slog.Logger {
	o := &options{
		w:     os.Stderr,
		level: slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(o)
	}

	hopts := &slog.HandlerOptions{Level: o.level}

	var h slog.Handler
	if o.json {
		h = slog.NewJSONHandler(o.w, hopts)
	} else {
		h = slog.NewTextHandler(o.w, hopts)
	}
	if len(o.attrs) > 0 {
		h = h.WithAttrs(o.attrs)
	}

	return slog.New(h)
}

// Discard returns a logger that drops every record. Packages use it as the
// default when no logger is provided.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
