// Package logging configures the process-wide zerolog logger.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup sets the global level and output. Unknown levels fall back to info.
func Setup(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stderr
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// FromContext returns the logger stored in ctx by WithContext, or the global
// logger when there is none.
func FromContext(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}

// WithContext stores a child of the global logger carrying fields in ctx.
// Later UpdateContext calls on FromContext(ctx) are visible to every holder
// of the returned context.
func WithContext(ctx context.Context, fields map[string]any) context.Context {
	l := log.With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

// Annotate adds key=value to the logger stored in ctx. Without one it does
// nothing, so the global logger is never modified.
func Annotate(ctx context.Context, key, value string) {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return
	}
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str(key, value)
	})
}
