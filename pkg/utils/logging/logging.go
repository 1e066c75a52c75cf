package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/masq"
)

// Format is the output format of the logger
type Format int

const (
	FormatConsole Format = iota
	FormatJSON
)

var defaultLogger = New(os.Stdout, slog.LevelInfo, FormatConsole)

// Default returns the process-wide logger
func Default() *slog.Logger {
	return defaultLogger
}

// SetDefault replaces the process-wide logger
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
}

// New creates a logger writing to w. Console format uses a colored
// human-readable handler; JSON format is for production log collection.
// Fields tagged `masq:"secret"` and raw signature payloads are redacted.
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	filter := masq.New(
		masq.WithTag("secret"),
		masq.WithFieldName("SignatureImage"),
	)

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: filter,
		})

	default:
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
			clog.WithSource(true),
			clog.WithColorMap(&clog.ColorMap{
				Level: map[slog.Level]*color.Color{
					slog.LevelDebug: color.New(color.FgGreen, color.Bold),
					slog.LevelInfo:  color.New(color.FgCyan, color.Bold),
					slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
					slog.LevelError: color.New(color.FgRed, color.Bold),
				},
				LevelDefault: color.New(color.FgBlue, color.Bold),
				Time:         color.New(color.FgWhite),
				Message:      color.New(color.FgHiWhite),
				AttrKey:      color.New(color.FgHiCyan),
				AttrValue:    color.New(color.FgHiWhite),
			}),
		)
	}

	return slog.New(handler)
}

type ctxLoggerKey struct{}

// With embeds a logger into the context
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From extracts the logger from the context, falling back to the default
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return defaultLogger
}
