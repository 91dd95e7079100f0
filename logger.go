package palquant

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with quantizer-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler writing to stderr at info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithFile tags the logger with the image being processed.
func (l *Logger) WithFile(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("file", name),
	}
}

// LogQuantize logs the outcome of a quantize call.
func (l *Logger) LogQuantize(ctx context.Context, mode Mode, requested, colors, samples int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "quantize failed",
			"mode", mode.String(),
			"requested", requested,
			"samples", samples,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "quantize completed",
		"mode", mode.String(),
		"requested", requested,
		"colors", colors,
		"samples", samples,
	)
}

// LogRefine logs a refinement run.
func (l *Logger) LogRefine(ctx context.Context, iterations int, before, after float64) {
	l.DebugContext(ctx, "refine completed",
		"iterations", iterations,
		"error_before", before,
		"error_after", after,
	)
}

// LogAuto logs the color count chosen by QuantizeAuto.
func (l *Logger) LogAuto(ctx context.Context, probeError float64, colors int) {
	l.InfoContext(ctx, "auto color count",
		"probe_error", probeError,
		"colors", colors,
	)
}

// LogConvert logs the conversion of one input file.
func (l *Logger) LogConvert(ctx context.Context, in, out string, colors int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "convert failed",
			"input", in,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "converted",
		"input", in,
		"output", out,
		"colors", colors,
	)
}
