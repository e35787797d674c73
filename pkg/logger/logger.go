// Package logger builds the process-wide slog.Logger for Habit Hero and
// provides attribute helpers so log keys stay consistent across packages.
// No external dependencies - uses only standard library.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/habit-hero/habit-hero/pkg/timeutil"
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures the logger.
type Options struct {
	Output io.Writer
	Level  slog.Level
	Format Format

	// AddSource includes file:line of the call site.
	AddSource bool
}

// DefaultOptions returns text logging at info level on stderr.
func DefaultOptions() Options {
	return Options{
		Output: os.Stderr,
		Level:  slog.LevelInfo,
		Format: FormatText,
	}
}

// ParseLevel parses a level name. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat parses a format name. Unknown names map to text.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

// New creates a logger with the given options.
func New(opts Options) *slog.Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: opts.AddSource,
	}

	var handler slog.Handler
	if opts.Format == FormatJSON {
		handler = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(opts.Output, handlerOpts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrDefault returns l, or slog.Default() when l is nil.
func OrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

type ctxKey struct{}

// WithContext returns a new context with the logger attached.
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// Habit Hero attribute helpers.
func UserID(id string) slog.Attr      { return slog.String("user_id", id) }
func HabitID(id string) slog.Attr     { return slog.String("habit_id", id) }
func XPAmount(xp int) slog.Attr       { return slog.Int("xp", xp) }
func Level(level int) slog.Attr       { return slog.Int("level", level) }
func Component(name string) slog.Attr { return slog.String("component", name) }
func Day(t time.Time) slog.Attr       { return slog.String("day", timeutil.FormatDateStr(t)) }
func Err(err error) slog.Attr         { return slog.Any("error", err) }
