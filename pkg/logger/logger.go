package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelSilent:
		return "SILENT"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config value ("debug", "info", ...) to a Level.
// Unknown values fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "silent", "off", "none":
		return LevelSilent
	default:
		return LevelInfo
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelSilent:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

// Format selects the handler used to encode records.
type Format string

const (
	FormatPretty Format = "pretty" // colored, human oriented (tint)
	FormatText   Format = "text"
	FormatJSON   Format = "json"
)

// Logger provides structured logging with configurable levels
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
	SetLevel(level Level)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value any
}

// F is a convenience function for creating fields
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// slogLogger implements Logger on top of log/slog.
type slogLogger struct {
	level  *slog.LevelVar
	mu     *sync.Mutex
	silent *bool
	base   *slog.Logger
}

// NewLogger creates a new logger with the specified level and output.
// Output is plain key=value text, which keeps it stable for tests and pipes.
func NewLogger(level Level, out io.Writer) Logger {
	return New(level, out, FormatText)
}

// New creates a logger writing records in the given format.
func New(level Level, out io.Writer, format Format) Logger {
	if out == nil {
		out = os.Stdout
	}

	lv := new(slog.LevelVar)
	lv.Set(level.slog())

	var h slog.Handler
	switch format {
	case FormatPretty:
		h = tint.NewHandler(out, &tint.Options{
			Level:      lv,
			TimeFormat: time.Kitchen,
		})
	case FormatJSON:
		h = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lv})
	default:
		h = slog.NewTextHandler(out, &slog.HandlerOptions{Level: lv})
	}

	silent := level == LevelSilent
	return &slogLogger{
		level:  lv,
		mu:     &sync.Mutex{},
		silent: &silent,
		base:   slog.New(h),
	}
}

// NewDefaultLogger creates a logger with Info level writing pretty output to stderr
func NewDefaultLogger() Logger {
	return New(LevelInfo, os.Stderr, FormatPretty)
}

// NewSilentLogger creates a logger that outputs nothing
func NewSilentLogger() Logger {
	return NewLogger(LevelSilent, io.Discard)
}

// SetLevel sets the minimum logging level
func (l *slogLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.silent = level == LevelSilent
	l.level.Set(level.slog())
}

// WithFields returns a new logger with additional fields.
// The child shares its parent's level.
func (l *slogLogger) WithFields(fields ...Field) Logger {
	return &slogLogger{
		level:  l.level,
		mu:     l.mu,
		silent: l.silent,
		base:   l.base.With(attrs(fields)...),
	}
}

// Debug logs a debug message
func (l *slogLogger) Debug(msg string, fields ...Field) {
	l.log(slog.LevelDebug, msg, fields)
}

// Info logs an info message
func (l *slogLogger) Info(msg string, fields ...Field) {
	l.log(slog.LevelInfo, msg, fields)
}

// Warn logs a warning message
func (l *slogLogger) Warn(msg string, fields ...Field) {
	l.log(slog.LevelWarn, msg, fields)
}

// Error logs an error message
func (l *slogLogger) Error(msg string, fields ...Field) {
	l.log(slog.LevelError, msg, fields)
}

func (l *slogLogger) log(level slog.Level, msg string, fields []Field) {
	l.mu.Lock()
	silent := *l.silent
	l.mu.Unlock()
	if silent {
		return
	}
	l.base.Log(context.Background(), level, msg, attrs(fields)...)
}

func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, slog.Any(f.Key, f.Value))
	}
	return out
}

// Global default logger
var defaultLogger = NewDefaultLogger()

// SetDefault sets the global default logger
func SetDefault(l Logger) {
	defaultLogger = l
}

// Default returns the global default logger
func Default() Logger {
	return defaultLogger
}

// Convenience functions using the default logger
func Debug(msg string, fields ...Field) {
	defaultLogger.Debug(msg, fields...)
}

func Info(msg string, fields ...Field) {
	defaultLogger.Info(msg, fields...)
}

func Warn(msg string, fields ...Field) {
	defaultLogger.Warn(msg, fields...)
}

func Error(msg string, fields ...Field) {
	defaultLogger.Error(msg, fields...)
}
