// Package logging provides structured logging for the mpq pipeline.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LogLevel represents different logging levels
type LogLevel int

// LogLevelDebug represents debug logging level
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// LogFormat selects the slog handler used for output.
type LogFormat string

const (
	// LogFormatText writes key=value lines.
	LogFormatText LogFormat = "text"
	// LogFormatJSON writes one JSON object per line.
	LogFormatJSON LogFormat = "json"
)

// Logger provides structured logging for archive operations.
// It wraps different logger implementations for consistent behavior.
type Logger struct {
	impl loggerImpl
}

// loggerImpl defines the internal interface for logger implementations.
type loggerImpl interface {
	debug(ctx context.Context, msg string, args ...any)
	info(ctx context.Context, msg string, args ...any)
	warn(ctx context.Context, msg string, args ...any)
	error(ctx context.Context, msg string, args ...any)
	with(args ...any) loggerImpl
}

// Debug logs debug-level messages
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	if l != nil && l.impl != nil {
		l.impl.debug(ctx, msg, args...)
	}
}

// Info logs info-level messages
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	if l != nil && l.impl != nil {
		l.impl.info(ctx, msg, args...)
	}
}

// Warn logs warning-level messages
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	if l != nil && l.impl != nil {
		l.impl.warn(ctx, msg, args...)
	}
}

// Error logs error-level messages
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	if l != nil && l.impl != nil {
		l.impl.error(ctx, msg, args...)
	}
}

// With returns a logger with additional context fields
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.impl == nil {
		return l
	}
	if _, ok := l.impl.(*nopLogger); ok {
		return l
	}
	return &Logger{impl: l.impl.with(args...)}
}

// WithOperation returns a logger with operation context
func (l *Logger) WithOperation(op Operation) *Logger {
	return l.With("operation", string(op))
}

// WithArchive returns a logger with archive path context
func (l *Logger) WithArchive(path string) *Logger {
	return l.With("archive", path)
}

// LogConfig holds configuration for the logger.
type LogConfig struct {
	// Level sets the minimum log level (debug, info, warn, error)
	Level LogLevel
	// Format selects text or JSON output
	Format LogFormat
	// Output receives log lines. Defaults to os.Stderr.
	Output io.Writer
	// EnableCallerInfo includes file and line number in logs
	EnableCallerInfo bool
}

// DefaultLogConfig returns a default logging configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  LogLevelInfo,
		Format: LogFormatText,
		Output: os.Stderr,
	}
}

// slogLogger implements loggerImpl using slog.
type slogLogger struct {
	logger *slog.Logger
	config LogConfig
	fields []any
}

// NewLogger creates a new structured logger with the given configuration.
func NewLogger(config LogConfig) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     config.Level.slogLevel(),
		AddSource: config.EnableCallerInfo,
	}

	var handler slog.Handler
	if config.Format == LogFormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return &Logger{
		impl: &slogLogger{
			logger: slog.New(handler),
			config: config,
		},
	}
}

// NewNopLogger creates a no-op logger that discards all log messages.
func NewNopLogger() *Logger {
	return &Logger{impl: &nopLogger{}}
}

func (lvl LogLevel) slogLevel() slog.Level {
	switch lvl {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *slogLogger) args(args []any) []any {
	allArgs := make([]any, len(l.fields)+len(args))
	copy(allArgs, l.fields)
	copy(allArgs[len(l.fields):], args)
	return allArgs
}

func (l *slogLogger) debug(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, l.args(args)...)
}

func (l *slogLogger) info(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, l.args(args)...)
}

func (l *slogLogger) warn(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, l.args(args)...)
}

func (l *slogLogger) error(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, l.args(args)...)
}

func (l *slogLogger) with(args ...any) loggerImpl {
	return &slogLogger{
		logger: l.logger,
		config: l.config,
		fields: l.args(args),
	}
}

// nopLogger is a no-op logger implementation that discards all messages.
type nopLogger struct{}

func (n *nopLogger) debug(ctx context.Context, msg string, args ...any) {}
func (n *nopLogger) info(ctx context.Context, msg string, args ...any)  {}
func (n *nopLogger) warn(ctx context.Context, msg string, args ...any)  {}
func (n *nopLogger) error(ctx context.Context, msg string, args ...any) {}
func (n *nopLogger) with(args ...any) loggerImpl                        { return n }

// Operation names a top-level command for log context.
type Operation string

// Operation constants for archive commands
const (
	OpExtract Operation = "extract"
	OpList    Operation = "list"
	OpView    Operation = "view"
	OpCreate  Operation = "create"
)

// LogEntryWarning logs a recoverable per-entry failure.
func LogEntryWarning(ctx context.Context, logger *Logger, name string, err error) {
	if logger == nil {
		return
	}

	logger.Warn(ctx, "skipping entry",
		"entry", name,
		"error", err.Error())
}

// LogSummary logs the outcome of a batch command.
func LogSummary(ctx context.Context, logger *Logger, op Operation, processed, warnings int, duration time.Duration) {
	if logger == nil {
		return
	}

	logger.Info(ctx, fmt.Sprintf("%s completed", op),
		"processed", processed,
		"warnings", warnings,
		"duration_ms", duration.Milliseconds())
}

// ParseLogLevel parses a string log level into a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LogLevelDebug, nil
	case "info", "":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// ParseLogFormat parses a string log format into a LogFormat.
func ParseLogFormat(format string) (LogFormat, error) {
	switch strings.ToLower(format) {
	case "text", "":
		return LogFormatText, nil
	case "json":
		return LogFormatJSON, nil
	default:
		return LogFormatText, fmt.Errorf("invalid log format: %s", format)
	}
}
