// Package logging wraps log/slog for the toolkit. The global logger
// writes to standard error so command output keeps standard out to
// itself, and an ingest run id carried in a context is attached to
// every record logged through the *Context helpers.
package logging

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// ContextKey is the key type for values this package stores in a
// context.
type ContextKey string

// RunIDKey carries the ingest run id.
const RunIDKey ContextKey = "run_id"

// Level selects the minimum record level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Format selects the record encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatText
)

var defaultLogger *slog.Logger

func init() {
	InitLogger(LevelInfo, FormatJSON)
}

// rfc3339Time rewrites the record timestamp to RFC3339 so log lines
// match the time format the catalog stores.
func rfc3339Time(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
	}
	return a
}

// InitLogger replaces the global logger. Records below level are
// dropped.
func InitLogger(level Level, format Format) {
	opts := &slog.HandlerOptions{
		Level:       level.slogLevel(),
		ReplaceAttr: rfc3339Time,
	}
	var handler slog.Handler
	if format == FormatText {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// GetLogger returns the global logger.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// WithRunID stores an ingest run id in the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID returns the ingest run id stored in the context, or "".
func GetRunID(ctx context.Context) string {
	runID, _ := ctx.Value(RunIDKey).(string)
	return runID
}

// LoggerFromContext returns the global logger with the context's run
// id attached when one is present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if runID := GetRunID(ctx); runID != "" {
		return defaultLogger.With("run_id", runID)
	}
	return defaultLogger
}

// Debug logs at debug level with optional key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs at info level with optional key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs at warn level with optional key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs at error level with optional key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// DebugContext logs at debug level with the context's run id.
func DebugContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).Debug(msg, args...)
}

// InfoContext logs at info level with the context's run id.
func InfoContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).Info(msg, args...)
}

// WarnContext logs at warn level with the context's run id.
func WarnContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).Warn(msg, args...)
}

// ErrorContext logs at error level with the context's run id.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).Error(msg, args...)
}

// DocumentLoaded records a successfully loaded annotation document and
// its annotation counts.
func DocumentLoaded(docID, sourceType, path string, entities, fillers, relations, events int, args ...any) {
	defaultLogger.Info("document_loaded", append([]any{
		"doc_id", docID,
		"source_type", sourceType,
		"path", path,
		"entities", entities,
		"fillers", fillers,
		"relations", relations,
		"events", events,
	}, args...)...)
}

// DocumentFailed records a document that could not be loaded.
func DocumentFailed(path string, err error, args ...any) {
	defaultLogger.Error("document_failed", append([]any{
		"path", path,
		"error", err.Error(),
	}, args...)...)
}

// DocumentFailedContext records a failed document under the context's
// run id.
func DocumentFailedContext(ctx context.Context, path string, err error, args ...any) {
	LoggerFromContext(ctx).Error("document_failed", append([]any{
		"path", path,
		"error", err.Error(),
	}, args...)...)
}

// IngestRunFinished records a completed catalog ingest run.
func IngestRunFinished(runID string, documents int, duration time.Duration, args ...any) {
	defaultLogger.Info("ingest_run_finished", append([]any{
		"run_id", runID,
		"documents", documents,
		"duration_ms", duration.Milliseconds(),
	}, args...)...)
}

// ScoreComputed records a computed coreference score.
func ScoreComputed(keyPath, responsePath string, score float64, args ...any) {
	defaultLogger.Info("score_computed", append([]any{
		"key", keyPath,
		"response", responsePath,
		"score", score,
	}, args...)...)
}
