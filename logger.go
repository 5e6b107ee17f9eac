package mokja

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with mokja-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithUser adds a user id field to the logger.
func (l *Logger) WithUser(userID string) *Logger {
	return &Logger{
		Logger: l.Logger.With("user_id", userID),
	}
}

// WithSortBy adds a sort strategy field to the logger.
func (l *Logger) WithSortBy(sortBy string) *Logger {
	return &Logger{
		Logger: l.Logger.With("sort_by", sortBy),
	}
}

// LogRank logs a ranking operation.
func (l *Logger) LogRank(ctx context.Context, sortBy string, candidates, returned int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "rank failed",
			"sort_by", sortBy,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "rank completed",
			"sort_by", sortBy,
			"candidates", candidates,
			"returned", returned,
		)
	}
}

// LogSearch logs a name search operation.
func (l *Logger) LogSearch(ctx context.Context, query string, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"query", query,
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"query", query,
			"k", k,
			"results", resultsFound,
		)
	}
}

// LogPersonalizationFallback logs a degraded personalization request.
func (l *Logger) LogPersonalizationFallback(ctx context.Context, userID string, err error) {
	l.WarnContext(ctx, "personalization unavailable, falling back to popularity",
		"user_id", userID,
		"reason", err,
	)
}

// LogUnknownSortBy logs a ranking request with an unrecognized strategy.
func (l *Logger) LogUnknownSortBy(ctx context.Context, sortBy string) {
	l.WarnContext(ctx, "unknown sort strategy, falling back to rating",
		"sort_by", sortBy,
	)
}
