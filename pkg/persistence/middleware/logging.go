package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/tiberius-s/fireside/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.BookmarkStore
	logger *slog.Logger
}

// NewLoggingMiddleware creates a middleware that logs store operations
// with their duration and outcome.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.BookmarkStore) ports.BookmarkStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) Save(ctx context.Context, b *ports.Bookmark) error {
	start := time.Now()
	err := m.next.Save(ctx, b)
	m.log("bookmark save", b.SessionID, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, sessionID string) (*ports.Bookmark, error) {
	start := time.Now()
	b, err := m.next.Load(ctx, sessionID)
	m.log("bookmark load", sessionID, start, err)
	return b, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, sessionID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, sessionID)
	m.log("bookmark delete", sessionID, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.log("bookmark list", "", start, err)
	return ids, err
}

func (m *loggingMiddleware) log(op, sessionID string, start time.Time, err error) {
	attrs := []any{"duration", time.Since(start)}
	if sessionID != "" {
		attrs = append(attrs, "session_id", sessionID)
	}
	if err != nil {
		attrs = append(attrs, "error", err)
		m.logger.Warn(op+" failed", attrs...)
		return
	}
	m.logger.Debug(op, attrs...)
}
