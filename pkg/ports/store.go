// Package ports defines the driven-side interfaces the engine core does
// not implement itself.
package ports

import (
	"context"
	"time"
)

// Bookmark is a resumable snapshot of one session's traversal state:
// where the audience is and how it got there. Edit history is
// deliberately absent; undo/redo lives in memory only.
type Bookmark struct {
	SessionID string    `json:"session_id"`
	Position  int       `json:"position"`
	History   []int     `json:"history"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookmarkStore persists bookmarks so a presentation can stop and resume.
// Load returns domain.ErrBookmarkNotFound when the session is unknown.
type BookmarkStore interface {
	Save(ctx context.Context, b *Bookmark) error
	Load(ctx context.Context, sessionID string) (*Bookmark, error)
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]string, error)
}
