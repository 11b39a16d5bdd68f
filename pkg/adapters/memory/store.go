// Package memory provides an in-process BookmarkStore, the default when
// no external store is configured.
package memory

import (
	"context"
	"sync"

	"github.com/tiberius-s/fireside/pkg/domain"
	"github.com/tiberius-s/fireside/pkg/ports"
)

// Store implements ports.BookmarkStore in memory. Safe for concurrent
// use.
type Store struct {
	mu   sync.RWMutex
	data map[string]*ports.Bookmark
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string]*ports.Bookmark)}
}

// Save stores a copy of the bookmark so the caller cannot mutate store
// state through the pointer afterwards.
func (s *Store) Save(ctx context.Context, b *ports.Bookmark) error {
	cp := *b
	cp.History = append([]int(nil), b.History...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[b.SessionID] = &cp
	return nil
}

// Load returns a copy of the stored bookmark.
func (s *Store) Load(ctx context.Context, sessionID string) (*ports.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrBookmarkNotFound
	}
	cp := *b
	cp.History = append([]int(nil), b.History...)
	return &cp, nil
}

// Delete removes the bookmark.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the session ids with a stored bookmark.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
