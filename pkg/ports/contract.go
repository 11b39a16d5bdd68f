package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiberius-s/fireside/pkg/domain"
)

// RunBookmarkStoreContract runs a suite of tests to verify that a
// BookmarkStore implementation adheres to the interface contract.
func RunBookmarkStoreContract(t *testing.T, store BookmarkStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		bookmark := &Bookmark{
			SessionID: sessionID,
			Position:  3,
			History:   []int{0, 1, 2},
			UpdatedAt: time.Now().UTC(),
		}

		err := store.Save(ctx, bookmark)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, bookmark.SessionID, loaded.SessionID)
		assert.Equal(t, bookmark.Position, loaded.Position)
		assert.Equal(t, bookmark.History, loaded.History)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrBookmarkNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, &Bookmark{SessionID: sessionID, Position: 1})
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrBookmarkNotFound, "Load after Delete should return ErrBookmarkNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, &Bookmark{SessionID: id1, Position: 0})
		_ = store.Save(ctx, &Bookmark{SessionID: id2, Position: 4})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
