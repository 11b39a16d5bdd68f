// Package middleware wraps BookmarkStore implementations to add
// behavior without the stores knowing.
package middleware

import "github.com/tiberius-s/fireside/pkg/ports"

// Middleware allows wrapping a BookmarkStore to add behavior.
type Middleware func(ports.BookmarkStore) ports.BookmarkStore

// Chain applies middlewares to a store, first middleware outermost.
func Chain(store ports.BookmarkStore, mws ...Middleware) ports.BookmarkStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
