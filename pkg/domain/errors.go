package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyDeck is returned when a graph is constructed with zero nodes.
var ErrEmptyDeck = errors.New("deck has no nodes")

// ErrNodeNotFound is returned when an id or position does not resolve to a
// node in the sequence.
var ErrNodeNotFound = errors.New("node not found")

// ErrBookmarkNotFound is returned when a session id cannot be found in a
// bookmark store.
var ErrBookmarkNotFound = errors.New("bookmark not found")

// DuplicateIDError reports an id collision detected during an index
// rebuild. The rebuild that produced it left the previous index untouched.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate node id %q", e.ID)
}

// InvalidTraversalError reports a recoverable navigation failure: a branch
// key with no matching option, a choose on a node without a branch point,
// or an out-of-range jump. Traversal state is unchanged when it is
// returned.
type InvalidTraversalError struct {
	Op     string // "choose" or "jump"
	Detail string
}

func (e *InvalidTraversalError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Op, e.Detail)
}
