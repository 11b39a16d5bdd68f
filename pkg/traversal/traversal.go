// Package traversal implements the deterministic navigation state machine
// over a deck graph: Advance, Choose, Jump and Back, with a bounded
// history of visited positions.
package traversal

import (
	"fmt"

	"github.com/tiberius-s/fireside/pkg/domain"
)

// MaxHistory bounds the navigation history. Pushes beyond the bound evict
// the oldest entry first, so very deep backtracking in long sessions loses
// the earliest positions rather than growing without limit.
const MaxHistory = 128

// Result describes the outcome of a navigation operation. A zero Moved
// means AtBoundary: there was nothing to do, which is not an error.
type Result struct {
	Moved bool
	From  int
	To    int
}

// AtBoundary is the no-op result.
var AtBoundary = Result{}

// Engine tracks the current position and the visit history for one deck.
// It never mutates the graph. The zero history limit of New is MaxHistory;
// NewWithLimit exists for hosts that want a different bound.
type Engine struct {
	graph   *domain.Graph
	current int
	history []int
	limit   int
}

// New creates an engine positioned at the first node.
func New(g *domain.Graph) *Engine {
	return NewWithLimit(g, MaxHistory)
}

// NewWithLimit creates an engine with a custom history bound. Limits
// below 1 fall back to MaxHistory.
func NewWithLimit(g *domain.Graph, limit int) *Engine {
	if limit < 1 {
		limit = MaxHistory
	}
	return &Engine{graph: g, limit: limit}
}

// Current returns the current position.
func (e *Engine) Current() int {
	return e.current
}

// CurrentNode returns a borrowed view of the current node.
func (e *Engine) CurrentNode() *domain.Node {
	return e.graph.NodeAt(e.current)
}

// HistoryLen returns the number of positions available to Back.
func (e *Engine) HistoryLen() int {
	return len(e.history)
}

// History returns a copy of the visit history, oldest first.
func (e *Engine) History() []int {
	return append([]int(nil), e.history...)
}

// Restore overwrites the engine position and history, clamping both to
// the graph bounds. Hosts use it to resume a bookmarked session or to
// re-anchor after a structural edit invalidated positions.
func (e *Engine) Restore(current int, history []int) {
	if current < 0 {
		current = 0
	}
	if max := e.graph.Len() - 1; current > max {
		current = max
	}
	e.current = current

	e.history = e.history[:0]
	for _, pos := range history {
		if pos >= 0 && pos < e.graph.Len() {
			e.push(pos)
		}
	}
}

// Advance moves forward. Resolution order: the current node's Next
// override, then its After rejoin target, then the next sequential
// position. At the last node with no override it returns AtBoundary.
// An override target that no longer resolves in the index falls through
// to the next rule; the validator, not the traverser, owns dangling
// reference reporting.
func (e *Engine) Advance() Result {
	if to, ok := e.advanceTarget(); ok {
		return e.moveTo(to)
	}
	return AtBoundary
}

func (e *Engine) advanceTarget() (int, bool) {
	node := e.graph.NodeAt(e.current)
	if node != nil && node.Traversal != nil {
		if node.Traversal.Next != "" {
			if pos, ok := e.graph.IndexOf(node.Traversal.Next); ok {
				return pos, true
			}
		} else if node.Traversal.After != "" {
			if pos, ok := e.graph.IndexOf(node.Traversal.After); ok {
				return pos, true
			}
		}
	}
	if e.current+1 < e.graph.Len() {
		return e.current + 1, true
	}
	return 0, false
}

// Choose follows the branch option matching key on the current node.
// It is an *domain.InvalidTraversalError to choose on a node without a
// branch point or with an unknown key; the caller decides whether to
// surface or swallow that.
func (e *Engine) Choose(key rune) (Result, error) {
	node := e.graph.NodeAt(e.current)
	if node == nil || node.Traversal == nil || node.Traversal.BranchPoint == nil {
		return AtBoundary, &domain.InvalidTraversalError{
			Op:     "choose",
			Detail: fmt.Sprintf("node at position %d has no branch point", e.current),
		}
	}
	opt, ok := node.Traversal.BranchPoint.Option(key)
	if !ok {
		return AtBoundary, &domain.InvalidTraversalError{
			Op:     "choose",
			Detail: fmt.Sprintf("no option bound to key %q", key),
		}
	}
	pos, ok := e.graph.IndexOf(opt.Target)
	if !ok {
		return AtBoundary, &domain.InvalidTraversalError{
			Op:     "choose",
			Detail: fmt.Sprintf("option %q targets unknown node %q", key, opt.Target),
		}
	}
	return e.moveTo(pos), nil
}

// Jump moves to an arbitrary position. Reachability through overrides is
// deliberately not required: this backs the "go to node N" affordance.
func (e *Engine) Jump(pos int) (Result, error) {
	if pos < 0 || pos >= e.graph.Len() {
		return AtBoundary, &domain.InvalidTraversalError{
			Op:     "jump",
			Detail: fmt.Sprintf("position %d out of range [0,%d)", pos, e.graph.Len()),
		}
	}
	return e.moveTo(pos), nil
}

// Back pops the most recent history entry and returns to it. This is a
// pure stack pop, not the inverse of Advance: branching paths are
// backtracked exactly as visited. Empty history returns AtBoundary.
func (e *Engine) Back() Result {
	if len(e.history) == 0 {
		return AtBoundary
	}
	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	from := e.current
	e.current = last
	return Result{Moved: true, From: from, To: last}
}

func (e *Engine) moveTo(to int) Result {
	from := e.current
	e.push(from)
	e.current = to
	return Result{Moved: true, From: from, To: to}
}

// push appends with FIFO eviction: overflow discards the oldest entry.
func (e *Engine) push(pos int) {
	if len(e.history) >= e.limit {
		copy(e.history, e.history[1:])
		e.history[len(e.history)-1] = pos
		return
	}
	e.history = append(e.history, pos)
}
