// Package command implements the typed mutation system for deck graphs.
//
// Every mutation is a Command, a member of a closed set. Applying a
// command yields the exact inverse command, computed at apply time from
// the state being replaced, so a later unrelated edit can never make undo
// ambiguous or lossy. History pairs the two into undo/redo stacks.
package command

import (
	"errors"
	"fmt"

	"github.com/tiberius-s/fireside/pkg/domain"
)

// Command is a discrete, invertible mutation intent. The set is sealed:
// only this package can implement the interface, which keeps "can this
// command compute its inverse?" a mandatory property of every variant.
type Command interface {
	// Name identifies the command kind for logging and wire surfaces.
	Name() string

	// apply mutates g and returns the inverse command. On error g is
	// left exactly as it was.
	apply(g *domain.Graph) (Command, error)
}

// Apply executes cmd against g. Either the graph ends fully mutated and
// index-consistent, or it is untouched and an error describes why.
func Apply(g *domain.Graph, cmd Command) (Command, error) {
	if g == nil {
		return nil, errors.New("command: nil graph")
	}
	inv, err := cmd.apply(g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return inv, nil
}

// NodeRef addresses a node either by stable id or, when ID is empty, by
// position. Inverse commands use positional refs for anonymous nodes.
type NodeRef struct {
	ID       string
	Position int
}

// ByID addresses a node through the graph index.
func ByID(id string) NodeRef {
	return NodeRef{ID: id}
}

// ByPosition addresses a node by its current position in the sequence.
func ByPosition(pos int) NodeRef {
	return NodeRef{Position: pos}
}

func (r NodeRef) String() string {
	if r.ID != "" {
		return fmt.Sprintf("node %q", r.ID)
	}
	return fmt.Sprintf("node at %d", r.Position)
}

// resolve returns the current position of the referenced node.
func (r NodeRef) resolve(g *domain.Graph) (int, error) {
	if r.ID != "" {
		pos, ok := g.IndexOf(r.ID)
		if !ok {
			return 0, fmt.Errorf("%s: %w", r, domain.ErrNodeNotFound)
		}
		return pos, nil
	}
	if r.Position < 0 || r.Position >= g.Len() {
		return 0, fmt.Errorf("%s: %w", r, domain.ErrNodeNotFound)
	}
	return r.Position, nil
}

// refFor builds the tightest ref for a node at a known position.
func refFor(pos int, n *domain.Node) NodeRef {
	if n.ID != "" {
		return ByID(n.ID)
	}
	return ByPosition(pos)
}
