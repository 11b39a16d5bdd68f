package command

import (
	"fmt"

	"github.com/tiberius-s/fireside/pkg/domain"
)

// AddNode inserts a node at position At (At may equal the sequence length
// to append). The graph takes ownership of a deep copy, so the caller's
// Node cannot alias live state.
type AddNode struct {
	At   int
	Node domain.Node
}

func (c AddNode) Name() string { return "add-node" }

func (c AddNode) apply(g *domain.Graph) (Command, error) {
	if c.At < 0 || c.At > g.Len() {
		return nil, fmt.Errorf("position %d out of range [0,%d]", c.At, g.Len())
	}
	n := c.Node.Clone()
	if err := g.InsertNode(c.At, &n); err != nil {
		// A *domain.DuplicateIDError from the index rebuild; the insert
		// was rolled back.
		return nil, err
	}
	return RemoveNode{Ref: refFor(c.At, &n)}, nil
}

// RemoveNode deletes the referenced node. The inverse carries the full
// removed node and its original position, so undo restores it exactly.
type RemoveNode struct {
	Ref NodeRef
}

func (c RemoveNode) Name() string { return "remove-node" }

func (c RemoveNode) apply(g *domain.Graph) (Command, error) {
	pos, err := c.Ref.resolve(g)
	if err != nil {
		return nil, err
	}
	removed, err := g.RemoveNodeAt(pos)
	if err != nil {
		return nil, err
	}
	return AddNode{At: pos, Node: removed.Clone()}, nil
}

// MoveNode relocates the referenced node to position To.
type MoveNode struct {
	Ref NodeRef
	To  int
}

func (c MoveNode) Name() string { return "move-node" }

func (c MoveNode) apply(g *domain.Graph) (Command, error) {
	from, err := c.Ref.resolve(g)
	if err != nil {
		return nil, err
	}
	if c.To < 0 || c.To >= g.Len() {
		return nil, fmt.Errorf("position %d out of range [0,%d)", c.To, g.Len())
	}
	if err := g.MoveNode(from, c.To); err != nil {
		return nil, err
	}
	return MoveNode{Ref: refFor(c.To, g.NodeAt(c.To)), To: from}, nil
}

// UpdateNodeContent replaces the entire block sequence of a node.
type UpdateNodeContent struct {
	Ref    NodeRef
	Blocks []domain.Block
}

func (c UpdateNodeContent) Name() string { return "update-node-content" }

func (c UpdateNodeContent) apply(g *domain.Graph) (Command, error) {
	pos, err := c.Ref.resolve(g)
	if err != nil {
		return nil, err
	}
	node := g.NodeAt(pos)
	old := node.Blocks

	fresh := make([]domain.Block, len(c.Blocks))
	for i, b := range c.Blocks {
		fresh[i] = b.Clone()
	}
	node.Blocks = fresh

	return UpdateNodeContent{Ref: refFor(pos, node), Blocks: old}, nil
}
