package command

import (
	"fmt"

	"github.com/tiberius-s/fireside/pkg/domain"
)

// UpdateBlock replaces a single block, addressed by Path: the first index
// selects a top-level block, each following index descends into a
// container's children.
type UpdateBlock struct {
	Ref   NodeRef
	Path  []int
	Block domain.Block
}

func (c UpdateBlock) Name() string { return "update-block" }

func (c UpdateBlock) apply(g *domain.Graph) (Command, error) {
	pos, err := c.Ref.resolve(g)
	if err != nil {
		return nil, err
	}
	node := g.NodeAt(pos)

	slot, err := blockAt(node.Blocks, c.Path)
	if err != nil {
		return nil, err
	}
	old := *slot
	*slot = c.Block.Clone()

	return UpdateBlock{Ref: refFor(pos, node), Path: append([]int(nil), c.Path...), Block: old}, nil
}

// MoveBlock reorders a node's top-level blocks, relocating the block at
// From so that it ends up at To.
type MoveBlock struct {
	Ref  NodeRef
	From int
	To   int
}

func (c MoveBlock) Name() string { return "move-block" }

func (c MoveBlock) apply(g *domain.Graph) (Command, error) {
	pos, err := c.Ref.resolve(g)
	if err != nil {
		return nil, err
	}
	node := g.NodeAt(pos)
	n := len(node.Blocks)
	if c.From < 0 || c.From >= n || c.To < 0 || c.To >= n {
		return nil, fmt.Errorf("block move %d->%d out of range [0,%d)", c.From, c.To, n)
	}
	if c.From != c.To {
		b := node.Blocks[c.From]
		rest := append(node.Blocks[:c.From], node.Blocks[c.From+1:]...)
		rest = append(rest, domain.Block{})
		copy(rest[c.To+1:], rest[c.To:])
		rest[c.To] = b
		node.Blocks = rest
	}
	return MoveBlock{Ref: refFor(pos, node), From: c.To, To: c.From}, nil
}

// blockAt walks path through nested containers and returns a pointer to
// the addressed block.
func blockAt(blocks []domain.Block, path []int) (*domain.Block, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("empty block path")
	}
	current := blocks
	for depth, idx := range path {
		if idx < 0 || idx >= len(current) {
			return nil, fmt.Errorf("block path %v: index %d out of range at depth %d", path, idx, depth)
		}
		if depth == len(path)-1 {
			return &current[idx], nil
		}
		if current[idx].Kind != domain.BlockContainer {
			return nil, fmt.Errorf("block path %v: %s block at depth %d has no children", path, current[idx].Kind, depth)
		}
		current = current[idx].Children
	}
	return nil, fmt.Errorf("unreachable")
}
