package command

import (
	"fmt"

	"github.com/tiberius-s/fireside/pkg/domain"
)

// SetTraversalNext sets the node's next override. Whether Target resolves
// is not checked here; dangling references are the validator's domain.
type SetTraversalNext struct {
	Ref    NodeRef
	Target string
}

func (c SetTraversalNext) Name() string { return "set-traversal-next" }

func (c SetTraversalNext) apply(g *domain.Graph) (Command, error) {
	if c.Target == "" {
		return nil, fmt.Errorf("empty target (use clear-traversal-next)")
	}
	pos, err := c.Ref.resolve(g)
	if err != nil {
		return nil, err
	}
	node := g.NodeAt(pos)
	if node.Traversal == nil {
		node.Traversal = &domain.Traversal{}
	}
	old := node.Traversal.Next
	node.Traversal.Next = c.Target

	ref := refFor(pos, node)
	if old == "" {
		return ClearTraversalNext{Ref: ref}, nil
	}
	return SetTraversalNext{Ref: ref, Target: old}, nil
}

// ClearTraversalNext removes the node's next override. Clearing a node
// that has none is an error, which keeps the inverse exact.
type ClearTraversalNext struct {
	Ref NodeRef
}

func (c ClearTraversalNext) Name() string { return "clear-traversal-next" }

func (c ClearTraversalNext) apply(g *domain.Graph) (Command, error) {
	pos, err := c.Ref.resolve(g)
	if err != nil {
		return nil, err
	}
	node := g.NodeAt(pos)
	if node.Traversal == nil || node.Traversal.Next == "" {
		return nil, fmt.Errorf("%s has no next override", c.Ref)
	}
	old := node.Traversal.Next
	node.Traversal.Next = ""
	if node.Traversal.Empty() {
		node.Traversal = nil
	}
	return SetTraversalNext{Ref: refFor(pos, node), Target: old}, nil
}

// AddBranchOption appends or inserts a keyed option on the node's branch
// point, creating the branch point (with Prompt) when the node has none.
// At is the insertion index, clamped to the valid range, so the zero value
// inserts at the front and any large value appends.
type AddBranchOption struct {
	Ref    NodeRef
	Option domain.BranchOption
	Prompt string
	At     int
}

func (c AddBranchOption) Name() string { return "add-branch-option" }

func (c AddBranchOption) apply(g *domain.Graph) (Command, error) {
	pos, err := c.Ref.resolve(g)
	if err != nil {
		return nil, err
	}
	node := g.NodeAt(pos)
	if node.Traversal == nil {
		node.Traversal = &domain.Traversal{}
	}
	bp := node.Traversal.BranchPoint
	if bp == nil {
		bp = &domain.BranchPoint{Prompt: c.Prompt}
		node.Traversal.BranchPoint = bp
	}
	if _, exists := bp.Option(c.Option.Key); exists {
		return nil, fmt.Errorf("%s already has an option bound to key %q", c.Ref, c.Option.Key)
	}

	at := c.At
	if at < 0 {
		at = 0
	}
	if at > len(bp.Options) {
		at = len(bp.Options)
	}
	bp.Options = append(bp.Options, domain.BranchOption{})
	copy(bp.Options[at+1:], bp.Options[at:])
	bp.Options[at] = c.Option

	return RemoveBranchOption{Ref: refFor(pos, node), Key: c.Option.Key}, nil
}

// RemoveBranchOption removes the option bound to Key. Removing the last
// option removes the branch point itself, so an AddBranchOption that
// created the point round-trips exactly.
type RemoveBranchOption struct {
	Ref NodeRef
	Key rune
}

func (c RemoveBranchOption) Name() string { return "remove-branch-option" }

func (c RemoveBranchOption) apply(g *domain.Graph) (Command, error) {
	pos, err := c.Ref.resolve(g)
	if err != nil {
		return nil, err
	}
	node := g.NodeAt(pos)
	if node.Traversal == nil || node.Traversal.BranchPoint == nil {
		return nil, fmt.Errorf("%s has no branch point", c.Ref)
	}
	bp := node.Traversal.BranchPoint

	at := -1
	for i, opt := range bp.Options {
		if opt.Key == c.Key {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, fmt.Errorf("%s has no option bound to key %q", c.Ref, c.Key)
	}

	removed := bp.Options[at]
	prompt := bp.Prompt
	bp.Options = append(bp.Options[:at], bp.Options[at+1:]...)
	if len(bp.Options) == 0 {
		node.Traversal.BranchPoint = nil
		if node.Traversal.Empty() {
			node.Traversal = nil
		}
	}

	return AddBranchOption{
		Ref:    refFor(pos, node),
		Option: removed,
		Prompt: prompt,
		At:     at,
	}, nil
}
