package domain

// Node represents a single vertex of content in the deck graph.
// Nodes are owned exclusively by the Graph sequence; callers receive
// borrowed pointers and must route mutations through the command engine.
type Node struct {
	// ID is the optional stable identifier. Non-empty IDs participate in
	// the graph index and may be targeted by traversal overrides.
	ID string

	// Blocks holds the ordered content of the node.
	Blocks []Block

	// Layout and Transition are presentation hints, opaque to the core.
	Layout     string
	Transition string

	// SpeakerNotes are presenter-only text, never shown to the audience.
	SpeakerNotes string

	// Traversal overrides how navigation leaves this node. Nil means
	// plain sequential advance.
	Traversal *Traversal
}

// Traversal is the per-node override record controlling navigation.
// All fields are optional.
type Traversal struct {
	// Next force-jumps Advance to the target id, overriding sequential
	// order.
	Next string

	// After is the rejoin target, followed by Advance once a branch
	// sub-path has no further Next.
	After string

	// BranchPoint offers the audience a keyed choice of targets.
	BranchPoint *BranchPoint
}

// BranchPoint is a node-level decision surface.
type BranchPoint struct {
	Prompt  string
	Options []BranchOption
}

// BranchOption is one keyed choice leading to a target node.
type BranchOption struct {
	Key    rune
	Label  string
	Target string
}

// Clone returns a deep copy of the node. Used by inverse commands so that
// undo data cannot alias live graph state.
func (n Node) Clone() Node {
	out := n
	if n.Blocks != nil {
		out.Blocks = make([]Block, len(n.Blocks))
		for i, b := range n.Blocks {
			out.Blocks[i] = b.Clone()
		}
	}
	if n.Traversal != nil {
		t := n.Traversal.Clone()
		out.Traversal = &t
	}
	return out
}

// Empty reports whether the record carries no overrides at all. Mutators
// drop empty records so that a node round-trips to its original shape.
func (t *Traversal) Empty() bool {
	return t.Next == "" && t.After == "" && t.BranchPoint == nil
}

// Clone returns a deep copy of the traversal record.
func (t Traversal) Clone() Traversal {
	out := t
	if t.BranchPoint != nil {
		bp := BranchPoint{
			Prompt:  t.BranchPoint.Prompt,
			Options: append([]BranchOption(nil), t.BranchPoint.Options...),
		}
		out.BranchPoint = &bp
	}
	return out
}

// Option returns the branch option matching key, if any.
func (bp *BranchPoint) Option(key rune) (BranchOption, bool) {
	for _, opt := range bp.Options {
		if opt.Key == key {
			return opt, true
		}
	}
	return BranchOption{}, false
}
