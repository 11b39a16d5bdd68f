package domain

// Metadata holds deck-level fields the core treats as opaque.
type Metadata struct {
	Title   string
	Author  string
	Version string
	Theme   string
}

// Graph is the deck: metadata, the ordered node sequence and the derived
// id to position index. The sequence is the single owner of every node;
// the index is a bijection between non-empty ids and positions and must be
// rebuilt after any structural change. A stale index is a correctness bug,
// not a staleness nuisance: lookups would silently point at the wrong node.
type Graph struct {
	Meta Metadata

	nodes []*Node
	index map[string]int
}

// NewGraph builds a graph from an already-parsed node sequence. It rejects
// an empty sequence and duplicate ids.
func NewGraph(meta Metadata, nodes []*Node) (*Graph, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyDeck
	}
	g := &Graph{Meta: meta, nodes: nodes}
	if err := g.RebuildIndex(); err != nil {
		return nil, err
	}
	return g, nil
}

// Len returns the number of nodes in the sequence.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// NodeAt returns a borrowed view of the node at pos, or nil when pos is
// out of range.
func (g *Graph) NodeAt(pos int) *Node {
	if pos < 0 || pos >= len(g.nodes) {
		return nil
	}
	return g.nodes[pos]
}

// Nodes returns the node sequence for iteration. The slice and the nodes
// it points to are borrowed from the graph; callers must not mutate them.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// NodeByID resolves id through the index.
func (g *Graph) NodeByID(id string) (*Node, bool) {
	pos, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[pos], true
}

// IndexOf returns the position of the node with the given id.
func (g *Graph) IndexOf(id string) (int, bool) {
	pos, ok := g.index[id]
	return pos, ok
}

// RebuildIndex rescans the sequence and replaces the id index. On an id
// collision it returns a *DuplicateIDError and leaves the previous index
// in place. This is the only point where duplicate ids are enforced, so
// every structural mutator routes through it.
func (g *Graph) RebuildIndex() error {
	fresh := make(map[string]int, len(g.nodes))
	for pos, n := range g.nodes {
		if n.ID == "" {
			continue
		}
		if _, exists := fresh[n.ID]; exists {
			return &DuplicateIDError{ID: n.ID}
		}
		fresh[n.ID] = pos
	}
	g.index = fresh
	return nil
}

// InsertNode places n at pos, shifting later nodes right. pos may equal
// Len to append. The insert is atomic: if the index rebuild rejects a
// duplicate id the sequence is restored and the old index survives.
func (g *Graph) InsertNode(pos int, n *Node) error {
	if pos < 0 || pos > len(g.nodes) {
		return ErrNodeNotFound
	}
	g.nodes = append(g.nodes, nil)
	copy(g.nodes[pos+1:], g.nodes[pos:])
	g.nodes[pos] = n
	if err := g.RebuildIndex(); err != nil {
		g.nodes = append(g.nodes[:pos], g.nodes[pos+1:]...)
		return err
	}
	return nil
}

// RemoveNodeAt removes and returns the node at pos.
func (g *Graph) RemoveNodeAt(pos int) (*Node, error) {
	if pos < 0 || pos >= len(g.nodes) {
		return nil, ErrNodeNotFound
	}
	n := g.nodes[pos]
	g.nodes = append(g.nodes[:pos], g.nodes[pos+1:]...)
	// Removal cannot introduce a collision; the rebuild keeps positions
	// honest.
	if err := g.RebuildIndex(); err != nil {
		return nil, err
	}
	return n, nil
}

// MoveNode relocates the node at from so that it ends up at position to.
func (g *Graph) MoveNode(from, to int) error {
	if from < 0 || from >= len(g.nodes) || to < 0 || to >= len(g.nodes) {
		return ErrNodeNotFound
	}
	if from == to {
		return nil
	}
	n := g.nodes[from]
	rest := append(g.nodes[:from], g.nodes[from+1:]...)
	rest = append(rest, nil)
	copy(rest[to+1:], rest[to:])
	rest[to] = n
	g.nodes = rest
	return g.RebuildIndex()
}
