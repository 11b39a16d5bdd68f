package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiberius-s/fireside/pkg/domain"
)

func linearNodes(ids ...string) []*domain.Node {
	nodes := make([]*domain.Node, len(ids))
	for i, id := range ids {
		nodes[i] = &domain.Node{ID: id, Blocks: []domain.Block{{Kind: domain.BlockText, Text: id}}}
	}
	return nodes
}

func TestNewGraph(t *testing.T) {
	t.Run("Empty Sequence", func(t *testing.T) {
		_, err := domain.NewGraph(domain.Metadata{}, nil)
		assert.ErrorIs(t, err, domain.ErrEmptyDeck)
	})

	t.Run("Duplicate IDs", func(t *testing.T) {
		_, err := domain.NewGraph(domain.Metadata{}, linearNodes("intro", "intro"))
		var dup *domain.DuplicateIDError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "intro", dup.ID)
	})

	t.Run("Index Maps Every ID", func(t *testing.T) {
		g, err := domain.NewGraph(domain.Metadata{Title: "demo"}, linearNodes("a", "b", "c"))
		require.NoError(t, err)

		pos, ok := g.IndexOf("b")
		assert.True(t, ok)
		assert.Equal(t, 1, pos)

		n, ok := g.NodeByID("c")
		assert.True(t, ok)
		assert.Equal(t, "c", n.ID)
	})

	t.Run("Anonymous Nodes Skip Index", func(t *testing.T) {
		nodes := linearNodes("a", "", "")
		g, err := domain.NewGraph(domain.Metadata{}, nodes)
		require.NoError(t, err)
		assert.Equal(t, 3, g.Len())

		_, ok := g.IndexOf("")
		assert.False(t, ok)
	})
}

func TestGraph_InsertNode(t *testing.T) {
	g, err := domain.NewGraph(domain.Metadata{}, linearNodes("a", "c"))
	require.NoError(t, err)

	require.NoError(t, g.InsertNode(1, &domain.Node{ID: "b"}))
	assert.Equal(t, 3, g.Len())

	pos, _ := g.IndexOf("c")
	assert.Equal(t, 2, pos, "index must reflect the shifted position")

	t.Run("Duplicate Rolls Back", func(t *testing.T) {
		err := g.InsertNode(0, &domain.Node{ID: "b"})
		var dup *domain.DuplicateIDError
		require.ErrorAs(t, err, &dup)

		// Sequence and index unchanged.
		assert.Equal(t, 3, g.Len())
		pos, ok := g.IndexOf("b")
		assert.True(t, ok)
		assert.Equal(t, 1, pos)
	})

	t.Run("Out Of Range", func(t *testing.T) {
		assert.ErrorIs(t, g.InsertNode(99, &domain.Node{}), domain.ErrNodeNotFound)
	})
}

func TestGraph_RemoveNodeAt(t *testing.T) {
	g, err := domain.NewGraph(domain.Metadata{}, linearNodes("a", "b", "c"))
	require.NoError(t, err)

	removed, err := g.RemoveNodeAt(1)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.ID)

	_, ok := g.IndexOf("b")
	assert.False(t, ok)

	pos, _ := g.IndexOf("c")
	assert.Equal(t, 1, pos)

	_, err = g.RemoveNodeAt(5)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestGraph_MoveNode(t *testing.T) {
	g, err := domain.NewGraph(domain.Metadata{}, linearNodes("a", "b", "c", "d"))
	require.NoError(t, err)

	require.NoError(t, g.MoveNode(0, 2))

	want := []string{"b", "c", "a", "d"}
	for i, id := range want {
		assert.Equal(t, id, g.NodeAt(i).ID)
		pos, ok := g.IndexOf(id)
		assert.True(t, ok)
		assert.Equal(t, i, pos)
	}

	t.Run("Move Back", func(t *testing.T) {
		require.NoError(t, g.MoveNode(2, 0))
		assert.Equal(t, "a", g.NodeAt(0).ID)
		assert.Equal(t, "b", g.NodeAt(1).ID)
	})
}

func TestNode_Clone(t *testing.T) {
	fallback := domain.Block{Kind: domain.BlockText, Text: "plain"}
	n := domain.Node{
		ID: "x",
		Blocks: []domain.Block{
			{Kind: domain.BlockCode, Language: "go", Source: "main()", HighlightLines: []int{1, 2}},
			{Kind: domain.BlockContainer, Children: []domain.Block{{Kind: domain.BlockList, Items: []string{"one"}}}},
			{Kind: domain.BlockExtension, Type: "chart", Payload: map[string]any{"series": []any{1, 2}}, Fallback: &fallback},
		},
		Traversal: &domain.Traversal{
			Next:        "y",
			BranchPoint: &domain.BranchPoint{Prompt: "?", Options: []domain.BranchOption{{Key: 'a', Target: "y"}}},
		},
	}

	clone := n.Clone()

	// Mutating the clone must not leak into the original.
	clone.Blocks[0].HighlightLines[0] = 99
	clone.Blocks[1].Children[0].Items[0] = "two"
	clone.Blocks[2].Payload["series"].([]any)[0] = 99
	clone.Traversal.BranchPoint.Options[0].Target = "z"

	assert.Equal(t, 1, n.Blocks[0].HighlightLines[0])
	assert.Equal(t, "one", n.Blocks[1].Children[0].Items[0])
	assert.Equal(t, 1, n.Blocks[2].Payload["series"].([]any)[0])
	assert.Equal(t, "y", n.Traversal.BranchPoint.Options[0].Target)
}

func TestBranchPoint_Option(t *testing.T) {
	bp := domain.BranchPoint{Options: []domain.BranchOption{
		{Key: 'a', Target: "left"},
		{Key: 'b', Target: "right"},
	}}

	opt, ok := bp.Option('b')
	assert.True(t, ok)
	assert.Equal(t, "right", opt.Target)

	_, ok = bp.Option('z')
	assert.False(t, ok)
}
