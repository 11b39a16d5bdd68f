package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiberius-s/fireside/pkg/command"
	"github.com/tiberius-s/fireside/pkg/domain"
)

func mustGraph(t *testing.T, ids ...string) *domain.Graph {
	t.Helper()
	nodes := make([]*domain.Node, len(ids))
	for i, id := range ids {
		nodes[i] = &domain.Node{ID: id, Blocks: []domain.Block{{Kind: domain.BlockText, Text: "about " + id}}}
	}
	g, err := domain.NewGraph(domain.Metadata{}, nodes)
	require.NoError(t, err)
	return g
}

func ids(g *domain.Graph) []string {
	out := make([]string, 0, g.Len())
	for _, n := range g.Nodes() {
		out = append(out, n.ID)
	}
	return out
}

func TestAddNode(t *testing.T) {
	g := mustGraph(t, "a", "c")

	inv, err := command.Apply(g, command.AddNode{At: 1, Node: domain.Node{ID: "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(g))

	pos, ok := g.IndexOf("c")
	assert.True(t, ok)
	assert.Equal(t, 2, pos)

	t.Run("Inverse Removes", func(t *testing.T) {
		_, err := command.Apply(g, inv)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, ids(g))
	})

	t.Run("Duplicate ID Rejected Atomically", func(t *testing.T) {
		_, err := command.Apply(g, command.AddNode{At: 0, Node: domain.Node{ID: "c"}})
		var dup *domain.DuplicateIDError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "c", dup.ID)
		assert.Equal(t, []string{"a", "c"}, ids(g), "failed insert must not mutate")
	})

	t.Run("Out Of Range", func(t *testing.T) {
		_, err := command.Apply(g, command.AddNode{At: 9, Node: domain.Node{}})
		assert.Error(t, err)
	})
}

func TestRemoveNode(t *testing.T) {
	g := mustGraph(t, "a", "b", "c")

	inv, err := command.Apply(g, command.RemoveNode{Ref: command.ByID("b")})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids(g))

	t.Run("Unknown ID", func(t *testing.T) {
		_, err := command.Apply(g, command.RemoveNode{Ref: command.ByID("ghost")})
		assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	})

	t.Run("Inverse Restores Position And Content", func(t *testing.T) {
		_, err := command.Apply(g, inv)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, ids(g))

		restored, ok := g.NodeByID("b")
		require.True(t, ok)
		assert.Equal(t, "about b", restored.Blocks[0].Text)
	})
}

func TestMoveNode(t *testing.T) {
	g := mustGraph(t, "a", "b", "c", "d")

	inv, err := command.Apply(g, command.MoveNode{Ref: command.ByID("a"), To: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(g))

	_, err = command.Apply(g, inv)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(g))
}

func TestUpdateNodeContent(t *testing.T) {
	g := mustGraph(t, "a")

	fresh := []domain.Block{
		{Kind: domain.BlockHeading, Level: 1, Text: "Rewritten"},
		{Kind: domain.BlockDivider},
	}
	inv, err := command.Apply(g, command.UpdateNodeContent{Ref: command.ByID("a"), Blocks: fresh})
	require.NoError(t, err)

	n, _ := g.NodeByID("a")
	require.Len(t, n.Blocks, 2)
	assert.Equal(t, domain.BlockHeading, n.Blocks[0].Kind)

	_, err = command.Apply(g, inv)
	require.NoError(t, err)
	n, _ = g.NodeByID("a")
	require.Len(t, n.Blocks, 1)
	assert.Equal(t, "about a", n.Blocks[0].Text)
}

func TestUpdateBlock_NestedPath(t *testing.T) {
	g := mustGraph(t, "a")
	n, _ := g.NodeByID("a")
	n.Blocks = []domain.Block{
		{Kind: domain.BlockContainer, Children: []domain.Block{
			{Kind: domain.BlockText, Text: "inner"},
		}},
	}

	inv, err := command.Apply(g, command.UpdateBlock{
		Ref:   command.ByID("a"),
		Path:  []int{0, 0},
		Block: domain.Block{Kind: domain.BlockText, Text: "edited"},
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", n.Blocks[0].Children[0].Text)

	_, err = command.Apply(g, inv)
	require.NoError(t, err)
	assert.Equal(t, "inner", n.Blocks[0].Children[0].Text)

	t.Run("Bad Path", func(t *testing.T) {
		_, err := command.Apply(g, command.UpdateBlock{Ref: command.ByID("a"), Path: []int{0, 5}, Block: domain.Block{}})
		assert.Error(t, err)
		_, err = command.Apply(g, command.UpdateBlock{Ref: command.ByID("a"), Path: []int{0, 0, 0}, Block: domain.Block{}})
		assert.Error(t, err, "descending into a non-container must fail")
	})
}

func TestMoveBlock(t *testing.T) {
	g := mustGraph(t, "a")
	n, _ := g.NodeByID("a")
	n.Blocks = []domain.Block{
		{Kind: domain.BlockText, Text: "one"},
		{Kind: domain.BlockText, Text: "two"},
		{Kind: domain.BlockText, Text: "three"},
	}

	inv, err := command.Apply(g, command.MoveBlock{Ref: command.ByID("a"), From: 0, To: 2})
	require.NoError(t, err)
	assert.Equal(t, "two", n.Blocks[0].Text)
	assert.Equal(t, "one", n.Blocks[2].Text)

	_, err = command.Apply(g, inv)
	require.NoError(t, err)
	assert.Equal(t, "one", n.Blocks[0].Text)
}

func TestTraversalNextCommands(t *testing.T) {
	g := mustGraph(t, "a", "b")

	inv, err := command.Apply(g, command.SetTraversalNext{Ref: command.ByID("a"), Target: "b"})
	require.NoError(t, err)
	n, _ := g.NodeByID("a")
	assert.Equal(t, "b", n.Traversal.Next)

	// First set on a bare node inverts to a clear.
	_, ok := inv.(command.ClearTraversalNext)
	assert.True(t, ok)

	inv2, err := command.Apply(g, command.SetTraversalNext{Ref: command.ByID("a"), Target: "a"})
	require.NoError(t, err)
	set, ok := inv2.(command.SetTraversalNext)
	require.True(t, ok)
	assert.Equal(t, "b", set.Target, "overwrite inverts to restoring the old target")

	_, err = command.Apply(g, inv2)
	require.NoError(t, err)
	assert.Equal(t, "b", n.Traversal.Next)

	_, err = command.Apply(g, inv)
	require.NoError(t, err)
	assert.Nil(t, n.Traversal, "clearing the only override drops the record")

	t.Run("Clear Without Override", func(t *testing.T) {
		_, err := command.Apply(g, command.ClearTraversalNext{Ref: command.ByID("b")})
		assert.Error(t, err)
	})
}

func TestBranchOptionCommands(t *testing.T) {
	g := mustGraph(t, "decision", "left", "right")

	addA := command.AddBranchOption{
		Ref:    command.ByID("decision"),
		Option: domain.BranchOption{Key: 'a', Label: "Left", Target: "left"},
		Prompt: "Which way?",
		At:     99, // clamp to append
	}
	invA, err := command.Apply(g, addA)
	require.NoError(t, err)

	n, _ := g.NodeByID("decision")
	require.NotNil(t, n.Traversal.BranchPoint)
	assert.Equal(t, "Which way?", n.Traversal.BranchPoint.Prompt)

	addB := command.AddBranchOption{
		Ref:    command.ByID("decision"),
		Option: domain.BranchOption{Key: 'b', Label: "Right", Target: "right"},
		At:     99,
	}
	_, err = command.Apply(g, addB)
	require.NoError(t, err)
	require.Len(t, n.Traversal.BranchPoint.Options, 2)

	t.Run("Duplicate Key", func(t *testing.T) {
		_, err := command.Apply(g, addB)
		assert.Error(t, err)
	})

	t.Run("Remove Restores Order On Undo", func(t *testing.T) {
		inv, err := command.Apply(g, command.RemoveBranchOption{Ref: command.ByID("decision"), Key: 'a'})
		require.NoError(t, err)
		assert.Equal(t, 'b', n.Traversal.BranchPoint.Options[0].Key)

		_, err = command.Apply(g, inv)
		require.NoError(t, err)
		require.Len(t, n.Traversal.BranchPoint.Options, 2)
		assert.Equal(t, 'a', n.Traversal.BranchPoint.Options[0].Key, "restored at original index")
	})

	t.Run("Removing Last Option Drops Branch Point", func(t *testing.T) {
		_, err := command.Apply(g, command.RemoveBranchOption{Ref: command.ByID("decision"), Key: 'b'})
		require.NoError(t, err)
		_, err = command.Apply(g, invA)
		require.NoError(t, err)
		assert.Nil(t, n.Traversal, "empty traversal records are dropped")
	})

	t.Run("Remove Unknown Key", func(t *testing.T) {
		_, err := command.Apply(g, command.RemoveBranchOption{Ref: command.ByID("left"), Key: 'z'})
		assert.Error(t, err)
	})
}
