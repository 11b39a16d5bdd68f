package traversal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiberius-s/fireside/pkg/domain"
	"github.com/tiberius-s/fireside/pkg/traversal"
)

func mustGraph(t *testing.T, nodes ...*domain.Node) *domain.Graph {
	t.Helper()
	g, err := domain.NewGraph(domain.Metadata{}, nodes)
	require.NoError(t, err)
	return g
}

func node(id string) *domain.Node {
	return &domain.Node{ID: id}
}

func TestEngine_Advance_Linear(t *testing.T) {
	g := mustGraph(t, node("intro"), node("step1"), node("step2"), node("end"))
	eng := traversal.New(g)

	visited := []string{}
	for i := 0; i < 3; i++ {
		res := eng.Advance()
		require.True(t, res.Moved)
		visited = append(visited, eng.CurrentNode().ID)
	}
	assert.Equal(t, []string{"step1", "step2", "end"}, visited)

	// Fourth advance is the boundary: last node, no override.
	res := eng.Advance()
	assert.False(t, res.Moved)
	assert.Equal(t, "end", eng.CurrentNode().ID)
}

func TestEngine_Advance_NextOverride(t *testing.T) {
	skipped := node("skipped")
	start := node("start")
	start.Traversal = &domain.Traversal{Next: "target"}
	g := mustGraph(t, start, skipped, node("target"))

	eng := traversal.New(g)
	res := eng.Advance()
	assert.True(t, res.Moved)
	assert.Equal(t, "target", eng.CurrentNode().ID)
}

func TestEngine_Advance_AfterRejoin(t *testing.T) {
	// decision offers a/b; both paths rejoin at summary via After.
	decision := node("decision")
	decision.Traversal = &domain.Traversal{BranchPoint: &domain.BranchPoint{
		Prompt: "Pick a path",
		Options: []domain.BranchOption{
			{Key: 'a', Label: "Path A", Target: "pathA"},
			{Key: 'b', Label: "Path B", Target: "pathB"},
		},
	}}
	pathA := node("pathA")
	pathA.Traversal = &domain.Traversal{After: "summary"}
	pathB := node("pathB")
	pathB.Traversal = &domain.Traversal{After: "summary"}
	g := mustGraph(t, decision, pathA, pathB, node("summary"))

	eng := traversal.New(g)
	_, err := eng.Choose('a')
	require.NoError(t, err)
	assert.Equal(t, "pathA", eng.CurrentNode().ID)

	res := eng.Advance()
	assert.True(t, res.Moved)
	assert.Equal(t, "summary", eng.CurrentNode().ID)
}

func TestEngine_Advance_DanglingOverrideFallsThrough(t *testing.T) {
	start := node("start")
	start.Traversal = &domain.Traversal{Next: "ghost"}
	g := mustGraph(t, start, node("second"))

	eng := traversal.New(g)
	res := eng.Advance()
	assert.True(t, res.Moved)
	assert.Equal(t, "second", eng.CurrentNode().ID)
}

func TestEngine_Choose(t *testing.T) {
	decision := node("decision")
	decision.Traversal = &domain.Traversal{BranchPoint: &domain.BranchPoint{
		Options: []domain.BranchOption{{Key: 'x', Target: "left"}},
	}}
	g := mustGraph(t, decision, node("left"))
	eng := traversal.New(g)

	t.Run("Unknown Key", func(t *testing.T) {
		_, err := eng.Choose('q')
		var inv *domain.InvalidTraversalError
		require.ErrorAs(t, err, &inv)
		assert.Equal(t, "choose", inv.Op)
		assert.Equal(t, 0, eng.Current(), "failed choose must not move")
		assert.Equal(t, 0, eng.HistoryLen())
	})

	t.Run("No Branch Point", func(t *testing.T) {
		plain := traversal.New(mustGraph(t, node("only")))
		_, err := plain.Choose('x')
		var inv *domain.InvalidTraversalError
		assert.ErrorAs(t, err, &inv)
	})

	t.Run("Match", func(t *testing.T) {
		res, err := eng.Choose('x')
		require.NoError(t, err)
		assert.True(t, res.Moved)
		assert.Equal(t, "left", eng.CurrentNode().ID)
	})
}

func TestEngine_Jump(t *testing.T) {
	g := mustGraph(t, node("a"), node("b"), node("c"))
	eng := traversal.New(g)

	res, err := eng.Jump(2)
	require.NoError(t, err)
	assert.True(t, res.Moved)
	assert.Equal(t, 0, res.From)
	assert.Equal(t, 2, res.To)

	_, err = eng.Jump(3)
	var inv *domain.InvalidTraversalError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "jump", inv.Op)
	assert.Equal(t, 2, eng.Current())

	_, err = eng.Jump(-1)
	assert.ErrorAs(t, err, &inv)
}

func TestEngine_Back_ExactVisitOrder(t *testing.T) {
	// A branch was taken, so Back must retrace the visit order rather
	// than stepping back sequentially.
	decision := node("decision")
	decision.Traversal = &domain.Traversal{BranchPoint: &domain.BranchPoint{
		Options: []domain.BranchOption{{Key: 'b', Target: "far"}},
	}}
	g := mustGraph(t, decision, node("near"), node("far"), node("beyond"))
	eng := traversal.New(g)

	_, err := eng.Choose('b')
	require.NoError(t, err)
	res := eng.Advance()
	require.True(t, res.Moved)
	assert.Equal(t, "beyond", eng.CurrentNode().ID)

	assert.True(t, eng.Back().Moved)
	assert.Equal(t, "far", eng.CurrentNode().ID)
	assert.True(t, eng.Back().Moved)
	assert.Equal(t, "decision", eng.CurrentNode().ID)

	// History exhausted.
	assert.False(t, eng.Back().Moved)
}

func TestEngine_HistoryBound(t *testing.T) {
	g := mustGraph(t, node("a"), node("b"))
	eng := traversal.NewWithLimit(g, 4)

	for i := 0; i < 50; i++ {
		_, err := eng.Jump(i % 2)
		require.NoError(t, err)
	}
	assert.Equal(t, 4, eng.HistoryLen())

	// Oldest entries were evicted; the survivors replay most recent
	// first.
	for i := 0; i < 4; i++ {
		assert.True(t, eng.Back().Moved)
	}
	assert.False(t, eng.Back().Moved)
}

func TestEngine_Restore(t *testing.T) {
	g := mustGraph(t, node("a"), node("b"), node("c"))
	eng := traversal.New(g)

	eng.Restore(7, []int{0, 5, 2})
	assert.Equal(t, 2, eng.Current(), "current clamps to the last node")
	assert.Equal(t, []int{0, 2}, eng.History(), "out-of-range history entries are dropped")
}
