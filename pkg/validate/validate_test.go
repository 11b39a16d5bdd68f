package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiberius-s/fireside/pkg/domain"
	"github.com/tiberius-s/fireside/pkg/validate"
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

func errorsOnly(ds []validate.Diagnostic) []validate.Diagnostic {
	var out []validate.Diagnostic
	for _, d := range ds {
		if d.Severity == validate.SeverityError {
			out = append(out, d)
		}
	}
	return out
}

func TestValidate_CleanLinearDeck(t *testing.T) {
	g := mustGraph(t, node("a"), node("b"), node("c"), node("d"), node("e"))
	ds := validate.Validate(g)
	assert.Empty(t, ds)
	assert.False(t, validate.Errors(ds))
}

func TestValidate_NilGraph(t *testing.T) {
	ds := validate.Validate(nil)
	require.Len(t, ds, 1)
	assert.Equal(t, validate.SeverityError, ds[0].Severity)
}

func TestValidate_DanglingBranchTarget(t *testing.T) {
	decision := node("decision")
	decision.Traversal = &domain.Traversal{BranchPoint: &domain.BranchPoint{
		Options: []domain.BranchOption{{Key: 'a', Target: "nowhere"}},
	}}
	g := mustGraph(t, decision, node("end"))

	errs := errorsOnly(validate.Validate(g))
	require.Len(t, errs, 1)
	assert.Equal(t, "decision", errs[0].NodeID)
	assert.Contains(t, errs[0].Message, "nowhere")
}

func TestValidate_DanglingNextAndAfter(t *testing.T) {
	a := node("a")
	a.Traversal = &domain.Traversal{Next: "ghost"}
	b := node("b")
	b.Traversal = &domain.Traversal{After: "phantom"}
	g := mustGraph(t, a, b)

	errs := errorsOnly(validate.Validate(g))
	require.Len(t, errs, 2, "all findings are collected in one pass")
	assert.Contains(t, errs[0].Message, "ghost")
	assert.Contains(t, errs[1].Message, "phantom")
}

func TestValidate_EmptyBranchPoint(t *testing.T) {
	d := node("decision")
	d.Traversal = &domain.Traversal{BranchPoint: &domain.BranchPoint{Prompt: "?"}}
	g := mustGraph(t, d, node("end"))

	errs := errorsOnly(validate.Validate(g))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "no options")
}

func TestValidate_UnreachableIsWarning(t *testing.T) {
	// a jumps straight to c, so b is never reached.
	a := node("a")
	a.Traversal = &domain.Traversal{Next: "c"}
	g := mustGraph(t, a, node("b"), node("c"))

	ds := validate.Validate(g)
	require.Len(t, ds, 1)
	assert.Equal(t, validate.SeverityWarning, ds[0].Severity)
	assert.Equal(t, "b", ds[0].NodeID)
	assert.False(t, validate.Errors(ds), "unreachable content is legal")
}

func TestValidate_BranchTargetsCountAsReachable(t *testing.T) {
	d := node("decision")
	d.Traversal = &domain.Traversal{
		Next: "end",
		BranchPoint: &domain.BranchPoint{
			Options: []domain.BranchOption{{Key: 'x', Target: "aside"}},
		},
	}
	aside := node("aside")
	aside.Traversal = &domain.Traversal{After: "end"}
	g := mustGraph(t, d, aside, node("end"))

	assert.Empty(t, validate.Validate(g))
}
