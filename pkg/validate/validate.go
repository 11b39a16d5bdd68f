// Package validate inspects a deck graph for structural integrity and
// reports diagnostics without mutating anything. Diagnostics are data,
// not errors: the caller decides severity policy, e.g. block a save on
// errors but only warn interactively.
package validate

import (
	"fmt"

	"github.com/tiberius-s/fireside/pkg/domain"
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one finding about the graph. NodeID is empty for
// deck-level findings.
type Diagnostic struct {
	Severity Severity
	NodeID   string
	Message  string
}

func (d Diagnostic) String() string {
	if d.NodeID == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: node %q: %s", d.Severity, d.NodeID, d.Message)
}

// Errors reports whether any diagnostic in ds has error severity.
func Errors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate collects every diagnostic in one pass; it never early-returns
// on the first finding. Checks, in order of severity: empty deck,
// duplicate ids (defense in depth beyond the index rebuild), dangling
// next/after/branch targets, branch points with zero options, and nodes
// unreachable from the first node. Unreachable content is legal, e.g.
// intentionally orphaned draft material, so it is a warning only.
func Validate(g *domain.Graph) []Diagnostic {
	var ds []Diagnostic

	if g == nil || g.Len() == 0 {
		return append(ds, Diagnostic{Severity: SeverityError, Message: "deck has no nodes"})
	}

	nodes := g.Nodes()

	// Duplicate ids. The graph index cannot hold duplicates, so scan the
	// raw sequence instead of trusting it.
	seen := make(map[string]bool, len(nodes))
	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			continue
		}
		if seen[n.ID] {
			ds = append(ds, Diagnostic{
				Severity: SeverityError,
				NodeID:   n.ID,
				Message:  "duplicate node id",
			})
		}
		seen[n.ID] = true
		ids[n.ID] = true
	}

	// Dangling references and malformed branch points.
	for _, n := range nodes {
		t := n.Traversal
		if t == nil {
			continue
		}
		if t.Next != "" && !ids[t.Next] {
			ds = append(ds, dangling(n, "next", t.Next))
		}
		if t.After != "" && !ids[t.After] {
			ds = append(ds, dangling(n, "after", t.After))
		}
		if t.BranchPoint != nil {
			if len(t.BranchPoint.Options) == 0 {
				ds = append(ds, Diagnostic{
					Severity: SeverityError,
					NodeID:   n.ID,
					Message:  "branch point has no options",
				})
			}
			for _, opt := range t.BranchPoint.Options {
				if !ids[opt.Target] {
					ds = append(ds, dangling(n, fmt.Sprintf("branch option %q", opt.Key), opt.Target))
				}
			}
		}
	}

	for _, pos := range unreachable(g) {
		ds = append(ds, Diagnostic{
			Severity: SeverityWarning,
			NodeID:   nodes[pos].ID,
			Message:  fmt.Sprintf("node at position %d is unreachable from the first node", pos),
		})
	}

	return ds
}

func dangling(n *domain.Node, field, target string) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		NodeID:   n.ID,
		Message:  fmt.Sprintf("%s references nonexistent node %q", field, target),
	}
}

// unreachable walks from position 0 following the same successor rules as
// Advance (next, else after, else the next sequential position) plus every
// branch target, and returns the positions never visited. Dangling targets
// are simply skipped here; they are already reported as errors above.
func unreachable(g *domain.Graph) []int {
	visited := make([]bool, g.Len())
	queue := []int{0}
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		if pos < 0 || pos >= g.Len() || visited[pos] {
			continue
		}
		visited[pos] = true

		for _, next := range successors(g, pos) {
			queue = append(queue, next)
		}
	}

	var out []int
	for pos, ok := range visited {
		if !ok {
			out = append(out, pos)
		}
	}
	return out
}

func successors(g *domain.Graph, pos int) []int {
	var out []int
	t := g.NodeAt(pos).Traversal

	// The advance edge mirrors the traverser: next wins over after, and a
	// node with neither flows into its sequential neighbor.
	switch {
	case t != nil && t.Next != "":
		if next, ok := g.IndexOf(t.Next); ok {
			out = append(out, next)
		}
	case t != nil && t.After != "":
		if next, ok := g.IndexOf(t.After); ok {
			out = append(out, next)
		}
	default:
		if pos+1 < g.Len() {
			out = append(out, pos+1)
		}
	}

	if t != nil && t.BranchPoint != nil {
		for _, opt := range t.BranchPoint.Options {
			if next, ok := g.IndexOf(opt.Target); ok {
				out = append(out, next)
			}
		}
	}
	return out
}
