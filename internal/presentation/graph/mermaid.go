// Package graph exports a deck's traversal structure as a Mermaid
// flowchart for docs and debugging.
package graph

import (
	"fmt"
	"strings"

	"github.com/tiberius-s/fireside/pkg/domain"
)

// Overlay contains dynamic session state to visualize on the graph.
type Overlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid produces Mermaid flowchart syntax for the deck.
// Shapes carry meaning:
//   - First node: ((Circle))
//   - Branch point: {Rhombus}
//   - Default: [Rectangle]
//
// Edge styles distinguish traversal rules: sequential flow and next
// overrides use solid arrows, after rejoins use dotted arrows, and
// branch options are labeled with their key.
func GenerateMermaid(g *domain.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for pos, node := range g.Nodes() {
		safeID := mermaidID(node, pos)

		opener, closer := "[", "]"
		switch {
		case pos == 0:
			opener, closer = "((", "))"
		case node.Traversal != nil && node.Traversal.BranchPoint != nil:
			opener, closer = "{", "}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, mermaidLabel(node, pos), closer)

		if node.Traversal != nil && node.Traversal.BranchPoint != nil {
			for _, opt := range node.Traversal.BranchPoint.Options {
				to, ok := targetID(g, opt.Target)
				if !ok {
					continue
				}
				fmt.Fprintf(&sb, "    %s -- \"%s: %s\" --> %s\n", safeID, string(opt.Key), escapeLabel(opt.Label), to)
			}
		}

		switch {
		case node.Traversal != nil && node.Traversal.Next != "":
			if to, ok := targetID(g, node.Traversal.Next); ok {
				fmt.Fprintf(&sb, "    %s --> %s\n", safeID, to)
			}
		case node.Traversal != nil && node.Traversal.After != "":
			if to, ok := targetID(g, node.Traversal.After); ok {
				fmt.Fprintf(&sb, "    %s -.-> %s\n", safeID, to)
			}
		case pos+1 < g.Len():
			fmt.Fprintf(&sb, "    %s --> %s\n", safeID, mermaidID(g.NodeAt(pos+1), pos+1))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if safeID != "" && !visitedSet[safeID] {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

// mermaidID returns a stable identifier, falling back to the position
// for anonymous nodes.
func mermaidID(node *domain.Node, pos int) string {
	if node.ID != "" {
		return sanitizeMermaidID(node.ID)
	}
	return fmt.Sprintf("n%d", pos)
}

func mermaidLabel(node *domain.Node, pos int) string {
	if node.ID != "" {
		return escapeLabel(node.ID)
	}
	return fmt.Sprintf("#%d", pos)
}

func targetID(g *domain.Graph, target string) (string, bool) {
	pos, ok := g.IndexOf(target)
	if !ok {
		// Dangling reference; the validator reports it, the chart
		// just omits the edge.
		return "", false
	}
	return mermaidID(g.NodeAt(pos), pos), true
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
