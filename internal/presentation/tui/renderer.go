// Package tui renders deck nodes for the terminal. Blocks are lowered
// to markdown and styled with glamour.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/tiberius-s/fireside/pkg/domain"
)

// Renderer turns nodes into styled terminal output.
type Renderer struct {
	term *glamour.TermRenderer
}

// NewRenderer creates a renderer that adapts to the terminal background.
func NewRenderer() (*Renderer, error) {
	term, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return nil, fmt.Errorf("init glamour: %w", err)
	}
	return &Renderer{term: term}, nil
}

// RenderNode renders one node with a position footer.
func (r *Renderer) RenderNode(node *domain.Node, pos, total int) (string, error) {
	md := Markdown(node)
	out, err := r.term.Render(md)
	if err != nil {
		return "", fmt.Errorf("render node: %w", err)
	}

	footer := fmt.Sprintf("  %d / %d", pos+1, total)
	if node.ID != "" {
		footer += "  [" + node.ID + "]"
	}
	return out + footer + "\n", nil
}

// Markdown lowers a node's blocks to a markdown document. Exposed so the
// lowering stays testable without ANSI styling in the way.
func Markdown(node *domain.Node) string {
	var sb strings.Builder
	for _, b := range node.Blocks {
		writeBlock(&sb, b)
	}
	if node.Traversal != nil && node.Traversal.BranchPoint != nil {
		bp := node.Traversal.BranchPoint
		sb.WriteString("\n**" + bp.Prompt + "**\n\n")
		for _, opt := range bp.Options {
			fmt.Fprintf(&sb, "- `%s` %s\n", string(opt.Key), opt.Label)
		}
	}
	return sb.String()
}

func writeBlock(sb *strings.Builder, b domain.Block) {
	switch b.Kind {
	case domain.BlockHeading:
		level := b.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		sb.WriteString(strings.Repeat("#", level) + " " + b.Text + "\n\n")
	case domain.BlockText:
		sb.WriteString(b.Text + "\n\n")
	case domain.BlockCode:
		sb.WriteString("```" + b.Language + "\n")
		sb.WriteString(b.Source)
		if !strings.HasSuffix(b.Source, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("```\n\n")
	case domain.BlockList:
		for i, item := range b.Items {
			if b.Ordered {
				fmt.Fprintf(sb, "%d. %s\n", i+1, item)
			} else {
				sb.WriteString("- " + item + "\n")
			}
		}
		sb.WriteString("\n")
	case domain.BlockImage:
		alt := b.Alt
		if alt == "" {
			alt = b.Path
		}
		fmt.Fprintf(sb, "![%s](%s)\n\n", alt, b.Path)
	case domain.BlockDivider:
		sb.WriteString("---\n\n")
	case domain.BlockContainer:
		for _, child := range b.Children {
			writeBlock(sb, child)
		}
	case domain.BlockExtension:
		// Unknown content renders its fallback, or a placeholder note.
		if b.Fallback != nil {
			writeBlock(sb, *b.Fallback)
		} else {
			fmt.Fprintf(sb, "*[%s content not supported in this view]*\n\n", b.Type)
		}
	}
}
