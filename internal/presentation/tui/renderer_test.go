package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tiberius-s/fireside/pkg/domain"
)

func TestMarkdown_Blocks(t *testing.T) {
	node := &domain.Node{
		ID: "demo",
		Blocks: []domain.Block{
			{Kind: domain.BlockHeading, Level: 2, Text: "Title"},
			{Kind: domain.BlockText, Text: "Some prose."},
			{Kind: domain.BlockCode, Language: "go", Source: "fmt.Println(1)"},
			{Kind: domain.BlockList, Ordered: true, Items: []string{"one", "two"}},
			{Kind: domain.BlockImage, Path: "pic.png", Alt: "A picture"},
			{Kind: domain.BlockDivider},
		},
	}

	md := Markdown(node)
	assert.Contains(t, md, "## Title")
	assert.Contains(t, md, "Some prose.")
	assert.Contains(t, md, "```go\nfmt.Println(1)\n```")
	assert.Contains(t, md, "1. one\n2. two")
	assert.Contains(t, md, "![A picture](pic.png)")
	assert.Contains(t, md, "---")
}

func TestMarkdown_HeadingLevelClamped(t *testing.T) {
	node := &domain.Node{Blocks: []domain.Block{
		{Kind: domain.BlockHeading, Level: 9, Text: "Deep"},
		{Kind: domain.BlockHeading, Text: "Unset"},
	}}

	md := Markdown(node)
	assert.Contains(t, md, "###### Deep")
	assert.Contains(t, md, "# Unset")
}

func TestMarkdown_Container(t *testing.T) {
	node := &domain.Node{Blocks: []domain.Block{
		{Kind: domain.BlockContainer, Style: "columns", Children: []domain.Block{
			{Kind: domain.BlockText, Text: "left"},
			{Kind: domain.BlockText, Text: "right"},
		}},
	}}

	md := Markdown(node)
	assert.Contains(t, md, "left")
	assert.Contains(t, md, "right")
}

func TestMarkdown_ExtensionFallback(t *testing.T) {
	withFallback := &domain.Node{Blocks: []domain.Block{
		{Kind: domain.BlockExtension, Type: "chart", Fallback: &domain.Block{
			Kind: domain.BlockText, Text: "chart unavailable",
		}},
	}}
	assert.Contains(t, Markdown(withFallback), "chart unavailable")

	without := &domain.Node{Blocks: []domain.Block{
		{Kind: domain.BlockExtension, Type: "chart"},
	}}
	assert.Contains(t, Markdown(without), "chart content not supported")
}

func TestMarkdown_BranchPrompt(t *testing.T) {
	node := &domain.Node{
		Traversal: &domain.Traversal{
			BranchPoint: &domain.BranchPoint{
				Prompt: "Pick a track",
				Options: []domain.BranchOption{
					{Key: 'b', Label: "Beginner", Target: "basics"},
					{Key: 'd', Label: "Deep dive", Target: "advanced"},
				},
			},
		},
	}

	md := Markdown(node)
	assert.Contains(t, md, "**Pick a track**")
	assert.Contains(t, md, "- `b` Beginner")
	assert.Contains(t, md, "- `d` Deep dive")
}
