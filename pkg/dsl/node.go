package dsl

import "github.com/tiberius-s/fireside/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node domain.Node
}

// Heading appends a heading block.
func (n *NodeBuilder) Heading(level int, text string) *NodeBuilder {
	n.node.Blocks = append(n.node.Blocks, domain.Block{
		Kind:  domain.BlockHeading,
		Level: level,
		Text:  text,
	})
	return n
}

// Text appends a text block.
func (n *NodeBuilder) Text(text string) *NodeBuilder {
	n.node.Blocks = append(n.node.Blocks, domain.Block{
		Kind: domain.BlockText,
		Text: text,
	})
	return n
}

// Code appends a code block.
func (n *NodeBuilder) Code(language, source string) *NodeBuilder {
	n.node.Blocks = append(n.node.Blocks, domain.Block{
		Kind:     domain.BlockCode,
		Language: language,
		Source:   source,
	})
	return n
}

// List appends a list block.
func (n *NodeBuilder) List(ordered bool, items ...string) *NodeBuilder {
	n.node.Blocks = append(n.node.Blocks, domain.Block{
		Kind:    domain.BlockList,
		Ordered: ordered,
		Items:   items,
	})
	return n
}

// Image appends an image block.
func (n *NodeBuilder) Image(path, alt string) *NodeBuilder {
	n.node.Blocks = append(n.node.Blocks, domain.Block{
		Kind: domain.BlockImage,
		Path: path,
		Alt:  alt,
	})
	return n
}

// Divider appends a divider block.
func (n *NodeBuilder) Divider() *NodeBuilder {
	n.node.Blocks = append(n.node.Blocks, domain.Block{Kind: domain.BlockDivider})
	return n
}

// Block appends an arbitrary block, for container and extension content
// the shorthand methods don't cover.
func (n *NodeBuilder) Block(b domain.Block) *NodeBuilder {
	n.node.Blocks = append(n.node.Blocks, b)
	return n
}

// Notes sets the speaker notes.
func (n *NodeBuilder) Notes(notes string) *NodeBuilder {
	n.node.SpeakerNotes = notes
	return n
}

// Layout sets the layout hint.
func (n *NodeBuilder) Layout(layout string) *NodeBuilder {
	n.node.Layout = layout
	return n
}

// Transition sets the transition hint.
func (n *NodeBuilder) Transition(transition string) *NodeBuilder {
	n.node.Transition = transition
	return n
}

// Next sets the node's next override.
func (n *NodeBuilder) Next(target string) *NodeBuilder {
	n.traversal().Next = target
	return n
}

// After sets the rejoin target followed once the branch content runs out.
func (n *NodeBuilder) After(target string) *NodeBuilder {
	n.traversal().After = target
	return n
}

// Ask turns the node into a branch point with the given prompt.
func (n *NodeBuilder) Ask(prompt string) *NodeBuilder {
	n.branchPoint().Prompt = prompt
	return n
}

// Option adds a selectable branch option.
func (n *NodeBuilder) Option(key rune, label, target string) *NodeBuilder {
	bp := n.branchPoint()
	bp.Options = append(bp.Options, domain.BranchOption{
		Key:    key,
		Label:  label,
		Target: target,
	})
	return n
}

// Build returns a copy of the underlying node.
func (n *NodeBuilder) Build() domain.Node {
	return n.node.Clone()
}

func (n *NodeBuilder) traversal() *domain.Traversal {
	if n.node.Traversal == nil {
		n.node.Traversal = &domain.Traversal{}
	}
	return n.node.Traversal
}

func (n *NodeBuilder) branchPoint() *domain.BranchPoint {
	t := n.traversal()
	if t.BranchPoint == nil {
		t.BranchPoint = &domain.BranchPoint{}
	}
	return t.BranchPoint
}
