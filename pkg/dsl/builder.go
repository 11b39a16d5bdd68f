package dsl

import (
	"fmt"

	"github.com/tiberius-s/fireside/pkg/domain"
)

// Builder manages deck construction. Nodes keep their insertion order,
// which is the deck's sequential traversal order.
type Builder struct {
	meta  domain.Metadata
	nodes []*NodeBuilder
	byID  map[string]*NodeBuilder
}

// New creates a new deck builder.
func New(title string) *Builder {
	return &Builder{
		meta: domain.Metadata{Title: title},
		byID: make(map[string]*NodeBuilder),
	}
}

// Author sets the deck author.
func (b *Builder) Author(author string) *Builder {
	b.meta.Author = author
	return b
}

// Version sets the deck version string.
func (b *Builder) Version(version string) *Builder {
	b.meta.Version = version
	return b
}

// Theme sets the deck theme.
func (b *Builder) Theme(theme string) *Builder {
	b.meta.Theme = theme
	return b
}

// Node appends a new node to the deck. Calling Node again with the same
// non-empty id returns the existing builder.
func (b *Builder) Node(id string) *NodeBuilder {
	if id != "" {
		if nb, ok := b.byID[id]; ok {
			return nb
		}
	}
	nb := &NodeBuilder{node: domain.Node{ID: id}}
	b.nodes = append(b.nodes, nb)
	if id != "" {
		b.byID[id] = nb
	}
	return nb
}

// Build compiles the deck into a graph. Duplicate ids surface here.
func (b *Builder) Build() (*domain.Graph, error) {
	nodes := make([]*domain.Node, len(b.nodes))
	for i, nb := range b.nodes {
		n := nb.node.Clone()
		nodes[i] = &n
	}

	g, err := domain.NewGraph(b.meta, nodes)
	if err != nil {
		return nil, fmt.Errorf("build deck: %w", err)
	}
	return g, nil
}
