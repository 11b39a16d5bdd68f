package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tiberius-s/fireside/pkg/domain"
)

// Marshal serializes a graph back to the wire document form. This is the
// "save" collaborator: the core owns no persistence of its own.
func Marshal(g *domain.Graph) ([]byte, error) {
	doc, err := ToDocument(g)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// ToDocument converts a graph to its document representation.
func ToDocument(g *domain.Graph) (*Document, error) {
	doc := &Document{
		Title:   g.Meta.Title,
		Author:  g.Meta.Author,
		Version: g.Meta.Version,
		Theme:   g.Meta.Theme,
	}
	for i, n := range g.Nodes() {
		nd, err := encodeNode(n)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", nodeLabel(i, n.ID), err)
		}
		doc.Nodes = append(doc.Nodes, nd)
	}
	return doc, nil
}

func encodeNode(n *domain.Node) (NodeDoc, error) {
	nd := NodeDoc{
		ID:           n.ID,
		Layout:       n.Layout,
		Transition:   n.Transition,
		SpeakerNotes: n.SpeakerNotes,
	}
	if t := n.Traversal; t != nil {
		nd.Next = t.Next
		nd.After = t.After
		if t.BranchPoint != nil {
			bp := BranchPointDoc{Prompt: t.BranchPoint.Prompt}
			for _, opt := range t.BranchPoint.Options {
				bp.Options = append(bp.Options, BranchOptionDoc{
					Key:    string(opt.Key),
					Label:  opt.Label,
					Target: opt.Target,
				})
			}
			nd.BranchPoint = &bp
		}
	}
	for i, b := range n.Blocks {
		raw, err := encodeBlock(b)
		if err != nil {
			return NodeDoc{}, fmt.Errorf("block %d: %w", i, err)
		}
		nd.Blocks = append(nd.Blocks, raw)
	}
	return nd, nil
}

func encodeBlock(b domain.Block) (BlockDoc, error) {
	raw := BlockDoc{"kind": string(b.Kind)}

	switch b.Kind {
	case domain.BlockHeading:
		raw["text"] = b.Text
		if b.Level > 0 {
			raw["level"] = b.Level
		}

	case domain.BlockText:
		raw["text"] = b.Text

	case domain.BlockCode:
		raw["source"] = b.Source
		if b.Language != "" {
			raw["language"] = b.Language
		}
		if len(b.HighlightLines) > 0 {
			raw["highlight-lines"] = b.HighlightLines
		}

	case domain.BlockList:
		raw["items"] = b.Items
		if b.Ordered {
			raw["ordered"] = true
		}

	case domain.BlockImage:
		raw["path"] = b.Path
		if b.Alt != "" {
			raw["alt"] = b.Alt
		}

	case domain.BlockDivider:
		// Kind alone.

	case domain.BlockContainer:
		if b.Style != "" {
			raw["style"] = b.Style
		}
		children := make([]map[string]any, 0, len(b.Children))
		for i, c := range b.Children {
			cr, err := encodeBlock(c)
			if err != nil {
				return nil, fmt.Errorf("container child %d: %w", i, err)
			}
			children = append(children, cr)
		}
		raw["children"] = children

	case domain.BlockExtension:
		raw["type"] = b.Type
		if b.Payload != nil {
			raw["payload"] = b.Payload
		}
		if b.Fallback != nil {
			fr, err := encodeBlock(*b.Fallback)
			if err != nil {
				return nil, fmt.Errorf("extension fallback: %w", err)
			}
			raw["fallback"] = map[string]any(fr)
		}

	default:
		return nil, fmt.Errorf("unknown block kind %q", b.Kind)
	}
	return raw, nil
}
