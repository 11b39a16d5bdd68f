package schema

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/tiberius-s/fireside/pkg/domain"
)

// Parse decodes a deck document into a graph with a consistent index.
func Parse(data []byte) (*domain.Graph, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, loadErr(err, "malformed document")
	}
	return FromDocument(&doc)
}

// ParseReader decodes a deck document from r.
func ParseReader(r io.Reader) (*domain.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, loadErr(err, "reading document")
	}
	return Parse(data)
}

// FromDocument converts an already-unmarshaled document into a graph.
func FromDocument(doc *Document) (*domain.Graph, error) {
	nodes := make([]*domain.Node, 0, len(doc.Nodes))
	for i, nd := range doc.Nodes {
		node, err := decodeNode(nd)
		if err != nil {
			return nil, loadErr(err, "node %s", nodeLabel(i, nd.ID))
		}
		nodes = append(nodes, node)
	}

	meta := domain.Metadata{
		Title:   doc.Title,
		Author:  doc.Author,
		Version: doc.Version,
		Theme:   doc.Theme,
	}
	g, err := domain.NewGraph(meta, nodes)
	if err != nil {
		return nil, loadErr(err, "building graph")
	}
	return g, nil
}

func nodeLabel(pos int, id string) string {
	if id != "" {
		return fmt.Sprintf("%q", id)
	}
	return fmt.Sprintf("at position %d", pos)
}

func decodeNode(nd NodeDoc) (*domain.Node, error) {
	node := &domain.Node{
		ID:           nd.ID,
		Layout:       nd.Layout,
		Transition:   nd.Transition,
		SpeakerNotes: nd.SpeakerNotes,
	}

	for i, raw := range nd.Blocks {
		b, err := decodeBlock(map[string]any(raw))
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		node.Blocks = append(node.Blocks, b)
	}

	t := domain.Traversal{Next: nd.Next, After: nd.After}
	if nd.BranchPoint != nil {
		bp, err := decodeBranchPoint(nd.BranchPoint)
		if err != nil {
			return nil, err
		}
		t.BranchPoint = bp
	}
	if !t.Empty() {
		node.Traversal = &t
	}
	return node, nil
}

func decodeBranchPoint(doc *BranchPointDoc) (*domain.BranchPoint, error) {
	bp := &domain.BranchPoint{Prompt: doc.Prompt}
	for i, opt := range doc.Options {
		key, err := decodeKey(opt.Key)
		if err != nil {
			return nil, fmt.Errorf("branch option %d: %w", i, err)
		}
		if opt.Target == "" {
			return nil, fmt.Errorf("branch option %d: missing target", i)
		}
		if _, dup := bp.Option(key); dup {
			return nil, fmt.Errorf("branch option %d: duplicate key %q", i, key)
		}
		bp.Options = append(bp.Options, domain.BranchOption{
			Key:    key,
			Label:  opt.Label,
			Target: opt.Target,
		})
	}
	return bp, nil
}

// decodeKey enforces the single-character branch key contract.
func decodeKey(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("key %q must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func decodeBlock(raw map[string]any) (domain.Block, error) {
	kindVal, ok := raw["kind"]
	if !ok {
		return domain.Block{}, fmt.Errorf("missing kind")
	}
	kindStr, ok := kindVal.(string)
	if !ok {
		return domain.Block{}, fmt.Errorf("kind must be a string, got %T", kindVal)
	}
	kind := domain.BlockKind(kindStr)

	switch kind {
	case domain.BlockHeading:
		var d headingDoc
		if err := decodeInto(raw, &d); err != nil {
			return domain.Block{}, err
		}
		if d.Text == "" {
			return domain.Block{}, fmt.Errorf("heading: missing text")
		}
		level := d.Level
		if level == 0 {
			level = 1
		}
		return domain.Block{Kind: kind, Level: level, Text: d.Text}, nil

	case domain.BlockText:
		var d textDoc
		if err := decodeInto(raw, &d); err != nil {
			return domain.Block{}, err
		}
		return domain.Block{Kind: kind, Text: d.Text}, nil

	case domain.BlockCode:
		var d codeDoc
		if err := decodeInto(raw, &d); err != nil {
			return domain.Block{}, err
		}
		return domain.Block{Kind: kind, Language: d.Language, Source: d.Source, HighlightLines: d.HighlightLines}, nil

	case domain.BlockList:
		var d listDoc
		if err := decodeInto(raw, &d); err != nil {
			return domain.Block{}, err
		}
		return domain.Block{Kind: kind, Ordered: d.Ordered, Items: d.Items}, nil

	case domain.BlockImage:
		var d imageDoc
		if err := decodeInto(raw, &d); err != nil {
			return domain.Block{}, err
		}
		if d.Path == "" {
			return domain.Block{}, fmt.Errorf("image: missing path")
		}
		return domain.Block{Kind: kind, Path: d.Path, Alt: d.Alt}, nil

	case domain.BlockDivider:
		return domain.Block{Kind: kind}, nil

	case domain.BlockContainer:
		var d containerDoc
		if err := decodeInto(raw, &d); err != nil {
			return domain.Block{}, err
		}
		b := domain.Block{Kind: kind, Style: d.Style}
		for i, child := range d.Children {
			cb, err := decodeBlock(child)
			if err != nil {
				return domain.Block{}, fmt.Errorf("container child %d: %w", i, err)
			}
			b.Children = append(b.Children, cb)
		}
		return b, nil

	case domain.BlockExtension:
		var d extensionDoc
		if err := decodeInto(raw, &d); err != nil {
			return domain.Block{}, err
		}
		if d.Type == "" {
			return domain.Block{}, fmt.Errorf("extension: missing type")
		}
		b := domain.Block{Kind: kind, Type: d.Type, Payload: d.Payload}
		if d.Fallback != nil {
			fb, err := decodeBlock(d.Fallback)
			if err != nil {
				return domain.Block{}, fmt.Errorf("extension fallback: %w", err)
			}
			b.Fallback = &fb
		}
		return b, nil

	default:
		return domain.Block{}, fmt.Errorf("unknown block kind %q", kindStr)
	}
}

// decodeInto maps a raw block object onto a per-kind payload struct. The
// kind discriminator and any vendor keys are ignored by design.
func decodeInto(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("decoding %v block: %w", raw["kind"], err)
	}
	return nil
}
