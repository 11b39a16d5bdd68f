package domain

// BlockKind discriminates the content block variants.
type BlockKind string

// Block kind constants define the closed set of content variants.
// Every consumer (validator, command engine, renderer) switches
// exhaustively on these, so adding a kind is a compile-time checklist.
const (
	BlockHeading   BlockKind = "heading"
	BlockText      BlockKind = "text"
	BlockCode      BlockKind = "code"
	BlockList      BlockKind = "list"
	BlockImage     BlockKind = "image"
	BlockDivider   BlockKind = "divider"
	BlockContainer BlockKind = "container"
	BlockExtension BlockKind = "extension"
)

// KnownBlockKind reports whether k is one of the built-in variants.
func KnownBlockKind(k BlockKind) bool {
	switch k {
	case BlockHeading, BlockText, BlockCode, BlockList, BlockImage,
		BlockDivider, BlockContainer, BlockExtension:
		return true
	}
	return false
}

// Block is one typed unit of renderable material inside a node.
// Kind selects the variant; only the fields of that variant are meaningful.
// The core never interprets block contents beyond structure: rendering
// semantics live in the presentation layer.
type Block struct {
	Kind BlockKind

	// Heading
	Level int

	// Heading / Text share the text payload.
	Text string

	// Code
	Language       string
	Source         string
	HighlightLines []int

	// List
	Ordered bool
	Items   []string

	// Image
	Path string
	Alt  string

	// Container
	Style    string
	Children []Block

	// Extension carries an opaque type tag and payload. The core's only
	// obligation is to preserve both untouched and hand renderers the
	// Fallback when the type tag is not understood.
	Type     string
	Payload  map[string]any
	Fallback *Block
}

// Clone returns a deep copy of the block, including nested children,
// fallbacks and the extension payload. Inverse commands rely on this to
// capture state that later edits cannot reach.
func (b Block) Clone() Block {
	out := b
	if b.HighlightLines != nil {
		out.HighlightLines = append([]int(nil), b.HighlightLines...)
	}
	if b.Items != nil {
		out.Items = append([]string(nil), b.Items...)
	}
	if b.Children != nil {
		out.Children = make([]Block, len(b.Children))
		for i, c := range b.Children {
			out.Children[i] = c.Clone()
		}
	}
	if b.Payload != nil {
		out.Payload = clonePayload(b.Payload)
	}
	if b.Fallback != nil {
		fb := b.Fallback.Clone()
		out.Fallback = &fb
	}
	return out
}

// clonePayload deep-copies the generic maps/slices produced by document
// decoding. Scalar leaves are copied by assignment.
func clonePayload(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return clonePayload(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return t
	}
}
