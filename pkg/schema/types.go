package schema

// Document is the root wire object of a deck.
type Document struct {
	Title   string    `yaml:"title,omitempty"`
	Author  string    `yaml:"author,omitempty"`
	Version string    `yaml:"version,omitempty"`
	Theme   string    `yaml:"theme,omitempty"`
	Nodes   []NodeDoc `yaml:"nodes"`
}

// NodeDoc is the wire form of one node. Blocks stay generic here; the
// tagged variants are decoded per kind.
type NodeDoc struct {
	ID           string          `yaml:"id,omitempty"`
	Layout       string          `yaml:"layout,omitempty"`
	Transition   string          `yaml:"transition,omitempty"`
	SpeakerNotes string          `yaml:"speaker-notes,omitempty"`
	Next         string          `yaml:"next,omitempty"`
	After        string          `yaml:"after,omitempty"`
	BranchPoint  *BranchPointDoc `yaml:"branch-point,omitempty"`
	Blocks       []BlockDoc      `yaml:"blocks,omitempty"`
}

// BlockDoc is a raw tagged block object, discriminated by its "kind" key.
type BlockDoc map[string]any

// BranchPointDoc is the wire form of a branch point.
type BranchPointDoc struct {
	Prompt  string            `yaml:"prompt,omitempty"`
	Options []BranchOptionDoc `yaml:"options"`
}

// BranchOptionDoc is one keyed branch choice. Key is a single-character
// string on the wire.
type BranchOptionDoc struct {
	Key    string `yaml:"key"`
	Label  string `yaml:"label,omitempty"`
	Target string `yaml:"target"`
}

// Per-kind block payloads, decoded out of a BlockDoc via mapstructure.

type headingDoc struct {
	Level int    `mapstructure:"level"`
	Text  string `mapstructure:"text"`
}

type textDoc struct {
	Text string `mapstructure:"text"`
}

type codeDoc struct {
	Language       string `mapstructure:"language"`
	Source         string `mapstructure:"source"`
	HighlightLines []int  `mapstructure:"highlight-lines"`
}

type listDoc struct {
	Ordered bool     `mapstructure:"ordered"`
	Items   []string `mapstructure:"items"`
}

type imageDoc struct {
	Path string `mapstructure:"path"`
	Alt  string `mapstructure:"alt"`
}

type containerDoc struct {
	Style    string         `mapstructure:"style"`
	Children []map[string]any `mapstructure:"children"`
}

type extensionDoc struct {
	Type     string         `mapstructure:"type"`
	Payload  map[string]any `mapstructure:"payload"`
	Fallback map[string]any `mapstructure:"fallback"`
}
