package richtext

import (
	"strings"

	"github.com/google/uuid"
)

const (
	TypeBlock = "block"
	TypeSpan  = "span"
	TypeLink  = "link"

	StyleNormal     = "normal"
	StyleBlockquote = "blockquote"

	ListBullet = "bullet"
	ListNumber = "number"

	MarkStrong    = "strong"
	MarkEm        = "em"
	MarkUnderline = "underline"
)

// Block is one paragraph-level element of a rich-text field.
type Block struct {
	Type     string    `json:"_type"`
	Key      string    `json:"_key"`
	Style    string    `json:"style,omitempty"`
	ListItem string    `json:"listItem,omitempty"`
	Level    int       `json:"level,omitempty"`
	MarkDefs []MarkDef `json:"markDefs"`
	Children []Span    `json:"children"`
}

// Span is a run of text sharing the same marks.
type Span struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key"`
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

// MarkDef is an annotation referenced by key from span marks.
type MarkDef struct {
	Type string `json:"_type"`
	Key  string `json:"_key"`
	Href string `json:"href,omitempty"`
}

// NewKey returns a random 12 character hex key for array items.
func NewKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// ExtractText flattens the span text of every block, separating spans and
// blocks with a single space.
func ExtractText(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if block.Type != TypeBlock {
			continue
		}

		texts := make([]string, 0, len(block.Children))
		for _, child := range block.Children {
			if child.Type == TypeSpan && child.Text != "" {
				texts = append(texts, child.Text)
			}
		}
		parts = append(parts, strings.Join(texts, " "))
	}

	return strings.Join(parts, " ")
}
