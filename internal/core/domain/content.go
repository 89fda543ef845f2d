package domain

// ConvertMode selects the body conversion strategy.
type ConvertMode string

const (
	// ConvertFlat renders the body as a single markdown string.
	ConvertFlat ConvertMode = "flat"

	// ConvertStructured renders the body as a constrained
	// block-structured rich text document.
	ConvertStructured ConvertMode = "structured"
)

// Valid reports whether the mode is one of the supported values.
func (m ConvertMode) Valid() bool {
	return m == ConvertFlat || m == ConvertStructured
}

// Rich text node types used by the structured document. These mirror
// the destination's rich text vocabulary but only the constrained
// subset the converter emits.
const (
	NodeDocument   = "document"
	NodeParagraph  = "paragraph"
	NodeHeading1   = "heading-1"
	NodeHeading2   = "heading-2"
	NodeHeading3   = "heading-3"
	NodeBlockquote = "blockquote"
	NodeText       = "text"
)

// RichTextNode is one node of the structured document tree.
type RichTextNode struct {
	NodeType string         `json:"nodeType"`
	Data     map[string]any `json:"data"`
	Content  []RichTextNode `json:"content,omitempty"`
	Value    string         `json:"value,omitempty"`
	Marks    []RichTextMark `json:"marks,omitempty"`
}

// RichTextMark annotates a text node (bold, italic, code).
type RichTextMark struct {
	Type string `json:"type"`
}

// RichTextDocument is the root of a structured document.
type RichTextDocument struct {
	NodeType string         `json:"nodeType"`
	Data     map[string]any `json:"data"`
	Content  []RichTextNode `json:"content"`
}

// TextNode builds a leaf text node. Marks is always present (possibly
// empty) because the destination schema requires the field.
func TextNode(value string) RichTextNode {
	return RichTextNode{
		NodeType: NodeText,
		Data:     map[string]any{},
		Value:    value,
		Marks:    []RichTextMark{},
	}
}

// BlockNode builds a block node wrapping the given children.
func BlockNode(nodeType string, children ...RichTextNode) RichTextNode {
	return RichTextNode{
		NodeType: nodeType,
		Data:     map[string]any{},
		Content:  children,
	}
}

// ConvertedContent is the output of the content converter. Exactly one
// of Markdown or Document is populated, according to Mode.
type ConvertedContent struct {
	Mode     ConvertMode
	Markdown string
	Document *RichTextDocument
}

// FieldValue returns the value to place in the destination entry's
// content field.
func (c ConvertedContent) FieldValue() any {
	if c.Mode == ConvertStructured {
		return c.Document
	}
	return c.Markdown
}
