package tags

import "strings"

// TagType names a kind of actionable item. New kinds are plain values; the
// extractor only needs a Kind pairing the type with its prefix.
type TagType string

const (
	// Todo marks headings starting with "TODO:".
	Todo TagType = "todo"
)

// Label is the upper-case form used when rendering items.
func (t TagType) Label() string {
	return strings.ToUpper(string(t))
}

func (t TagType) String() string {
	return string(t)
}

// Kind binds a TagType to the heading prefix that recognises it.
type Kind struct {
	Type   TagType
	Prefix string
}

// TodoKind recognises "TODO:" headings.
var TodoKind = Kind{Type: Todo, Prefix: "TODO:"}

// DefaultKinds returns the kinds recognised when no others are configured.
func DefaultKinds() []Kind {
	return []Kind{TodoKind}
}

// ListContent is the list captured directly after a tag heading.
type ListContent struct {
	Ordered bool     `json:"ordered"`
	Items   []string `json:"items"`
}

// TagItem is one extracted item.
type TagItem struct {
	Type    TagType      `json:"type"`
	Title   string       `json:"title"`
	Content *ListContent `json:"content,omitempty"`
}

// HasContent reports whether a list followed the heading.
func (i TagItem) HasContent() bool {
	return i.Content != nil
}
