package interfaces

// ParseOptions customises how Markdown sources are tokenized before tag
// extraction. Extension names map onto goldmark extenders; unknown names are
// ignored.
type ParseOptions struct {
	Extensions []string
}
