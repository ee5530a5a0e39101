package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// StripFrontMatter returns the Markdown body that follows a leading
// frontmatter block. Only a block that decodes to at least one key counts as
// frontmatter: a document opening with a thematic break, or a fenced block
// holding nothing but comments, is returned unchanged. On error the
// unmodified input is returned alongside the error so callers can fall back
// to tokenizing it as-is.
func StripFrontMatter(source []byte) ([]byte, error) {
	var meta map[string]any

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return source, fmt.Errorf("parse frontmatter: %w", err)
	}
	if len(meta) == 0 {
		return source, nil
	}
	return body, nil
}
