// Package markdown turns Markdown sources into the flat event stream consumed
// by tag extraction. It owns the goldmark engine setup, frontmatter stripping
// and discovery of Markdown files inside a notes directory.
package markdown
