// Package tags extracts tag items (TODO headings and the list that may
// follow them) from a Markdown event stream.
//
// The extractor is a single forward walk: it never re-reads an event, makes
// exactly one decision per matching heading about whether list content
// follows, and never fails. Headings that do not match, truncated headings and
// truncated lists produce no output rather than an error.
package tags
