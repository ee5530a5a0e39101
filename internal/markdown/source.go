package markdown

import (
	"bytes"
	"iter"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-mdt/pkg/interfaces"
)

// Events parses source with goldmark and returns the document as a lazy
// sequence of events. Adjacent text fragments are merged into a single
// EventText before they are yielded. Text carries the decoded characters:
// backslash escapes and entity references are resolved.
func Events(source []byte, opts interfaces.ParseOptions) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		doc := newGoldmarkEngine(opts).Parser().Parse(text.NewReader(source))
		w := &walker{source: source, yield: yield}
		_ = ast.Walk(doc, w.visit)
		w.flush()
	}
}

// Source is a pull-based, single-pass view over an event sequence. Once Next
// reports false it keeps doing so.
type Source struct {
	next func() (Event, bool)
	stop func()
	done bool
}

// NewSource parses source and returns a Source positioned before the first event.
func NewSource(source []byte, opts interfaces.ParseOptions) *Source {
	return Pull(Events(source, opts))
}

// Pull converts a push-style event sequence into a Source.
func Pull(seq iter.Seq[Event]) *Source {
	next, stop := iter.Pull(seq)
	return &Source{next: next, stop: stop}
}

// Next returns the next event, or false when the sequence is exhausted.
func (s *Source) Next() (Event, bool) {
	if s.done {
		return Event{}, false
	}
	ev, ok := s.next()
	if !ok {
		s.Stop()
	}
	return ev, ok
}

// Stop releases the underlying walk. It is safe to call more than once.
func (s *Source) Stop() {
	s.done = true
	s.stop()
}

type walker struct {
	source  []byte
	yield   func(Event) bool
	text    strings.Builder
	stopped bool
}

func (w *walker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if w.stopped {
		return ast.WalkStop, nil
	}

	switch node := n.(type) {
	case *ast.Document, *ast.TextBlock:
		// tight list paragraphs and the root carry no events of their own
		return ast.WalkContinue, nil
	case *ast.Text:
		if entering {
			value := node.Segment.Value(w.source)
			if node.IsRaw() {
				w.text.Write(value)
			} else {
				decodeText(&w.text, value)
			}
			if node.SoftLineBreak() || node.HardLineBreak() {
				w.emit(Break())
			}
		}
		return w.status(), nil
	case *ast.String:
		if entering {
			w.text.Write(node.Value)
		}
		return w.status(), nil
	case *ast.Heading:
		if entering {
			w.emit(HeadingStart(node.Level))
		} else {
			w.emit(HeadingEnd(node.Level))
		}
		return w.status(), nil
	case *ast.List:
		if entering {
			w.emit(ListStart(node.IsOrdered()))
		} else {
			w.emit(ListEnd())
		}
		return w.status(), nil
	case *ast.ListItem:
		if entering {
			w.emit(ItemStart())
		} else {
			w.emit(ItemEnd())
		}
		return w.status(), nil
	}

	switch n.Kind() {
	case ast.KindCodeSpan, ast.KindRawHTML, ast.KindAutoLink, extast.KindTaskCheckBox:
		// opaque leaves: one event, children are not part of the text stream
		if !entering {
			return w.status(), nil
		}
		w.emit(Other())
		if w.stopped {
			return ast.WalkStop, nil
		}
		return ast.WalkSkipChildren, nil
	}

	w.emit(Other())
	return w.status(), nil
}

func (w *walker) status() ast.WalkStatus {
	if w.stopped {
		return ast.WalkStop
	}
	return ast.WalkContinue
}

func (w *walker) emit(ev Event) {
	if !w.flush() {
		return
	}
	if !w.yield(ev) {
		w.stopped = true
	}
}

// flush yields any pending merged text. It reports false once the consumer
// has stopped the walk.
func (w *walker) flush() bool {
	if w.stopped {
		return false
	}
	if w.text.Len() == 0 {
		return true
	}
	ev := Text(w.text.String())
	w.text.Reset()
	if !w.yield(ev) {
		w.stopped = true
		return false
	}
	return true
}

// decodeText writes raw to b with backslash-escaped punctuation unescaped and
// entity and numeric character references replaced by the characters they
// name. An escaped ampersand never starts a reference.
func decodeText(b *strings.Builder, raw []byte) {
	if bytes.IndexByte(raw, '\\') < 0 && bytes.IndexByte(raw, '&') < 0 {
		b.Write(raw)
		return
	}
	for i := 0; i < len(raw); {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) && util.IsPunct(raw[i+1]) {
			b.WriteByte(raw[i+1])
			i += 2
			continue
		}
		if c == '&' {
			if ref, ok := reference(raw[i:]); ok {
				b.Write(resolveReference(ref))
				i += len(ref)
				continue
			}
		}
		b.WriteByte(c)
		i++
	}
}

// reference returns the "&name;" or "&#digits;" token at the start of s.
func reference(s []byte) ([]byte, bool) {
	for j := 1; j < len(s); j++ {
		switch c := s[j]; {
		case c == ';':
			return s[:j+1], j > 1
		case c == '#' && j == 1, util.IsAlphaNumeric(c):
		default:
			return nil, false
		}
	}
	return nil, false
}

func resolveReference(ref []byte) []byte {
	if ref[1] == '#' {
		return util.ResolveNumericReferences(ref)
	}
	return util.ResolveEntityNames(ref)
}
