package tags

import (
	"iter"
	"strings"

	"github.com/goliatone/go-mdt/internal/markdown"
)

// EventSource is the pull side of a Markdown event stream. After Next reports
// false the extractor makes no further calls.
type EventSource interface {
	Next() (markdown.Event, bool)
}

// Extractor walks an event stream and collects tag items. An Extractor holds
// only configuration, so one value can serve any number of documents.
type Extractor struct {
	kinds     []Kind
	lookahead LookaheadPolicy
	lists     ListPolicy
}

// NewExtractor builds an Extractor recognising DefaultKinds unless WithKinds
// is supplied.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		kinds: normalizeKinds(DefaultKinds()),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// ExtractSeq pulls events from seq and extracts its tag items.
func ExtractSeq(seq iter.Seq[markdown.Event], opts ...Option) []TagItem {
	src := markdown.Pull(seq)
	defer src.Stop()
	return NewExtractor(opts...).Extract(src)
}

type phase uint8

const (
	scanning phase = iota
	inHeading
	awaitingContent
	inList
	inListItem
)

// state is the single value the walk carries between events. Fields other
// than phase are only meaningful in the phases that use them.
type state struct {
	phase   phase
	buf     strings.Builder
	kind    Kind
	title   string
	ordered bool
	items   []string
	// depth counts nested lists entered inside the current item.
	depth int
}

func (s *state) reset() {
	s.phase = scanning
	s.buf.Reset()
	s.kind = Kind{}
	s.title = ""
	s.ordered = false
	s.items = nil
	s.depth = 0
}

func (s *state) item(content *ListContent) TagItem {
	return TagItem{Type: s.kind.Type, Title: s.title, Content: content}
}

func (s *state) list() *ListContent {
	items := s.items
	if items == nil {
		items = []string{}
	}
	return &ListContent{Ordered: s.ordered, Items: items}
}

// Extract drives src to exhaustion and returns the tag items in document
// order.
func (e *Extractor) Extract(src EventSource) []TagItem {
	var (
		items []TagItem
		st    state
	)

	for {
		ev, ok := src.Next()
		if !ok {
			break
		}
		if item, emitted := e.step(&st, ev); emitted {
			items = append(items, item)
		}
	}

	// A tag heading at the very end of the document has no content to wait
	// for. Headings and lists still open at this point are dropped.
	if st.phase == awaitingContent {
		items = append(items, st.item(nil))
	}

	return items
}

// step advances the machine by one event and returns the item completed by
// it, if any.
func (e *Extractor) step(st *state, ev markdown.Event) (TagItem, bool) {
	switch st.phase {
	case scanning:
		e.scan(st, ev)
		return TagItem{}, false

	case inHeading:
		switch ev.Kind {
		case markdown.EventText:
			st.buf.WriteString(ev.Text)
		case markdown.EventBreak:
			st.buf.WriteByte(' ')
		case markdown.EventHeadingEnd:
			kind, title, ok := e.match(st.buf.String())
			st.buf.Reset()
			if !ok {
				st.reset()
				return TagItem{}, false
			}
			st.phase = awaitingContent
			st.kind = kind
			st.title = title
		}
		return TagItem{}, false

	case awaitingContent:
		if ev.Kind == markdown.EventListStart {
			st.phase = inList
			st.ordered = ev.Ordered
			st.items = nil
			return TagItem{}, false
		}
		item := st.item(nil)
		st.reset()
		if e.lookahead == LookaheadRedispatch {
			e.scan(st, ev)
		}
		return item, true

	case inList:
		switch ev.Kind {
		case markdown.EventItemStart:
			st.phase = inListItem
			st.buf.Reset()
			st.depth = 0
		case markdown.EventListEnd:
			item := st.item(st.list())
			st.reset()
			return item, true
		default:
			if e.lists == ListTruncate {
				item := st.item(st.list())
				st.reset()
				return item, true
			}
		}
		return TagItem{}, false

	case inListItem:
		if e.lists == ListTruncate {
			e.truncatedItem(st, ev)
		} else {
			e.nestedItem(st, ev)
		}
		return TagItem{}, false
	}

	return TagItem{}, false
}

func (e *Extractor) scan(st *state, ev markdown.Event) {
	if ev.Kind == markdown.EventHeadingStart {
		st.phase = inHeading
		st.buf.Reset()
	}
}

// truncatedItem keeps text up to the item's first non-text event. That event
// is consumed and control returns to the list.
func (e *Extractor) truncatedItem(st *state, ev markdown.Event) {
	if ev.Kind == markdown.EventText {
		st.buf.WriteString(ev.Text)
		return
	}
	st.items = append(st.items, st.buf.String())
	st.buf.Reset()
	st.phase = inList
}

// nestedItem keeps every text run of the item outside nested lists and
// finishes on the item's own end event.
func (e *Extractor) nestedItem(st *state, ev markdown.Event) {
	switch ev.Kind {
	case markdown.EventText:
		if st.depth == 0 {
			st.buf.WriteString(ev.Text)
		}
	case markdown.EventBreak:
		if st.depth == 0 {
			st.buf.WriteByte(' ')
		}
	case markdown.EventListStart:
		st.depth++
	case markdown.EventListEnd:
		if st.depth > 0 {
			st.depth--
		}
	case markdown.EventItemEnd:
		if st.depth > 0 {
			return
		}
		st.items = append(st.items, strings.TrimSpace(st.buf.String()))
		st.buf.Reset()
		st.phase = inList
	}
}

// match trims heading and looks for a registered prefix at its start. The
// prefix is removed once and the remainder trimmed into the title.
func (e *Extractor) match(heading string) (Kind, string, bool) {
	trimmed := strings.TrimSpace(heading)
	for _, kind := range e.kinds {
		if rest, ok := strings.CutPrefix(trimmed, kind.Prefix); ok {
			return kind, strings.TrimSpace(rest), true
		}
	}
	return Kind{}, "", false
}
