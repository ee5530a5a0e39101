package markdown

import (
	"fmt"
	"strconv"
)

// EventKind identifies the category of a Markdown event.
type EventKind uint8

const (
	// EventOther covers every block or inline construct without a dedicated kind.
	EventOther EventKind = iota
	EventHeadingStart
	EventHeadingEnd
	EventText
	EventListStart
	EventListEnd
	EventItemStart
	EventItemEnd
	// EventBreak marks a soft or hard line break between text runs.
	EventBreak
)

func (k EventKind) String() string {
	switch k {
	case EventHeadingStart:
		return "heading_start"
	case EventHeadingEnd:
		return "heading_end"
	case EventText:
		return "text"
	case EventListStart:
		return "list_start"
	case EventListEnd:
		return "list_end"
	case EventItemStart:
		return "item_start"
	case EventItemEnd:
		return "item_end"
	case EventBreak:
		return "break"
	default:
		return "other"
	}
}

// Event is a single step of a document walk. Text is only set for
// EventText, Ordered only for EventListStart and Level only for heading
// events.
type Event struct {
	Kind    EventKind
	Text    string
	Ordered bool
	Level   int
}

func (e Event) String() string {
	switch e.Kind {
	case EventText:
		return fmt.Sprintf("text(%s)", strconv.Quote(e.Text))
	case EventListStart:
		return fmt.Sprintf("list_start(ordered=%t)", e.Ordered)
	case EventHeadingStart, EventHeadingEnd:
		return fmt.Sprintf("%s(h%d)", e.Kind, e.Level)
	default:
		return e.Kind.String()
	}
}

// Text builds a text event.
func Text(value string) Event {
	return Event{Kind: EventText, Text: value}
}

// HeadingStart builds a heading start event for the given level.
func HeadingStart(level int) Event {
	return Event{Kind: EventHeadingStart, Level: level}
}

// HeadingEnd builds a heading end event for the given level.
func HeadingEnd(level int) Event {
	return Event{Kind: EventHeadingEnd, Level: level}
}

// ListStart builds a list start event.
func ListStart(ordered bool) Event {
	return Event{Kind: EventListStart, Ordered: ordered}
}

// ListEnd builds a list end event.
func ListEnd() Event { return Event{Kind: EventListEnd} }

// ItemStart builds a list item start event.
func ItemStart() Event { return Event{Kind: EventItemStart} }

// ItemEnd builds a list item end event.
func ItemEnd() Event { return Event{Kind: EventItemEnd} }

// Break builds a line break event.
func Break() Event { return Event{Kind: EventBreak} }

// Other builds an event for a construct without a dedicated kind.
func Other() Event { return Event{Kind: EventOther} }
