package tags

import (
	"sort"
	"strings"
)

// LookaheadPolicy decides what happens to the event inspected right after a
// tag heading when it does not open a list.
type LookaheadPolicy uint8

const (
	// LookaheadRedispatch hands the inspected event back to the scanner, so a
	// tag heading directly after another one is still recognised.
	LookaheadRedispatch LookaheadPolicy = iota
	// LookaheadDiscard drops the inspected event.
	LookaheadDiscard
)

// ListPolicy decides how list content is captured.
type ListPolicy uint8

const (
	// ListSkipNested collects every text run that belongs to an item, turns
	// line breaks into spaces and skips nested lists. Unknown events directly
	// inside the list are ignored.
	ListSkipNested ListPolicy = iota
	// ListTruncate stops an item's text at its first non-text event and ends
	// the whole list at the first event that is neither an item start nor the
	// list end, keeping the items gathered so far.
	ListTruncate
)

// Option configures an Extractor.
type Option func(*Extractor)

// WithKinds replaces the recognised kinds. Kinds with an empty prefix are
// ignored; when two kinds share a prefix the first one wins.
func WithKinds(kinds ...Kind) Option {
	return func(e *Extractor) {
		e.kinds = normalizeKinds(kinds)
	}
}

// WithLookahead selects the lookahead policy.
func WithLookahead(policy LookaheadPolicy) Option {
	return func(e *Extractor) {
		e.lookahead = policy
	}
}

// WithLegacyLookahead is shorthand for WithLookahead(LookaheadDiscard).
func WithLegacyLookahead() Option {
	return WithLookahead(LookaheadDiscard)
}

// WithListPolicy selects the list capture policy.
func WithListPolicy(policy ListPolicy) Option {
	return func(e *Extractor) {
		e.lists = policy
	}
}

// WithLegacyListCapture is shorthand for WithListPolicy(ListTruncate).
func WithLegacyListCapture() Option {
	return WithListPolicy(ListTruncate)
}

// normalizeKinds drops unusable kinds and orders the rest longest prefix
// first so "TODO:" never shadows a longer prefix such as "TODO:LATER".
func normalizeKinds(kinds []Kind) []Kind {
	out := make([]Kind, 0, len(kinds))
	seen := map[string]struct{}{}
	for _, kind := range kinds {
		prefix := strings.TrimSpace(kind.Prefix)
		if prefix == "" || kind.Type == "" {
			continue
		}
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		out = append(out, Kind{Type: kind.Type, Prefix: prefix})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Prefix) > len(out[j].Prefix)
	})
	return out
}
