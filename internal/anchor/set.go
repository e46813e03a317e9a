package anchor

import (
	"fmt"
	"sort"
	"strings"
)

// Set is an ordered, non-overlapping collection of Spans over one text.
//
// The invariant (spans ascending by start, never overlapping or
// adjacent) is restored by every operation, so a Set taken from any
// method is always normalized. The zero Set is empty and ready to use.
//
// A Set does not know which text it is scoped to; operations that need
// the text take it as an argument.
type Set struct {
	spans []Span
}

// NewSet constructs a normalized Set from the given spans, merging any
// that overlap or touch.
func NewSet(spans ...Span) Set {
	return Set{spans: normalize(spans)}
}

// normalize sorts spans ascending and merges overlapping or adjacent ones.
func normalize(spans []Span) []Span {
	kept := make([]Span, 0, len(spans))
	for _, sp := range spans {
		if sp.Len() > 0 {
			kept = append(kept, sp)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })

	merged := kept[:1]
	for _, sp := range kept[1:] {
		last := &merged[len(merged)-1]
		if last.Touches(sp) {
			last.End = max(last.End, sp.End)
		} else {
			merged = append(merged, sp)
		}
	}
	return merged
}

// Spans returns a copy of the spans in ascending order.
func (s Set) Spans() []Span {
	out := make([]Span, len(s.spans))
	copy(out, s.spans)
	return out
}

// IsEmpty reports whether the set selects nothing.
func (s Set) IsEmpty() bool {
	return len(s.spans) == 0
}

// Size returns the number of spans in the set.
func (s Set) Size() int {
	return len(s.spans)
}

// Union returns a new Set selecting everything either set selects.
func (s Set) Union(other Set) Set {
	return NewSet(append(s.Spans(), other.spans...)...)
}

// Add returns a new Set with sp merged in.
func (s Set) Add(sp Span) Set {
	return NewSet(append(s.Spans(), sp)...)
}

// Intersect returns a new Set selecting only what both sets select.
func (s Set) Intersect(other Set) Set {
	var out []Span
	for _, a := range s.spans {
		for _, b := range other.spans {
			if overlap, ok := a.Intersect(b); ok {
				out = append(out, overlap)
			}
		}
	}
	return NewSet(out...)
}

// Shift returns a new Set with every span moved by delta characters.
// Spans pushed entirely before the start of the text are dropped, and a
// span straddling position zero is clamped to start there. Used when
// converting between node-local and subtree-flattened coordinates.
func (s Set) Shift(delta int) Set {
	out := make([]Span, 0, len(s.spans))
	for _, sp := range s.spans {
		moved := sp.Shift(delta)
		if moved.End <= 0 {
			continue
		}
		if moved.Start < 0 {
			moved.Start = 0
		}
		out = append(out, moved)
	}
	return NewSet(out...)
}

// Limit returns the subset of the selection falling within [start, end).
// An end of zero or less means no upper bound.
func (s Set) Limit(start, end int) Set {
	if end <= 0 {
		if len(s.spans) == 0 {
			return Set{}
		}
		end = s.spans[len(s.spans)-1].End
	}
	bound, err := NewSpan(start, end)
	if err != nil {
		return Set{}
	}
	return s.Intersect(NewSet(bound))
}

// marginChars are the characters allowed inside a gap bridged by
// AddMargin: separators that join text across provision boundaries
// without carrying meaning of their own.
const marginChars = `,.;:()[]"'’ `

// AddMargin merges spans separated by a gap of at most width characters
// when every character in the gap is punctuation or space, without
// extending the selection past either original boundary. This rejoins a
// selection split at a subsection boundary, where the flattened text
// inserts a single joining space.
func (s Set) AddMargin(text string, width int) Set {
	if len(s.spans) < 2 || width <= 0 {
		return s
	}
	out := []Span{s.spans[0]}
	for _, sp := range s.spans[1:] {
		last := &out[len(out)-1]
		gapStart := min(last.End, len(text))
		gapEnd := min(sp.Start, len(text))
		gap := text[gapStart:gapEnd]
		if sp.Start-last.End <= width && isMarginText(gap) {
			last.End = max(last.End, sp.End)
		} else {
			out = append(out, sp)
		}
	}
	return Set{spans: out}
}

func isMarginText(gap string) bool {
	for _, r := range gap {
		if !strings.ContainsRune(marginChars, r) {
			return false
		}
	}
	return true
}

// ValidateWithin reports a SelectorUnused error for any span beginning
// strictly after the end of text. A selection describing text the
// structure does not contain is surfaced, never silently dropped.
func (s Set) ValidateWithin(text string) error {
	for _, sp := range s.spans {
		if sp.Start > len(text) {
			sp := sp
			return &SelectionError{
				Code:    ErrCodeSelectorUnused,
				Message: fmt.Sprintf("selector begins after the end of the text (length %d)", len(text)),
				Span:    &sp,
			}
		}
	}
	return nil
}

// AsQuotes converts each span to a Quote selector against text, adding
// just enough prefix and suffix context to make each quote unique.
// Used when re-anchoring a selection onto a different text version.
func (s Set) AsQuotes(text string) []Quote {
	quotes := make([]Quote, 0, len(s.spans))
	for _, sp := range s.spans {
		quotes = append(quotes, quoteForSpan(text, sp))
	}
	return quotes
}

// AsSequence renders the selection against text as an ordered sequence
// of fragments. When includeGaps is true, gap markers stand in for the
// unselected stretches before, between, and after the fragments.
func (s Set) AsSequence(text string, includeGaps bool) Sequence {
	var seq Sequence
	cursor := 0
	for _, sp := range s.spans {
		if sp.Start > len(text) {
			break
		}
		if includeGaps && sp.Start > cursor {
			seq.appendGap()
		}
		seq.appendText(sp.Text(text))
		cursor = sp.End
	}
	if includeGaps && cursor < len(text) && !seq.IsEmpty() {
		seq.appendGap()
	}
	return seq
}

// SelectedText renders the selection as a single string, with gaps
// shown as an ellipsis.
func (s Set) SelectedText(text string) string {
	return s.AsSequence(text, true).String()
}

// String implements fmt.Stringer.
func (s Set) String() string {
	parts := make([]string, len(s.spans))
	for i, sp := range s.spans {
		parts[i] = sp.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}
