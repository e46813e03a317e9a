package anchor

import "fmt"

// Span is a half-open [Start, End) character range over a text.
//
// A Span carries no reference to the text it selects; the owner of the
// Span decides which text its offsets are scoped to. The zero Span is
// empty and selects nothing.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewSpan constructs a Span, validating that it describes a non-empty
// half-open range.
func NewSpan(start, end int) (Span, error) {
	if start < 0 || end <= start {
		sp := Span{Start: start, End: end}
		return Span{}, &SelectionError{
			Code:    ErrCodeInvalidSpan,
			Message: "span must satisfy 0 <= start < end",
			Span:    &sp,
		}
	}
	return Span{Start: start, End: end}, nil
}

// Len returns the number of characters the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsZero reports whether the span is the empty zero value.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Contains reports whether other falls entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Overlaps reports whether s and other share at least one character.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Touches reports whether s and other overlap or are directly adjacent,
// so that their union is a single contiguous span.
func (s Span) Touches(other Span) bool {
	return s.Start <= other.End && other.Start <= s.End
}

// Shift returns the span moved by delta characters. The caller is
// responsible for keeping the result within the bounds of its text;
// Set.Shift clamps and drops spans that leave the text.
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}

// Intersect returns the overlap of s and other. The second return value
// is false when the spans do not overlap.
func (s Span) Intersect(other Span) (Span, bool) {
	if !s.Overlaps(other) {
		return Span{}, false
	}
	return Span{Start: max(s.Start, other.Start), End: min(s.End, other.End)}, true
}

// Text returns the substring of text the span selects, clamped to the
// bounds of text.
func (s Span) Text(text string) string {
	start := min(s.Start, len(text))
	end := min(s.End, len(text))
	if start >= end {
		return ""
	}
	return text[start:end]
}

// String implements fmt.Stringer.
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}
