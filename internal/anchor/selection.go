package anchor

// Selection is a sealed interface over the selector shapes a caller may
// supply: everything, nothing, quote selectors, explicit spans, or a
// pre-built Set. Resolve canonicalizes any Selection to a Set at the
// API boundary, before any internal algorithm runs.
type Selection interface {
	selection() // Sealed - only the types below implement it
}

// AllText selects the full text. The boolean selector "true".
type AllText struct{}

func (AllText) selection() {}

// NoText selects nothing. The boolean selector "false" or an absent one.
type NoText struct{}

func (NoText) selection() {}

// QuoteSelection selects one span per quote selector.
type QuoteSelection []Quote

func (QuoteSelection) selection() {}

// SpanSelection selects explicit position ranges.
type SpanSelection []Span

func (SpanSelection) selection() {}

// SetSelection wraps an already-normalized Set.
type SetSelection Set

func (SetSelection) selection() {}

// SelectAll returns the selector for the whole text.
func SelectAll() Selection { return AllText{} }

// SelectNone returns the selector for the empty selection.
func SelectNone() Selection { return NoText{} }

// Quotes returns a selector resolving each quote against the text.
func Quotes(quotes ...Quote) Selection { return QuoteSelection(quotes) }

// Spans returns a selector for explicit position ranges.
func Spans(spans ...Span) Selection { return SpanSelection(spans) }

// FromString returns a selector for a literal quote string in its
// split-marker form "prefix|exact|suffix".
func FromString(s string) Selection { return QuoteSelection{ParseQuote(s)} }

// Resolve canonicalizes a Selection into a normalized Set scoped to
// text. Quote selectors are resolved to position spans; explicit spans
// are validated against the length of text.
func Resolve(sel Selection, text string) (Set, error) {
	switch v := sel.(type) {
	case nil, NoText:
		return Set{}, nil
	case AllText:
		if len(text) == 0 {
			return Set{}, nil
		}
		return NewSet(Span{Start: 0, End: len(text)}), nil
	case QuoteSelection:
		spans := make([]Span, 0, len(v))
		for _, q := range v {
			sp, err := q.Find(text)
			if err != nil {
				return Set{}, err
			}
			spans = append(spans, sp)
		}
		return NewSet(spans...), nil
	case SpanSelection:
		set := NewSet(v...)
		if err := set.ValidateWithin(text); err != nil {
			return Set{}, err
		}
		return set, nil
	case SetSelection:
		set := Set(v)
		if err := set.ValidateWithin(text); err != nil {
			return Set{}, err
		}
		return set, nil
	default:
		return Set{}, &SelectionError{
			Code:    ErrCodeInvalidSpan,
			Message: "unsupported selection type",
		}
	}
}
