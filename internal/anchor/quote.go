package anchor

import (
	"fmt"
	"regexp"
	"strings"
)

// Quote identifies a substring of a text by context rather than offset:
// an exact match, optionally disambiguated by the text immediately
// before (Prefix) and after (Suffix) it.
//
// When Exact is empty, the quote selects everything between the end of
// the unique Prefix occurrence and the start of the unique Suffix
// occurrence, trimmed of surrounding spaces. At least one of the three
// fields must be non-empty.
type Quote struct {
	Prefix string `json:"prefix,omitempty"`
	Exact  string `json:"exact,omitempty"`
	Suffix string `json:"suffix,omitempty"`
}

// ParseQuote builds a Quote from its split-marker string form
// "prefix|exact|suffix". A string containing fewer than two pipes is
// taken as the exact text itself.
func ParseQuote(s string) Quote {
	parts := strings.Split(s, "|")
	if len(parts) == 3 {
		return Quote{Prefix: parts[0], Exact: parts[1], Suffix: parts[2]}
	}
	return Quote{Exact: s}
}

// IsEmpty reports whether the quote has no content at all.
func (q Quote) IsEmpty() bool {
	return q.Prefix == "" && q.Exact == "" && q.Suffix == ""
}

// passage is the full text the quote must match, context included.
func (q Quote) passage() string {
	return q.Prefix + q.Exact + q.Suffix
}

// Find resolves the quote against text, returning the span of exactly
// the Exact portion (prefix and suffix excluded).
//
// Errors:
//   - QuoteNotFound when no occurrence of the quoted passage exists
//   - AmbiguousQuote when the supplied context leaves more than one match
func (q Quote) Find(text string) (Span, error) {
	if q.IsEmpty() {
		return Span{}, &SelectionError{
			Code:    ErrCodeQuoteNotFound,
			Message: "empty quote selector",
		}
	}
	if q.Exact == "" {
		return q.findBetween(text)
	}

	matches := q.contextPattern().FindAllStringSubmatchIndex(text, -1)
	switch {
	case len(matches) == 0:
		return Span{}, &SelectionError{
			Code:    ErrCodeQuoteNotFound,
			Message: "quoted text not found",
			Quote:   &q,
		}
	case len(matches) > 1:
		return Span{}, &SelectionError{
			Code:    ErrCodeAmbiguousQuote,
			Message: fmt.Sprintf("quoted text occurs %d times; add prefix or suffix context", len(matches)),
			Quote:   &q,
		}
	}
	m := matches[0]
	return Span{Start: m[2], End: m[3]}, nil
}

// contextPattern compiles the quote into a pattern that captures the
// Exact portion. Whitespace between a context part and the exact text
// is optional, so a prefix like "and" anchors an exact phrase that
// begins after a space without the caller spelling the space out.
func (q Quote) contextPattern() *regexp.Regexp {
	var b strings.Builder
	if prefix := strings.TrimRight(q.Prefix, " "); prefix != "" {
		b.WriteString(regexp.QuoteMeta(prefix))
		b.WriteString(`\s*`)
	}
	b.WriteString("(")
	b.WriteString(regexp.QuoteMeta(q.Exact))
	b.WriteString(")")
	if suffix := strings.TrimLeft(q.Suffix, " "); suffix != "" {
		b.WriteString(`\s*`)
		b.WriteString(regexp.QuoteMeta(suffix))
	}
	return regexp.MustCompile(b.String())
}

// findBetween resolves a quote with no Exact part: the selected span
// runs from the end of the prefix to the start of the suffix.
func (q Quote) findBetween(text string) (Span, error) {
	start := 0
	if q.Prefix != "" {
		idx, err := q.uniqueIndex(text, q.Prefix)
		if err != nil {
			return Span{}, err
		}
		start = idx + len(q.Prefix)
	}
	end := len(text)
	if q.Suffix != "" {
		idx, err := q.uniqueIndex(text[start:], q.Suffix)
		if err != nil {
			return Span{}, err
		}
		end = start + idx
	}
	for start < end && text[start] == ' ' {
		start++
	}
	for end > start && text[end-1] == ' ' {
		end--
	}
	if start >= end {
		return Span{}, &SelectionError{
			Code:    ErrCodeQuoteNotFound,
			Message: "no text between prefix and suffix",
			Quote:   &q,
		}
	}
	return Span{Start: start, End: end}, nil
}

func (q Quote) uniqueIndex(text, part string) (int, error) {
	switch strings.Count(text, part) {
	case 0:
		return 0, &SelectionError{
			Code:    ErrCodeQuoteNotFound,
			Message: fmt.Sprintf("context %q not found", part),
			Quote:   &q,
		}
	case 1:
		return strings.Index(text, part), nil
	default:
		return 0, &SelectionError{
			Code:    ErrCodeAmbiguousQuote,
			Message: fmt.Sprintf("context %q is not unique", part),
			Quote:   &q,
		}
	}
}

// IsUniqueIn reports whether the quote resolves to exactly one span in
// text.
func (q Quote) IsUniqueIn(text string) bool {
	_, err := q.Find(text)
	return err == nil
}

// String renders the quote in its split-marker form.
func (q Quote) String() string {
	if q.Prefix == "" && q.Suffix == "" {
		return q.Exact
	}
	return q.Prefix + "|" + q.Exact + "|" + q.Suffix
}

// contextStep is how many characters of context quoteForSpan adds per
// attempt when a bare exact match is not unique.
const contextStep = 10

// quoteForSpan converts a span into a Quote against text, widening the
// prefix and suffix windows until the quote is unique in text. A span
// covering text that repeats everywhere degrades to the widest possible
// context, which is unique by construction.
func quoteForSpan(text string, sp Span) Quote {
	exact := sp.Text(text)
	q := Quote{Exact: exact}
	for width := contextStep; ; width += contextStep {
		if strings.Count(text, q.passage()) <= 1 {
			return q
		}
		pfxStart := max(0, sp.Start-width)
		sfxEnd := min(len(text), sp.End+width)
		q.Prefix = text[pfxStart:sp.Start]
		q.Suffix = text[sp.End:sfxEnd]
		if pfxStart == 0 && sfxEnd == len(text) {
			return q
		}
	}
}
