// Package anchor implements character-range selection over text.
//
// The package provides four building blocks:
//
//   - Span: a half-open [start, end) character range.
//   - Set: an ordered, non-overlapping collection of Spans scoped to one
//     text, with union, intersection, offset, and margin arithmetic.
//   - Quote: a prefix/exact/suffix selector identifying a substring by
//     context rather than offset, convertible to and from Spans.
//   - Sequence: a rendered selection, an ordered list of selected text
//     fragments interleaved with gap markers, supporting the Means and
//     Implies comparisons.
//
// All offsets are byte offsets into the scoped text. Inputs are NFC
// normalized at the comparison boundary only, never when selecting.
package anchor
