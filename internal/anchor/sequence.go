package anchor

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Ellipsis marks a gap when a Sequence is rendered as a string.
const Ellipsis = "…"

// Fragment is one element of a Sequence: either a contiguous piece of
// selected text, or a gap marker standing in for unselected text.
type Fragment struct {
	Text string
	Gap  bool
}

// Sequence is an ordered view of a rendered selection: text fragments
// interleaved with gap markers. Two gap markers are never adjacent; the
// appenders collapse them as the sequence is built.
//
// A Sequence is a derived view. It is rebuilt from a selection whenever
// a comparison needs it, never stored.
type Sequence struct {
	frags []Fragment
}

// NewSequence builds a Sequence from fragments, collapsing adjacent gaps.
func NewSequence(frags ...Fragment) Sequence {
	var seq Sequence
	for _, f := range frags {
		if f.Gap {
			seq.appendGap()
		} else {
			seq.appendText(f.Text)
		}
	}
	return seq
}

func (s *Sequence) appendText(text string) {
	if text == "" {
		return
	}
	s.frags = append(s.frags, Fragment{Text: text})
}

func (s *Sequence) appendGap() {
	if len(s.frags) > 0 && s.frags[len(s.frags)-1].Gap {
		return
	}
	s.frags = append(s.frags, Fragment{Gap: true})
}

// Fragments returns a copy of the sequence's elements in order.
func (s Sequence) Fragments() []Fragment {
	out := make([]Fragment, len(s.frags))
	copy(out, s.frags)
	return out
}

// IsEmpty reports whether the sequence has no elements at all.
func (s Sequence) IsEmpty() bool {
	return len(s.frags) == 0
}

// Concat appends other to s, merging a trailing gap of s with a leading
// gap of other into a single marker. Used when joining the renderings
// of adjacent nodes in a provision tree.
func (s Sequence) Concat(other Sequence) Sequence {
	out := Sequence{frags: s.Fragments()}
	for _, f := range other.frags {
		if f.Gap {
			out.appendGap()
		} else {
			out.appendText(f.Text)
		}
	}
	return out
}

// Strip returns the sequence without leading or trailing gap markers.
// Comparisons operate on stripped sequences.
func (s Sequence) Strip() Sequence {
	frags := s.frags
	for len(frags) > 0 && frags[0].Gap {
		frags = frags[1:]
	}
	for len(frags) > 0 && frags[len(frags)-1].Gap {
		frags = frags[:len(frags)-1]
	}
	return Sequence{frags: frags}
}

// String renders the sequence with gaps as an ellipsis.
func (s Sequence) String() string {
	var b strings.Builder
	for _, f := range s.frags {
		if f.Gap {
			b.WriteString(Ellipsis)
		} else {
			b.WriteString(f.Text)
		}
	}
	return b.String()
}

// normalizePassage prepares fragment text for comparison: NFC
// normalization, then trailing punctuation and space stripped.
func normalizePassage(text string) string {
	return strings.TrimRight(norm.NFC.String(text), ",:;. ")
}

// Means reports whether the two sequences have the same meaning: after
// stripping outer gaps, they have the same length and match position by
// position, either as gaps on both sides or as fragments whose
// normalized text is equal.
func (s Sequence) Means(other Sequence) bool {
	a, b := s.Strip().frags, other.Strip().frags
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Gap != b[i].Gap {
			return false
		}
		if a[i].Gap {
			continue
		}
		if normalizePassage(a[i].Text) != normalizePassage(b[i].Text) {
			return false
		}
	}
	return true
}

// Implies reports whether s contains at least all the text of other:
// every fragment of other must appear, as a normalized substring,
// within some fragment of s. The check is existential per fragment,
// not positional.
func (s Sequence) Implies(other Sequence) bool {
	selfFrags := s.Strip().frags
	for _, need := range other.Strip().frags {
		if need.Gap {
			continue
		}
		wanted := normalizePassage(need.Text)
		found := false
		for _, have := range selfFrags {
			if have.Gap {
				continue
			}
			if strings.Contains(normalizePassage(have.Text), wanted) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ImpliesStrictly reports whether s implies other without meaning the
// same thing: s is properly broader than other.
func (s Sequence) ImpliesStrictly(other Sequence) bool {
	return !s.Means(other) && s.Implies(other)
}
