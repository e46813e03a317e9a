package enact

import (
	"fmt"
	"time"

	"github.com/lexanchor/lexanchor/internal/anchor"
)

// marginWidth is how far apart two selected ranges may sit, across
// punctuation or space only, before they are kept as separate passages.
const marginWidth = 4

// TextSource is any value whose selected text renders as a Sequence:
// an Enactment (treated as fully selected) or a Passage.
type TextSource interface {
	TextSequence(includeGaps bool) (anchor.Sequence, error)
}

// Means reports whether a and b select text with the same meaning.
func Means(a, b TextSource) (bool, error) {
	aSeq, err := a.TextSequence(true)
	if err != nil {
		return false, err
	}
	bSeq, err := b.TextSequence(true)
	if err != nil {
		return false, err
	}
	return aSeq.Means(bSeq), nil
}

// Implies reports whether a's selected text contains at least all the
// selected text of b.
func Implies(a, b TextSource) (bool, error) {
	aSeq, err := a.TextSequence(false)
	if err != nil {
		return false, err
	}
	bSeq, err := b.TextSequence(false)
	if err != nil {
		return false, err
	}
	return aSeq.Implies(bSeq), nil
}

// ImpliesStrictly reports whether a implies b without meaning the same
// thing: a is properly broader than b.
func ImpliesStrictly(a, b TextSource) (bool, error) {
	same, err := Means(a, b)
	if err != nil || same {
		return false, err
	}
	return Implies(a, b)
}

// Passage is an Enactment together with a selection indicating which
// of its text is being referenced. The selection is an anchor.Set in
// flattened-subtree coordinates: offsets into the Enactment's Text.
//
// The Select methods replace or extend the passage's own selection in
// place. Add and Consolidate never mutate their inputs; they allocate
// new passages over deep-copied trees.
type Passage struct {
	enactment *Enactment
	selection anchor.Set
}

// NewPassage pairs an Enactment with a selection, validating that the
// selection falls within the subtree text.
func NewPassage(e *Enactment, selection anchor.Set) (*Passage, error) {
	text, err := e.Text()
	if err != nil {
		return nil, err
	}
	if err := selection.ValidateWithin(text); err != nil {
		return nil, err
	}
	return &Passage{enactment: e, selection: selection}, nil
}

// Enactment returns the provision the passage selects from.
func (p *Passage) Enactment() *Enactment { return p.enactment }

// Selection returns the current selection in flattened-subtree
// coordinates.
func (p *Passage) Selection() anchor.Set { return p.selection }

// Node is the citation path of the underlying provision.
func (p *Passage) Node() string { return p.enactment.Node }

// StartDate is the start date of the underlying provision.
func (p *Passage) StartDate() time.Time { return p.enactment.StartDate }

// EndDate is the end date of the underlying provision, if any.
func (p *Passage) EndDate() *time.Time { return p.enactment.EndDate }

// Text returns the full subtree text, selected or not.
func (p *Passage) Text() (string, error) {
	return p.enactment.Text()
}

// Select replaces the current selection with a resolved selector.
func (p *Passage) Select(sel anchor.Selection) error {
	set, err := p.enactment.makeSelection(sel)
	if err != nil {
		return err
	}
	p.selection = set
	return nil
}

// SelectAll selects the subtree's full text.
func (p *Passage) SelectAll() error {
	return p.Select(anchor.SelectAll())
}

// SelectNone clears the selection for the whole subtree.
func (p *Passage) SelectNone() {
	p.selection = anchor.Set{}
}

// SelectMore adds to the current selection without clearing it. Ranges
// that end up separated only by a short stretch of punctuation merge
// into one.
func (p *Passage) SelectMore(sel anchor.Selection) error {
	set, err := p.enactment.makeSelection(sel)
	if err != nil {
		return err
	}
	text, err := p.Text()
	if err != nil {
		return err
	}
	p.selection = p.selection.Union(set).AddMargin(text, marginWidth)
	return nil
}

// Limit restricts the selection to the range between the start and end
// character offsets. An end of zero or less means no upper bound.
func (p *Passage) Limit(start, end int) {
	p.selection = p.selection.Limit(start, end)
}

// SelectedText renders the selected text, with gaps shown as an
// ellipsis.
func (p *Passage) SelectedText() (string, error) {
	seq, err := p.TextSequence(true)
	if err != nil {
		return "", err
	}
	return seq.String(), nil
}

// TextSequence renders the selection as an ordered sequence of text
// fragments, interleaved with gap markers when includeGaps is true.
// The sequence is a derived view, rebuilt on every call.
func (p *Passage) TextSequence(includeGaps bool) (anchor.Sequence, error) {
	text, err := p.Text()
	if err != nil {
		return anchor.Sequence{}, err
	}
	return p.selection.AsSequence(text, includeGaps), nil
}

// Means reports whether the passage selects text with the same meaning
// as other.
func (p *Passage) Means(other TextSource) (bool, error) {
	return Means(p, other)
}

// Implies reports whether the passage contains at least all the
// selected text of other.
func (p *Passage) Implies(other TextSource) (bool, error) {
	return Implies(p, other)
}

// ImpliesStrictly reports whether the passage implies other without
// meaning the same thing.
func (p *Passage) ImpliesStrictly(other TextSource) (bool, error) {
	return ImpliesStrictly(p, other)
}

// Copy returns a passage over a deep copy of the provision tree with
// the same selection.
func (p *Passage) Copy() *Passage {
	return &Passage{enactment: p.enactment.Copy(), selection: p.selection}
}

// String implements fmt.Stringer.
func (p *Passage) String() string {
	selected, err := p.SelectedText()
	if err != nil {
		selected = "<" + err.Error() + ">"
	}
	return fmt.Sprintf("%q (%s)", selected, p.enactment)
}

// AnchoredPassage is a quoted passage plus anchors to the text of an
// external document that references it.
type AnchoredPassage struct {
	Passage *Passage
	Anchors []anchor.Quote
}
