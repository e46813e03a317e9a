package enact

import (
	"fmt"
	"strings"
	"time"

	"github.com/lexanchor/lexanchor/internal/anchor"
	"github.com/lexanchor/lexanchor/internal/cite"
)

// TextVersion is one version of a provision's text, enacted at one or
// more times and locations. Content is immutable once set and must be
// non-empty.
type TextVersion struct {
	Content string
	URL     string
	ID      int
}

// NewTextVersion validates that a text version has content.
func NewTextVersion(content string) (*TextVersion, error) {
	if content == "" {
		return nil, fmt.Errorf("text version must not have empty content")
	}
	return &TextVersion{Content: content}, nil
}

// Child is one entry in an Enactment's child list: either a fully
// loaded child node, or an unresolved path reference to one.
type Child struct {
	node *Enactment
	ref  string
}

// ResolvedChild wraps a loaded child node.
func ResolvedChild(n *Enactment) Child { return Child{node: n} }

// RefChild wraps an unresolved path reference.
func RefChild(path string) Child { return Child{ref: path} }

// Resolved returns the loaded node, or false for a path reference.
func (c Child) Resolved() (*Enactment, bool) { return c.node, c.node != nil }

// Ref returns the unresolved path reference, empty for a loaded node.
func (c Child) Ref() string { return c.ref }

// Enactment is one cited legislative provision: a slash-delimited
// citation path, a heading, a dated text version, and child provisions
// connected by nesting or by link.
//
// The full text of an Enactment is the space-joined concatenation of
// its own content and the full text of each resolved child, in order.
// Offsets into that flattened text treat each non-empty content piece
// as occupying its length plus one joining character (PaddedLength).
type Enactment struct {
	// Node is the citation path, e.g. "/us/usc/t17/s102/b".
	Node string

	// Heading is the provision's full heading.
	Heading string

	// StartDate is when the text was enacted at the cited location.
	StartDate time.Time

	// EndDate is when the text was removed, if it has been.
	EndDate *time.Time

	// KnownRevisionDate reports whether StartDate is a known revision
	// date, rather than a fallback earliest date from an incomplete
	// legislative record.
	KnownRevisionDate bool

	// TextVersion is the provision's own text content, if any.
	TextVersion *TextVersion

	// Citations are outbound cross-references found in this node's text.
	Citations []cite.CrossReference

	// Anchors locate references to this provision in some external
	// document. Held until they can be moved to the citing document.
	Anchors []anchor.Quote

	// Name is an optional user-assigned label.
	Name string

	// Children are the sub-provisions, in declared order.
	Children []Child
}

// Content returns this node's own text, without children.
func (e *Enactment) Content() string {
	if e.TextVersion == nil {
		return ""
	}
	return e.TextVersion.Content
}

// PaddedLength is the length of this node's own content plus one
// character for the space before the next piece of text, or zero for a
// node with no content of its own.
func (e *Enactment) PaddedLength() int {
	if c := e.Content(); c != "" {
		return len(c) + 1
	}
	return 0
}

// ResolvedChildren returns the loaded child nodes in declared order,
// skipping unresolved references.
func (e *Enactment) ResolvedChildren() []*Enactment {
	out := make([]*Enactment, 0, len(e.Children))
	for _, c := range e.Children {
		if n, ok := c.Resolved(); ok {
			out = append(out, n)
		}
	}
	return out
}

// unresolvedRef finds the first unresolved child reference anywhere in
// the subtree, depth first.
func (e *Enactment) unresolvedRef() (string, bool) {
	for _, c := range e.Children {
		if ref := c.Ref(); ref != "" {
			return ref, true
		}
		if n, ok := c.Resolved(); ok {
			if ref, found := n.unresolvedRef(); found {
				return ref, true
			}
		}
	}
	return "", false
}

// Text returns the full text of the subtree: this node's content and
// each resolved child's text, space-joined. Returns an UnresolvedChild
// error when any descendant is only a path reference, because its text
// cannot be known.
func (e *Enactment) Text() (string, error) {
	if ref, found := e.unresolvedRef(); found {
		return "", &StructureError{
			Code:    ErrCodeUnresolvedChild,
			Message: fmt.Sprintf("full text requires loading child %q", ref),
			Node:    e.Node,
		}
	}
	return e.text(), nil
}

func (e *Enactment) text() string {
	parts := []string{e.Content()}
	for _, child := range e.ResolvedChildren() {
		if t := child.text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// treeLength is the subtree's total padded length: the offset unit a
// whole subtree occupies within an ancestor's flattened text.
func (e *Enactment) treeLength() int {
	length := e.PaddedLength()
	for _, child := range e.ResolvedChildren() {
		length += child.treeLength()
	}
	return length
}

// identifierPart returns the path segment at index, counting the empty
// segment before the leading slash as zero.
func (e *Enactment) identifierPart(index int) string {
	parts := strings.Split(e.Node, "/")
	if len(parts) < index+1 {
		return ""
	}
	return parts[index]
}

// Sovereign is the jurisdiction part of the citation path.
func (e *Enactment) Sovereign() string { return e.identifierPart(1) }

// Jurisdiction is a synonym for Sovereign.
func (e *Enactment) Jurisdiction() string { return e.Sovereign() }

// Code is the code part of the citation path.
func (e *Enactment) Code() string { return e.identifierPart(2) }

// Title is the title part of the citation path.
func (e *Enactment) Title() string { return e.identifierPart(3) }

// Section is the section part of the citation path.
func (e *Enactment) Section() string { return e.identifierPart(4) }

// IsFederal reports whether the provision is from a federal
// jurisdiction.
func (e *Enactment) IsFederal() bool { return e.Sovereign() == "us" }

// Level returns the level of code this provision belongs to, e.g.
// statute or regulation.
func (e *Enactment) Level() (cite.CodeLevel, error) {
	_, level, err := cite.IdentifyCode(e.Sovereign(), e.Code())
	return level, err
}

// AsCitation creates a citation to this provision. Only implemented
// for statutes; citation styles for other code levels differ too much
// to guess.
func (e *Enactment) AsCitation() (cite.Citation, error) {
	level, err := e.Level()
	if err != nil {
		return cite.Citation{}, err
	}
	if level != cite.LevelStatute {
		return cite.Citation{}, fmt.Errorf("citation serialization not implemented for %q provisions", level)
	}
	var revised *time.Time
	if e.KnownRevisionDate {
		d := e.StartDate
		revised = &d
	}
	return cite.NewCitation(e.Jurisdiction(), e.Code(), e.Title(), e.Section(), revised)
}

// CSLJSON serializes a citation to this provision in Citation Style
// Language JSON. Identifies the provision down to the section level
// only; deeper nodes cite their parent section.
func (e *Enactment) CSLJSON() ([]byte, error) {
	citation, err := e.AsCitation()
	if err != nil {
		return nil, err
	}
	return citation.CSLJSON()
}

// CrossReferences returns all outbound cross-references from this node
// and its resolved descendants.
func (e *Enactment) CrossReferences() []cite.CrossReference {
	refs := append([]cite.CrossReference(nil), e.Citations...)
	for _, child := range e.ResolvedChildren() {
		refs = append(refs, child.CrossReferences()...)
	}
	return refs
}

// Copy returns a deep copy of the subtree. Selections are never stored
// on nodes, so the copy shares nothing with the original.
func (e *Enactment) Copy() *Enactment {
	out := *e
	if e.TextVersion != nil {
		tv := *e.TextVersion
		out.TextVersion = &tv
	}
	if e.EndDate != nil {
		d := *e.EndDate
		out.EndDate = &d
	}
	out.Citations = append([]cite.CrossReference(nil), e.Citations...)
	out.Anchors = append([]anchor.Quote(nil), e.Anchors...)
	out.Children = make([]Child, len(e.Children))
	for i, c := range e.Children {
		if n, ok := c.Resolved(); ok {
			out.Children[i] = ResolvedChild(n.Copy())
		} else {
			out.Children[i] = c
		}
	}
	return &out
}

// String implements fmt.Stringer.
func (e *Enactment) String() string {
	return fmt.Sprintf("%s (%s)", e.Node, e.StartDate.Format("2006-01-02"))
}

// makeSelection canonicalizes a Selection against the subtree text.
func (e *Enactment) makeSelection(sel anchor.Selection) (anchor.Set, error) {
	text, err := e.Text()
	if err != nil {
		return anchor.Set{}, err
	}
	return anchor.Resolve(sel, text)
}

// Select resolves a selector against the subtree text and returns a
// new Passage pairing this Enactment with the resulting selection.
func (e *Enactment) Select(sel anchor.Selection) (*Passage, error) {
	set, err := e.makeSelection(sel)
	if err != nil {
		return nil, err
	}
	return &Passage{enactment: e, selection: set}, nil
}

// SelectAll returns a Passage selecting the subtree's full text.
func (e *Enactment) SelectAll() (*Passage, error) {
	return e.Select(anchor.SelectAll())
}

// GetString resolves a selector and returns the selected text, with
// gaps rendered as an ellipsis.
func (e *Enactment) GetString(sel anchor.Selection) (string, error) {
	p, err := e.Select(sel)
	if err != nil {
		return "", err
	}
	return p.SelectedText()
}

// TextSequence renders the whole subtree text as a single-fragment
// sequence, treating an unselected Enactment as fully selected for
// comparison purposes.
func (e *Enactment) TextSequence(includeGaps bool) (anchor.Sequence, error) {
	p, err := e.SelectAll()
	if err != nil {
		return anchor.Sequence{}, err
	}
	return p.TextSequence(includeGaps)
}

// Means reports whether this provision's full text has the same
// meaning as other's selected text.
func (e *Enactment) Means(other TextSource) (bool, error) {
	return Means(e, other)
}

// Implies reports whether this provision's full text contains at least
// all the selected text of other.
func (e *Enactment) Implies(other TextSource) (bool, error) {
	return Implies(e, other)
}
