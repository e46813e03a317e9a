package enact

import (
	"fmt"
	"strings"

	"github.com/lexanchor/lexanchor/internal/anchor"
)

// isAncestorPath reports whether citation path a is b or a structural
// ancestor of b. Prefix checks are segment-aware: "/us/usc/t17/s1" is
// not an ancestor of "/us/usc/t17/s10".
func isAncestorPath(a, b string) bool {
	return a == b || strings.HasPrefix(b, a+"/")
}

// Add combines the selected text of two passages into a new passage,
// leaving both inputs untouched. One passage's citation path must be
// the other's, or a structural descendant of it; anything else is a
// StructuralMismatch error.
//
// When the descendant's node carries the same text in both trees, the
// selections are simply unioned. When the text differs (a different
// historical version at the same citation), the incoming selection is
// re-anchored: converted to quote selectors against its own text and
// resolved against this tree's text, failing with a ReanchorFailed
// error if any quoted text is no longer uniquely present.
func (p *Passage) Add(other *Passage) (*Passage, error) {
	switch {
	case isAncestorPath(p.Node(), other.Node()):
		return p.addAtIncludedNode(other)
	case isAncestorPath(other.Node(), p.Node()):
		return other.addAtIncludedNode(p)
	default:
		return nil, &StructureError{
			Code:      ErrCodeStructuralMismatch,
			Message:   "cannot add selected text from two enactments when neither is a descendant of the other",
			Node:      p.Node(),
			OtherNode: other.Node(),
		}
	}
}

// addAtIncludedNode merges other, whose citation path is p's or a
// descendant of p's, into a copy of p.
func (p *Passage) addAtIncludedNode(other *Passage) (*Passage, error) {
	if implied, err := p.Implies(other); err != nil {
		return nil, err
	} else if implied {
		return p.Copy(), nil
	}

	combined := p.Copy()
	node, offset, found := findNode(combined.enactment, other.Node(), 0)
	if !found {
		return nil, &StructureError{
			Code:      ErrCodeStructuralMismatch,
			Message:   fmt.Sprintf("unable to find node %s (dated %s) among the descendants", other.Node(), other.StartDate().Format("2006-01-02")),
			Node:      p.Node(),
			OtherNode: other.Node(),
		}
	}

	nodeText, err := node.Text()
	if err != nil {
		return nil, err
	}
	otherText, err := other.Text()
	if err != nil {
		return nil, err
	}

	incoming := other.selection
	if nodeText != otherText {
		incoming, err = reanchor(other.selection, otherText, nodeText)
		if err != nil {
			return nil, &StructureError{
				Code:      ErrCodeReanchorFailed,
				Message:   fmt.Sprintf("unable to place the selected text (dated %s) at citation %s", other.StartDate().Format("2006-01-02"), other.Node()),
				Node:      node.Node,
				OtherNode: other.Node(),
				Err:       err,
			}
		}
	}

	text, err := combined.Text()
	if err != nil {
		return nil, err
	}
	combined.selection = combined.selection.
		Union(incoming.Shift(offset)).
		AddMargin(text, marginWidth)
	return combined, nil
}

// findNode walks the child lists toward path, accumulating the offset
// of the target subtree's text within the root's flattened text.
func findNode(e *Enactment, path string, offset int) (*Enactment, int, bool) {
	if e.Node == path {
		return e, offset, true
	}
	childOffset := offset + e.PaddedLength()
	for _, child := range e.ResolvedChildren() {
		if isAncestorPath(child.Node, path) {
			return findNode(child, path, childOffset)
		}
		childOffset += child.treeLength()
	}
	return nil, 0, false
}

// reanchor converts each selected range to a quote selector against
// the text it was selected from, then resolves the quotes against a
// different version of that text. Fails when any quoted text is absent
// from, or ambiguous in, the new version.
func reanchor(selection anchor.Set, fromText, toText string) (anchor.Set, error) {
	var spans []anchor.Span
	for _, quote := range selection.AsQuotes(fromText) {
		sp, err := quote.Find(toText)
		if err != nil {
			return anchor.Set{}, err
		}
		spans = append(spans, sp)
	}
	return anchor.NewSet(spans...), nil
}

// Consolidate reduces a list of passages to a minimal set by
// repeatedly merging any pair that can combine, until no further pair
// merges. The result depends on merge order only in its arrangement,
// not in the text it covers; the reduction always converges.
func Consolidate(passages []*Passage) []*Passage {
	pool := append([]*Passage(nil), passages...)
	var consolidated []*Passage
	for len(pool) > 0 {
		left := pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		merged := false
		for i, right := range pool {
			combined, err := left.Add(right)
			if err != nil {
				continue
			}
			pool = append(pool[:i], pool[i+1:]...)
			pool = append(pool, combined)
			merged = true
			break
		}
		if !merged {
			consolidated = append(consolidated, left)
		}
	}
	return consolidated
}

// Group is a collection of passages kept free of overlapping
// citations: members that can merge are consolidated on construction
// and on every addition.
type Group struct {
	passages []*Passage
}

// NewGroup builds a consolidated group from the given passages.
func NewGroup(passages ...*Passage) Group {
	return Group{passages: Consolidate(passages)}
}

// Passages returns the group's members.
func (g Group) Passages() []*Passage {
	return append([]*Passage(nil), g.passages...)
}

// Len returns the number of members.
func (g Group) Len() int {
	return len(g.passages)
}

// Add returns a new group holding both groups' members, consolidated.
func (g Group) Add(other Group) Group {
	return NewGroup(append(g.Passages(), other.passages...)...)
}
