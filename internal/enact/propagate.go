package enact

import (
	"fmt"

	"github.com/lexanchor/lexanchor/internal/anchor"
)

// TreeSelection is the result of distributing a flat selection across a
// provision tree: each node paired with the spans assigned to its own
// content, children in declared order.
type TreeSelection struct {
	// Node is the provision this entry describes.
	Node *Enactment

	// Local is the selection over Node's own content, in node-local
	// coordinates.
	Local anchor.Set

	// Children are the entries for Node's resolved children.
	Children []*TreeSelection
}

// Propagate pushes a flat selection, in flattened-subtree coordinates,
// down through the tree rooted at e. Each node claims the ranges that
// fall within its own content, splitting any range that straddles a
// node boundary; whatever no node claims describes text outside the
// structure and is reported as a SelectorUnused error.
//
// Propagating and then rendering the TreeSelection yields the same
// sequence as applying the selection to the flattened text directly.
func Propagate(e *Enactment, set anchor.Set) (*TreeSelection, error) {
	if _, err := e.Text(); err != nil {
		return nil, err
	}
	sel, leftover := propagateSpans(e, set.Spans())
	if len(leftover) > 0 {
		sp := leftover[0]
		return nil, &anchor.SelectionError{
			Code:    anchor.ErrCodeSelectorUnused,
			Message: fmt.Sprintf("selection describes text beyond the structure of %s", e.Node),
			Span:    &sp,
		}
	}
	return sel, nil
}

// propagateSpans assigns the lowest-start ranges to this node until no
// remaining range begins inside its content, then offsets the rest
// into the first child's coordinate space and lets each child in turn
// consume its share. Returns whatever the subtree did not claim,
// offset into the coordinate space of the next sibling.
func propagateSpans(e *Enactment, spans []anchor.Span) (*TreeSelection, []anchor.Span) {
	contentLen := len(e.Content())
	queue := append([]anchor.Span(nil), spans...)
	var local []anchor.Span

	for len(queue) > 0 && queue[0].Start < contentLen {
		cur := queue[0]
		queue = queue[1:]
		if cur.End <= contentLen {
			local = append(local, cur)
			continue
		}
		// Straddles the boundary: claim the local part, and push the
		// rest back, skipping the joining character.
		local = append(local, anchor.Span{Start: cur.Start, End: contentLen})
		if cur.End > e.PaddedLength() {
			queue = append([]anchor.Span{{Start: e.PaddedLength(), End: cur.End}}, queue...)
		}
	}

	sel := &TreeSelection{
		Node:  e,
		Local: anchor.NewSet(local...).AddMargin(e.Content(), marginWidth),
	}

	rest := anchor.NewSet(queue...).Shift(-e.PaddedLength()).Spans()
	for _, child := range e.ResolvedChildren() {
		childSel, leftover := propagateSpans(child, rest)
		sel.Children = append(sel.Children, childSel)
		rest = leftover
	}
	return sel, rest
}

// Flatten converts the per-node selections back to a single Set in
// flattened-subtree coordinates. Flatten is the inverse of Propagate.
// The separator character between adjacent fully-selected nodes
// belongs to neither node, so the result may hold one span per node;
// Passage bridges those gaps.
func (t *TreeSelection) Flatten() anchor.Set {
	set, _ := t.flatten(0)
	return set
}

// Passage converts the tree selection into a Passage over the root
// provision. Selections that ran through a node boundary are rejoined
// across the separator character, so a tree selected in full node by
// node reads as one unbroken passage.
func (t *TreeSelection) Passage() (*Passage, error) {
	text, err := t.Node.Text()
	if err != nil {
		return nil, err
	}
	return NewPassage(t.Node, t.Flatten().AddMargin(text, marginWidth))
}

func (t *TreeSelection) flatten(offset int) (anchor.Set, int) {
	out := t.Local.Shift(offset)
	next := offset + t.Node.PaddedLength()
	for _, child := range t.Children {
		var childSet anchor.Set
		childSet, next = child.flatten(next)
		out = out.Union(childSet)
	}
	return out, next
}

// Sequence renders the tree selection in document order: each node's
// own selected ranges as fragments, then each child's rendering, with
// adjacent gaps merged. A fragment that reaches the end of a node's
// content joins a fragment starting a child's content across the
// single separator character.
func (t *TreeSelection) Sequence() anchor.Sequence {
	r := t.render()
	return anchor.NewSequence(r.frags...)
}

// rendered carries a partial rendering plus the boundary facts needed
// to join it with a sibling's rendering.
type rendered struct {
	frags       []anchor.Fragment
	headAtStart bool // first element is a fragment starting at offset 0
	tailAtEnd   bool // last element is a fragment reaching the text's end
	hasText     bool // subtree contributes any text at all
}

func (t *TreeSelection) render() rendered {
	var r rendered
	content := t.Node.Content()
	if content != "" {
		r.hasText = true
		spans := t.Local.Spans()
		if len(spans) == 0 {
			r.frags = append(r.frags, anchor.Fragment{Gap: true})
		} else {
			r.frags = append(r.frags, t.Local.AsSequence(content, true).Fragments()...)
			r.headAtStart = spans[0].Start == 0
			r.tailAtEnd = spans[len(spans)-1].End >= len(content)
		}
	}

	for _, child := range t.Children {
		cr := child.render()
		if !cr.hasText {
			continue
		}
		if !r.hasText {
			r = cr
			continue
		}
		if r.tailAtEnd && cr.headAtStart {
			// The selection ran through the node boundary; rejoin the
			// two halves around the separator.
			last := len(r.frags) - 1
			r.frags[last].Text = r.frags[last].Text + " " + cr.frags[0].Text
			r.frags = append(r.frags, cr.frags[1:]...)
		} else {
			r.frags = append(r.frags, cr.frags...)
		}
		r.tailAtEnd = cr.tailAtEnd
	}
	return r
}
