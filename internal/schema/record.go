// Package schema decodes raw provision records, as served by a
// legislation API or stored in JSON files, into enact values. Records
// are validated against an embedded CUE schema before decoding.
package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lexanchor/lexanchor/internal/anchor"
	"github.com/lexanchor/lexanchor/internal/cite"
	"github.com/lexanchor/lexanchor/internal/enact"
)

// TextVersionRecord is the wire shape of a provision's text version.
type TextVersionRecord struct {
	ID      int    `json:"id,omitempty"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content"`
}

// SelectorRecord is the wire shape of a single text selector: a quote
// (exact/prefix/suffix or split-marker text) or a position range.
type SelectorRecord struct {
	Exact  string `json:"exact,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty"`
	Text   string `json:"text,omitempty"`
	Start  int    `json:"start,omitempty"`
	End    int    `json:"end,omitempty"`
}

// isPosition reports whether the selector is a position range rather
// than a quote.
func (s SelectorRecord) isPosition() bool {
	return s.Exact == "" && s.Prefix == "" && s.Suffix == "" && s.Text == "" && s.End > 0
}

// quote converts a quote-shaped selector to an anchor.Quote.
func (s SelectorRecord) quote() anchor.Quote {
	if s.Text != "" {
		return anchor.ParseQuote(s.Text)
	}
	return anchor.Quote{Prefix: s.Prefix, Exact: s.Exact, Suffix: s.Suffix}
}

// SelectionRecord is the wire shape of a node's "selection" field:
// a boolean, one selector object, or a list of selectors and
// split-marker strings. The zero value means the field was absent.
type SelectionRecord struct {
	set       bool
	all       bool
	none      bool
	selectors []SelectorRecord
}

// UnmarshalJSON accepts true/false, a selector object, or a list.
func (r *SelectionRecord) UnmarshalJSON(data []byte) error {
	r.set = true
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		r.all = b
		r.none = !b
		return nil
	}
	var one SelectorRecord
	if err := json.Unmarshal(data, &one); err == nil {
		r.selectors = []SelectorRecord{one}
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("selection must be a boolean, selector, or list of selectors")
	}
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			r.selectors = append(r.selectors, SelectorRecord{Text: s})
			continue
		}
		var sel SelectorRecord
		if err := json.Unmarshal(item, &sel); err != nil {
			return fmt.Errorf("decoding selector: %w", err)
		}
		r.selectors = append(r.selectors, sel)
	}
	return nil
}

// MarshalJSON writes the boolean or list form back out. An absent
// selection marshals as true, which reads back identically.
func (r SelectionRecord) MarshalJSON() ([]byte, error) {
	switch {
	case !r.set, r.all:
		return []byte("true"), nil
	case r.none:
		return []byte("false"), nil
	default:
		return json.Marshal(r.selectors)
	}
}

// resolve canonicalizes the selection against text. An absent field
// selects the full text, matching the API convention that a provision
// cited without selectors is cited in full.
func (r SelectionRecord) resolve(text string) (anchor.Set, error) {
	switch {
	case !r.set, r.all:
		return anchor.Resolve(anchor.SelectAll(), text)
	case r.none:
		return anchor.Set{}, nil
	}
	var quotes []anchor.Quote
	var spans []anchor.Span
	for _, sel := range r.selectors {
		if sel.isPosition() {
			sp, err := anchor.NewSpan(sel.Start, sel.End)
			if err != nil {
				return anchor.Set{}, err
			}
			spans = append(spans, sp)
			continue
		}
		quotes = append(quotes, sel.quote())
	}
	set, err := anchor.Resolve(anchor.Quotes(quotes...), text)
	if err != nil {
		return anchor.Set{}, err
	}
	if len(spans) > 0 {
		spanSet, err := anchor.Resolve(anchor.Spans(spans...), text)
		if err != nil {
			return anchor.Set{}, err
		}
		set = set.Union(spanSet)
	}
	return set, nil
}

// ChildRecord is one entry of a "children" list: either a nested
// provision record or a bare citation-path string.
type ChildRecord struct {
	Ref    string
	Record *Record
}

// UnmarshalJSON accepts a string reference or a nested record.
func (c *ChildRecord) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Ref = s
		return nil
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decoding child provision: %w", err)
	}
	c.Record = &rec
	return nil
}

// MarshalJSON writes the reference string or the nested record.
func (c ChildRecord) MarshalJSON() ([]byte, error) {
	if c.Record != nil {
		return json.Marshal(c.Record)
	}
	return json.Marshal(c.Ref)
}

// Record is the raw record shape for one provision node.
type Record struct {
	Node              string                 `json:"node"`
	Heading           string                 `json:"heading"`
	Content           string                 `json:"content,omitempty"`
	TextVersion       *TextVersionRecord     `json:"text_version,omitempty"`
	StartDate         string                 `json:"start_date"`
	EndDate           string                 `json:"end_date,omitempty"`
	KnownRevisionDate *bool                  `json:"known_revision_date,omitempty"`
	Name              string                 `json:"name,omitempty"`
	URL               string                 `json:"url,omitempty"`
	Parent            string                 `json:"parent,omitempty"`
	Selection         SelectionRecord        `json:"selection,omitempty"`
	Anchors           []SelectorRecord       `json:"anchors,omitempty"`
	Citations         []cite.CrossReference  `json:"citations,omitempty"`
	Children          []ChildRecord          `json:"children,omitempty"`

	// Selector fields accepted at the top level of a record, moved
	// into Selection before decoding.
	Exact  string `json:"exact,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty"`
	Start  int    `json:"start,omitempty"`
	End    int    `json:"end,omitempty"`
}

// normalize folds top-level selector fields into the selection list.
func (r *Record) normalize() {
	if r.Exact != "" || r.Prefix != "" || r.Suffix != "" || r.End > 0 {
		r.Selection.set = true
		r.Selection.all = false
		r.Selection.none = false
		r.Selection.selectors = append(r.Selection.selectors, SelectorRecord{
			Exact:  r.Exact,
			Prefix: r.Prefix,
			Suffix: r.Suffix,
			Start:  r.Start,
			End:    r.End,
		})
		r.Exact, r.Prefix, r.Suffix, r.Start, r.End = "", "", "", 0, 0
	}
	for i := range r.Children {
		if r.Children[i].Record != nil {
			r.Children[i].Record.normalize()
		}
	}
}

// DecodeRecord validates raw provision JSON against the schema and
// unmarshals it.
func DecodeRecord(data []byte) (*Record, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding provision record: %w", err)
	}
	rec.normalize()
	return &rec, nil
}

const dateLayout = "2006-01-02"

// Enactment builds the provision tree the record describes, resolving
// nested children recursively and keeping bare path strings as
// unresolved references.
func (r *Record) Enactment() (*enact.Enactment, error) {
	start := time.Now().UTC().Truncate(24 * time.Hour)
	if r.StartDate != "" {
		var err error
		start, err = time.Parse(dateLayout, r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("parsing start_date of %s: %w", r.Node, err)
		}
	}
	e := &enact.Enactment{
		Node:              r.Node,
		Heading:           r.Heading,
		StartDate:         start,
		KnownRevisionDate: r.KnownRevisionDate == nil || *r.KnownRevisionDate,
		Citations:         append([]cite.CrossReference(nil), r.Citations...),
		Name:              r.Name,
	}
	if r.EndDate != "" {
		end, err := time.Parse(dateLayout, r.EndDate)
		if err != nil {
			return nil, fmt.Errorf("parsing end_date of %s: %w", r.Node, err)
		}
		e.EndDate = &end
	}
	switch {
	case r.TextVersion != nil:
		tv, err := enact.NewTextVersion(r.TextVersion.Content)
		if err != nil {
			return nil, fmt.Errorf("text_version of %s: %w", r.Node, err)
		}
		tv.URL = r.TextVersion.URL
		tv.ID = r.TextVersion.ID
		e.TextVersion = tv
	case r.Content != "":
		tv, _ := enact.NewTextVersion(r.Content)
		tv.URL = r.URL
		e.TextVersion = tv
	}
	for _, a := range r.Anchors {
		e.Anchors = append(e.Anchors, a.quote())
	}
	for _, c := range r.Children {
		if c.Record != nil {
			child, err := c.Record.Enactment()
			if err != nil {
				return nil, err
			}
			e.Children = append(e.Children, enact.ResolvedChild(child))
			continue
		}
		e.Children = append(e.Children, enact.RefChild(c.Ref))
	}
	return e, nil
}

// Passage builds the provision tree and applies the records' selection
// fields, node by node, producing a Passage whose selection is in
// flattened-subtree coordinates. A node without a selection field is
// selected in full.
func (r *Record) Passage() (*enact.Passage, error) {
	e, err := r.Enactment()
	if err != nil {
		return nil, err
	}
	tree, err := r.treeSelection(e)
	if err != nil {
		return nil, err
	}
	return tree.Passage()
}

// treeSelection resolves each record's selection against its own
// node's content, pairing the records with the freshly built tree.
func (r *Record) treeSelection(e *enact.Enactment) (*enact.TreeSelection, error) {
	local, err := r.Selection.resolve(e.Content())
	if err != nil {
		return nil, fmt.Errorf("selection at %s: %w", r.Node, err)
	}
	tree := &enact.TreeSelection{Node: e, Local: local}
	resolved := e.ResolvedChildren()
	idx := 0
	for _, c := range r.Children {
		if c.Record == nil {
			continue
		}
		childTree, err := c.Record.treeSelection(resolved[idx])
		if err != nil {
			return nil, err
		}
		tree.Children = append(tree.Children, childTree)
		idx++
	}
	return tree, nil
}
