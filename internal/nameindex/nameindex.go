// Package nameindex maintains an index of raw enactment records keyed
// by user-assigned name, so that input JSON can reference a provision
// by name instead of repeating the whole record. Named records are
// collapsed to name strings during collection and expanded again on
// read.
package nameindex

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Record is a raw enactment record, decoded JSON shape.
type Record = map[string]any

// Index is an insertion-ordered index of records by name.
type Index struct {
	names   []string
	records map[string]Record
}

// New returns an empty index.
func New() *Index {
	return &Index{records: make(map[string]Record)}
}

// EnsureName gives an unnamed record a generated label so it can be
// indexed, and returns the record's name.
func EnsureName(rec Record) string {
	if name, ok := rec["name"].(string); ok && name != "" {
		return name
	}
	name := fmt.Sprintf("enactment-%s", uuid.NewString()[:8])
	rec["name"] = name
	return name
}

// Insert adds a record under its name. A record already present under
// the same name is kept; only any new anchors are merged in, so that a
// later mention cannot silently redefine an earlier one.
func (ix *Index) Insert(rec Record) string {
	name := EnsureName(rec)
	if existing, ok := ix.records[name]; ok {
		mergeAnchors(existing, rec)
		return name
	}
	stored := copyRecord(rec)
	delete(stored, "name")
	ix.records[name] = stored
	ix.names = append(ix.names, name)
	return name
}

// Replace stores rec under name, overwriting any existing record but
// keeping its place in the insertion order.
func (ix *Index) Replace(name string, rec Record) {
	stored := copyRecord(rec)
	delete(stored, "name")
	if _, ok := ix.records[name]; !ok {
		ix.names = append(ix.names, name)
	}
	ix.records[name] = stored
}

// Get returns a copy of the record stored under name, with the name
// restored as a field.
func (ix *Index) Get(name string) (Record, error) {
	stored, ok := ix.records[name]
	if !ok {
		return nil, fmt.Errorf("name %q not found in the index of mentioned enactments", name)
	}
	out := copyRecord(stored)
	out["name"] = name
	return out, nil
}

// Has reports whether a record is stored under name.
func (ix *Index) Has(name string) bool {
	_, ok := ix.records[name]
	return ok
}

// Names returns the indexed names in insertion order.
func (ix *Index) Names() []string {
	return append([]string(nil), ix.names...)
}

// SortedByLength returns the names longest first, so that a name
// nearer the front cannot be a substring of a later one.
func (ix *Index) SortedByLength() []string {
	out := ix.Names()
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// mergeAnchors appends any anchors of src that dst does not already
// carry.
func mergeAnchors(dst, src Record) {
	srcAnchors, _ := src["anchors"].([]any)
	if len(srcAnchors) == 0 {
		return
	}
	dstAnchors, _ := dst["anchors"].([]any)
	for _, a := range srcAnchors {
		if !containsAnchor(dstAnchors, a) {
			dstAnchors = append(dstAnchors, copyValue(a))
		}
	}
	dst["anchors"] = dstAnchors
}

func containsAnchor(anchors []any, anchor any) bool {
	for _, existing := range anchors {
		if fmt.Sprintf("%v", existing) == fmt.Sprintf("%v", anchor) {
			return true
		}
	}
	return false
}

// Collect walks decoded JSON data, indexing every record that carries
// a name and collapsing it to its name string in place of the full
// record. Returns the collapsed data and the index.
func Collect(data any) (any, *Index) {
	ix := New()
	collapsed := ix.collect(data)
	return collapsed, ix
}

func (ix *Index) collect(data any) any {
	switch v := data.(type) {
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = ix.collect(item)
		}
		return out
	case Record:
		out := make(Record, len(v))
		for key, value := range v {
			out[key] = ix.collect(value)
		}
		if _, named := out["name"]; named {
			return ix.Insert(out)
		}
		return out
	default:
		return data
	}
}

// Expand walks decoded JSON data, replacing every string that names an
// indexed record with a copy of that record, recursively. Strings that
// match no indexed name pass through untouched, since a bare string
// may also be an unresolved citation-path reference.
func (ix *Index) Expand(data any) any {
	switch v := data.(type) {
	case string:
		if ix.Has(v) {
			rec, _ := ix.Get(v)
			return ix.Expand(any(rec))
		}
		return v
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = ix.Expand(item)
		}
		return out
	case Record:
		out := make(Record, len(v))
		for key, value := range v {
			if key == "children" || key == "enactment" {
				out[key] = ix.Expand(value)
			} else {
				out[key] = value
			}
		}
		return out
	default:
		return data
	}
}

func copyRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case Record:
		return copyRecord(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
