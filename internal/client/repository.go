package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Repository serves provision records from local fixture data instead
// of the network, for tests and offline use. Fixtures are keyed by
// citation path, then by ISO start date, mirroring how the API stores
// versions.
type Repository struct {
	responses map[string]map[string]json.RawMessage
}

// NewRepository builds a Repository from fixture JSON of shape
// {path: {date: record}}.
func NewRepository(data []byte) (*Repository, error) {
	var responses map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("decoding fixture responses: %w", err)
	}
	return &Repository{responses: responses}, nil
}

// LoadRepository reads fixture JSON from a file.
func LoadRepository(path string) (*Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture file: %w", err)
	}
	return NewRepository(data)
}

// Fetch implements Fetcher against the fixture data: it finds the
// deepest fixture entry containing the queried path, picks the latest
// version not after the queried date, and digs the queried node out of
// that version's subtree.
func (r *Repository) Fetch(ctx context.Context, path, date string) (json.RawMessage, error) {
	_ = ctx
	path = NormalizePath(path)

	versions := r.closestEntry(path)
	if versions == nil {
		return nil, &ClientError{Code: ErrCodePathNotFound, Message: "no enacted text found", Path: path, Date: date}
	}

	selected := ""
	for versionDate := range versions {
		if date != "" && versionDate > date {
			continue
		}
		if versionDate > selected {
			selected = versionDate
		}
	}
	if selected == "" {
		return nil, &ClientError{Code: ErrCodeDateNotFound, Message: "no enacted text found on or before date", Path: path, Date: date}
	}

	found := searchTree(versions[selected], path)
	if found == nil {
		return nil, &ClientError{Code: ErrCodePathNotFound, Message: "no enacted text found", Path: path, Date: date}
	}
	return found, nil
}

// closestEntry returns the versions stored for path, or for the
// deepest fixture entry that is an ancestor of path.
func (r *Repository) closestEntry(path string) map[string]json.RawMessage {
	if versions, ok := r.responses[path]; ok {
		return versions
	}
	best := ""
	for entry := range r.responses {
		if strings.HasPrefix(path, entry+"/") && len(entry) > len(best) {
			best = entry
		}
	}
	if best == "" {
		return nil
	}
	return r.responses[best]
}

// treeNode is the partial record shape needed to walk a subtree.
type treeNode struct {
	Node     string            `json:"node"`
	Children []json.RawMessage `json:"children"`
}

// searchTree descends from branch to the record whose node is path.
func searchTree(branch json.RawMessage, path string) json.RawMessage {
	var node treeNode
	if err := json.Unmarshal(branch, &node); err != nil {
		return nil
	}
	if node.Node == path {
		return branch
	}
	for _, child := range node.Children {
		var childNode treeNode
		if err := json.Unmarshal(child, &childNode); err != nil {
			continue // bare path reference, nothing to descend into
		}
		if childNode.Node == path || strings.HasPrefix(path, childNode.Node+"/") {
			return searchTree(child, path)
		}
	}
	return nil
}
