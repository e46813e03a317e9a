// Package client retrieves raw provision records from a legislation
// API and decodes them into enact values. The selection engine itself
// never performs retrieval; this package is the collaborator that
// feeds it.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/lexanchor/lexanchor/internal/enact"
	"github.com/lexanchor/lexanchor/internal/nameindex"
	"github.com/lexanchor/lexanchor/internal/schema"
)

// DefaultEndpoint is the public legislation API.
const DefaultEndpoint = "https://authorityspoke.com/api/v1"

// EnvToken names the environment variable holding the API token.
// NewFromEnv also reads it from a .env file in the working directory.
const EnvToken = "LEXANCHOR_API_TOKEN"

// Fetcher retrieves the raw record for a provision at a citation path,
// optionally as of a version date in ISO form. Implemented by Client
// (live API) and Repository (local fixtures).
type Fetcher interface {
	Fetch(ctx context.Context, path, date string) (json.RawMessage, error)
}

// NormalizePath returns the citation path with exactly one leading
// slash and no trailing slash.
func NormalizePath(path string) string {
	return "/" + strings.Trim(path, "/")
}

// Client fetches provision records over HTTP, caching responses when a
// cache is attached.
type Client struct {
	endpoint string
	token    string
	httpc    *http.Client
	cache    *Cache
	log      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint sets the API base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = strings.TrimRight(endpoint, "/") }
}

// WithToken sets the API token. A leading "Token " marker is stripped.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimPrefix(token, "Token ") }
}

// WithCache attaches a response cache.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client for the default endpoint.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		httpc:    http.DefaultClient,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromEnv creates a Client with its token taken from the
// environment, loading a .env file first when one exists.
func NewFromEnv(opts ...Option) *Client {
	_ = godotenv.Load()
	token := os.Getenv(EnvToken)
	return New(append([]Option{WithToken(token)}, opts...)...)
}

// Fetch retrieves the raw record for the provision at path. A
// non-empty date asks for the version in effect on that ISO date; when
// two versions overlap, the API returns the one that became effective
// later.
func (c *Client) Fetch(ctx context.Context, path, date string) (json.RawMessage, error) {
	path = NormalizePath(path)
	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, path, date)
		if err != nil {
			return nil, err
		}
		if ok {
			c.log.Debug("cache hit", "path", path, "date", date)
			return body, nil
		}
	}

	query := c.endpoint + path
	if date != "" {
		query = fmt.Sprintf("%s@%s", query, date)
	}
	requestID := uuid.NewString()
	c.log.Debug("fetching provision", "path", path, "date", date, "request_id", requestID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, &ClientError{Code: ErrCodeRequestFailed, Message: err.Error(), Path: path, Date: date}
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &ClientError{Code: ErrCodeRequestFailed, Message: err.Error(), Path: path, Date: date}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &ClientError{Code: ErrCodePathNotFound, Message: "no enacted text found", Path: path, Date: date}
	case resp.StatusCode != http.StatusOK:
		return nil, &ClientError{
			Code:    ErrCodeRequestFailed,
			Message: fmt.Sprintf("unexpected status %s", resp.Status),
			Path:    path,
			Date:    date,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Code: ErrCodeRequestFailed, Message: err.Error(), Path: path, Date: date}
	}
	if c.cache != nil {
		if err := c.cache.Put(ctx, path, date, requestID, body); err != nil {
			c.log.Warn("cache write failed", "path", path, "error", err)
		}
	}
	return body, nil
}

// Read fetches and decodes the provision tree at path.
func Read(ctx context.Context, f Fetcher, path, date string) (*enact.Enactment, error) {
	raw, err := f.Fetch(ctx, path, date)
	if err != nil {
		return nil, err
	}
	rec, err := schema.DecodeRecord(raw)
	if err != nil {
		return nil, err
	}
	return rec.Enactment()
}

// ReadPassage fetches the provision tree at path and applies any
// selection fields carried by the record, selecting the full text when
// there are none.
func ReadPassage(ctx context.Context, f Fetcher, path, date string) (*enact.Passage, error) {
	raw, err := f.Fetch(ctx, path, date)
	if err != nil {
		return nil, err
	}
	rec, err := schema.DecodeRecord(raw)
	if err != nil {
		return nil, err
	}
	return rec.Passage()
}

// ReadFromJSON builds passages from imported JSON: a single record or
// a list. Records may reference each other by name; references are
// expanded from the name index. A named record that fails schema
// validation is completed by fetching its citation path, with the
// fetched fields taking precedence.
func ReadFromJSON(ctx context.Context, f Fetcher, data []byte) ([]*enact.Passage, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decoding enactment JSON: %w", err)
	}
	collapsed, index := nameindex.Collect(decoded)

	for _, name := range index.Names() {
		rec, err := index.Get(name)
		if err != nil {
			return nil, err
		}
		updated, err := completeRecord(ctx, f, rec)
		if err != nil {
			return nil, err
		}
		index.Replace(name, updated)
	}

	expanded := index.Expand(collapsed)
	items, ok := expanded.([]any)
	if !ok {
		items = []any{expanded}
	}
	passages := make([]*enact.Passage, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		rec, err := schema.DecodeRecord(raw)
		if err != nil {
			return nil, err
		}
		p, err := rec.Passage()
		if err != nil {
			return nil, err
		}
		passages = append(passages, p)
	}
	return passages, nil
}

// completeRecord fills in a partial record by fetching the record at
// its citation path when the local data does not satisfy the schema.
// Fields from the API overwrite the local ones.
func completeRecord(ctx context.Context, f Fetcher, rec nameindex.Record) (nameindex.Record, error) {
	node, _ := rec["node"].(string)
	if node == "" {
		return nil, fmt.Errorf(`record %v must contain a "node" field with a citation path, for example "/us/const/amendment/IV"`, rec["name"])
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	if schema.Validate(raw) == nil {
		return rec, nil
	}

	date, _ := rec["start_date"].(string)
	fetched, err := f.Fetch(ctx, node, date)
	if err != nil {
		return nil, err
	}
	var fromAPI nameindex.Record
	if err := json.Unmarshal(fetched, &fromAPI); err != nil {
		return nil, fmt.Errorf("decoding fetched record for %s: %w", node, err)
	}
	for key, value := range fromAPI {
		rec[key] = value
	}
	return rec, nil
}
