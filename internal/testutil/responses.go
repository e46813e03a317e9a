package testutil

import _ "embed"

// responsesJSON holds fixture API responses keyed by citation path,
// then by version date, in the shape client.NewRepository expects.
//
//go:embed testdata/responses.json
var responsesJSON []byte

// ResponsesJSON returns fixture API responses for building a local
// repository in tests. The caller gets a fresh copy each time.
func ResponsesJSON() []byte {
	out := make([]byte, len(responsesJSON))
	copy(out, responsesJSON)
	return out
}
