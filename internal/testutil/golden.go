package testutil

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// AssertGolden marshals snapshot as indented JSON and compares it
// against testdata/golden/{name}.golden in the calling package.
//
// To regenerate golden files, run the tests with -update.
func AssertGolden(t *testing.T, name string, snapshot any) {
	t.Helper()
	data, err := json.MarshalIndent(snapshot, "", "  ")
	require.NoError(t, err)
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, append(data, '\n'))
}
