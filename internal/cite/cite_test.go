package cite_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexanchor/lexanchor/internal/cite"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func TestCodeLevelString(t *testing.T) {
	assert.Equal(t, "constitution", cite.LevelConstitution.String())
	assert.Equal(t, "statute", cite.LevelStatute.String())
	assert.Equal(t, "regulation", cite.LevelRegulation.String())
	assert.Equal(t, "court rule", cite.LevelCourtRule.String())
	assert.Equal(t, "CodeLevel(0)", cite.CodeLevel(0).String())
}

func TestIdentifyCode(t *testing.T) {
	name, level, err := cite.IdentifyCode("us", "usc")
	require.NoError(t, err)
	assert.Equal(t, "U.S. Code", name)
	assert.Equal(t, cite.LevelStatute, level)

	name, level, err = cite.IdentifyCode("us-ca", "roc")
	require.NoError(t, err)
	assert.Equal(t, "Cal. Rules of Court", name)
	assert.Equal(t, cite.LevelCourtRule, level)
}

func TestIdentifyCodeUnknownJurisdiction(t *testing.T) {
	_, _, err := cite.IdentifyCode("fr", "code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"fr" is not a known jurisdiction`)
}

func TestIdentifyCodeUnknownCode(t *testing.T) {
	_, _, err := cite.IdentifyCode("us", "songs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"songs" is not a known code`)
}

func TestNewCitationNormalizesParts(t *testing.T) {
	revised := date(t, "2013-07-18")
	c, err := cite.NewCitation("us", "usc", "t17", "s102", &revised)
	require.NoError(t, err)

	assert.Equal(t, "U.S. Code", c.Code)
	assert.Equal(t, cite.LevelStatute, c.Level)
	assert.Equal(t, "17", c.Volume)
	assert.Equal(t, "sec. 102", c.Section)
}

func TestNewCitationUnknownCode(t *testing.T) {
	_, err := cite.NewCitation("us", "ballads", "t1", "s1", nil)
	assert.Error(t, err)
}

func TestCitationString(t *testing.T) {
	revised := date(t, "2013-07-18")
	c, err := cite.NewCitation("us", "usc", "t17", "s102", &revised)
	require.NoError(t, err)
	assert.Equal(t, "17 U.S. Code § 102 (2013)", c.String())
}

func TestCitationStringWithoutDate(t *testing.T) {
	c, err := cite.NewCitation("us", "usc", "t17", "s102", nil)
	require.NoError(t, err)
	assert.Equal(t, "17 U.S. Code § 102", c.String())
}

func TestCitationCSLJSON(t *testing.T) {
	revised := date(t, "2013-07-18")
	c, err := cite.NewCitation("us", "usc", "t17", "s102", &revised)
	require.NoError(t, err)

	data, err := c.CSLJSON()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "legislation", got["type"])
	assert.Equal(t, "us", got["jurisdiction"])
	assert.Equal(t, "U.S. Code", got["container-title"])
	assert.Equal(t, "17", got["volume"])
	assert.Equal(t, "sec. 102", got["section"])

	event, ok := got["event-date"].(map[string]any)
	require.True(t, ok)
	parts, ok := event["date-parts"].([]any)
	require.True(t, ok)
	require.Len(t, parts, 1)
	assert.Equal(t, []any{"2013", float64(7), float64(18)}, parts[0])
}

func TestCitationCSLJSONOmitsUnknownDate(t *testing.T) {
	c, err := cite.NewCitation("test", "acts", "47", "11", nil)
	require.NoError(t, err)

	data, err := c.CSLJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "event-date")
}
