package enact

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexanchor/lexanchor/internal/anchor"
	"github.com/lexanchor/lexanchor/internal/cite"
)

func TestNewTextVersionRejectsEmpty(t *testing.T) {
	_, err := NewTextVersion("")
	require.Error(t, err)
}

func TestContentAndPaddedLength(t *testing.T) {
	e := node(t, "/test/acts/47/1", "Short Title", "1935-04-01")
	assert.Equal(t, "Short Title", e.Content())
	assert.Equal(t, 12, e.PaddedLength())

	empty := node(t, "/test/acts/47", "", "1935-04-01")
	assert.Equal(t, "", empty.Content())
	assert.Equal(t, 0, empty.PaddedLength())
}

func TestTextJoinsSubtree(t *testing.T) {
	text := mustText(t, licenseSubdivided(t))
	assert.Equal(t, mustText(t, licenseTogether(t)), text)
}

func TestTextSkipsEmptyContent(t *testing.T) {
	// The parent has no content, so its text starts at the first child
	// with no leading space.
	text := mustText(t, waiverSection(t))
	assert.True(t, len(text) > 0)
	assert.Equal(t, byte('T'), text[0])
	assert.Contains(t, text, "medical reasons. The determination")
}

func TestTextRequiresResolvedChildren(t *testing.T) {
	e := node(t, "/test/acts/47/8", "All of the following are prohibited:", "1935-04-01")
	e.Children = append(e.Children, RefChild("/test/acts/47/8/a"))

	_, err := e.Text()
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrCodeUnresolvedChild))
}

func TestIdentifierParts(t *testing.T) {
	e := node(t, "/us/usc/t17/s102/b", "x", "2013-07-18")
	assert.Equal(t, "us", e.Sovereign())
	assert.Equal(t, "us", e.Jurisdiction())
	assert.Equal(t, "usc", e.Code())
	assert.Equal(t, "t17", e.Title())
	assert.Equal(t, "s102", e.Section())
	assert.True(t, e.IsFederal())

	short := node(t, "/us/const", "x", "1788-09-13")
	assert.Equal(t, "const", short.Code())
	assert.Equal(t, "", short.Title())
}

func TestLevel(t *testing.T) {
	statute := node(t, "/us/usc/t17/s102", "x", "2013-07-18")
	level, err := statute.Level()
	require.NoError(t, err)
	assert.Equal(t, cite.LevelStatute, level)

	constitutional := fourthAmendment(t)
	level, err = constitutional.Level()
	require.NoError(t, err)
	assert.Equal(t, cite.LevelConstitution, level)
}

func TestAsCitationStatute(t *testing.T) {
	e := node(t, "/us/usc/t17/s102", "x", "2013-07-18")
	citation, err := e.AsCitation()
	require.NoError(t, err)
	assert.Equal(t, "17 U.S. Code § 102 (2013)", citation.String())
}

func TestAsCitationUnsupportedLevel(t *testing.T) {
	_, err := fourthAmendment(t).AsCitation()
	require.Error(t, err)
}

func TestCSLJSON(t *testing.T) {
	e := node(t, "/us/usc/t17/s102", "x", "2013-07-18")
	raw, err := e.CSLJSON()
	require.NoError(t, err)

	var item map[string]any
	require.NoError(t, json.Unmarshal(raw, &item))
	assert.Equal(t, "legislation", item["type"])
	assert.Equal(t, "sec. 102", item["section"])
	assert.Equal(t, "us", item["jurisdiction"])
	assert.Equal(t, "17", item["volume"])
}

func TestCrossReferencesRecursive(t *testing.T) {
	ref := cite.CrossReference{
		TargetURI:     "/test/acts/47/6C",
		TargetURL:     "https://authorityspoke.com/api/v1/test/acts/47/6C/",
		ReferenceText: "Section 6C",
	}
	e := waiverSection(t)
	child, ok := e.Children[0].Resolved()
	require.True(t, ok)
	child.Citations = []cite.CrossReference{ref}

	refs := e.CrossReferences()
	require.Len(t, refs, 1)
	assert.Equal(t, "Section 6C", refs[0].ReferenceText)
}

func TestCopyIsDeep(t *testing.T) {
	original := licenseSubdivided(t)
	copied := original.Copy()

	child, ok := copied.Children[0].Resolved()
	require.True(t, ok)
	child.TextVersion.Content = "changed"

	originalChild, ok := original.Children[0].Resolved()
	require.True(t, ok)
	assert.Equal(t, "barbers,", originalChild.TextVersion.Content)
}

func TestSelectQuote(t *testing.T) {
	selected, err := licenseTogether(t).GetString(anchor.FromString("|barbers, hairdressers|"))
	require.NoError(t, err)
	assert.Equal(t, "…barbers, hairdressers…", selected)
}

func TestSelectQuoteAcrossChildBoundary(t *testing.T) {
	// The quoted text spans the parent's content and two children.
	selected, err := licenseSubdivided(t).GetString(anchor.FromString("|licenses to such barbers, hairdressers|"))
	require.NoError(t, err)
	assert.Equal(t, "…licenses to such barbers, hairdressers…", selected)
}

func TestSelectAll(t *testing.T) {
	p, err := waiverSection(t).SelectAll()
	require.NoError(t, err)
	selected, err := p.SelectedText()
	require.NoError(t, err)
	assert.Equal(t, mustText(t, waiverSection(t)), selected)
}

func TestEnactmentMeansAcrossVersions(t *testing.T) {
	// The 2013 re-enactment subdivided the section without changing a
	// word, so the two versions have the same meaning.
	same, err := licenseTogether(t).Means(licenseSubdivided(t))
	require.NoError(t, err)
	assert.True(t, same)
}

func TestEnactmentMeansDifferentText(t *testing.T) {
	same, err := licenseTogether(t).Means(fourthAmendment(t))
	require.NoError(t, err)
	assert.False(t, same)
}

func TestEnactmentImpliesSelectedPart(t *testing.T) {
	part, err := licenseTogether(t).Select(anchor.FromString("|whose beard they have removed|"))
	require.NoError(t, err)

	implied, err := licenseSubdivided(t).Implies(part)
	require.NoError(t, err)
	assert.True(t, implied)

	reverse, err := part.Implies(licenseSubdivided(t))
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestEnactmentString(t *testing.T) {
	assert.Equal(t, "/test/acts/47/11 (1935-04-01)", licenseTogether(t).String())
}
