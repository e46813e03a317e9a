package enact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexanchor/lexanchor/internal/anchor"
)

// beardDefinition returns the 1935 definition section and its amended
// 2013 replacement, whose text differs.
func beardDefinition(t *testing.T) (old, amended *Enactment) {
	t.Helper()
	old = node(t, "/test/acts/47/4",
		"In this Act, beard means any facial hair no shorter than 5 millimetres in length that occurs on or below the chin.",
		"1935-04-01")
	amended = node(t, "/test/acts/47/4",
		"In this Act, beard means any facial hair no shorter than 8 millimetres in length that occurs on or below the chin or on the cheeks.",
		"2013-07-18")
	return old, amended
}

func selectPassage(t *testing.T, e *Enactment, quote string) *Passage {
	t.Helper()
	p, err := e.Select(anchor.FromString(quote))
	require.NoError(t, err)
	return p
}

func TestIsAncestorPath(t *testing.T) {
	assert.True(t, isAncestorPath("/us/usc/t17/s1", "/us/usc/t17/s1"))
	assert.True(t, isAncestorPath("/us/usc/t17/s1", "/us/usc/t17/s1/b"))
	assert.False(t, isAncestorPath("/us/usc/t17/s1", "/us/usc/t17/s10"))
	assert.False(t, isAncestorPath("/us/usc/t17/s1/b", "/us/usc/t17/s1"))
}

func TestAddSameNodeUnionsSelections(t *testing.T) {
	e := licenseTogether(t)
	a := selectPassage(t, e, "|barbers|")
	b := selectPassage(t, e, "|a beardcoin|")

	combined, err := a.Add(b)
	require.NoError(t, err)

	selected, err := combined.SelectedText()
	require.NoError(t, err)
	assert.Equal(t, "…barbers…a beardcoin…", selected)

	// Inputs stay untouched.
	aText, err := a.SelectedText()
	require.NoError(t, err)
	assert.Equal(t, "…barbers…", aText)
}

func TestAddBridgesMarginAfterUnion(t *testing.T) {
	e := licenseTogether(t)
	a := selectPassage(t, e, "|barbers|")
	b := selectPassage(t, e, "|hairdressers|")

	combined, err := a.Add(b)
	require.NoError(t, err)

	selected, err := combined.SelectedText()
	require.NoError(t, err)
	assert.Equal(t, "…barbers, hairdressers…", selected)
}

func TestAddDescendantIntoAncestor(t *testing.T) {
	root := licenseSubdivided(t)
	parent := selectPassage(t, root, "|to such|")

	childNode := root.ResolvedChildren()[0]
	child, err := childNode.SelectAll()
	require.NoError(t, err)

	combined, err := parent.Add(child)
	require.NoError(t, err)
	assert.Equal(t, "/test/acts/47/11", combined.Node())

	// The child's selection lands at its offset in the ancestor's
	// flattened text, and the separator gap is bridged.
	selected, err := combined.SelectedText()
	require.NoError(t, err)
	assert.Equal(t, "…to such barbers,…", selected)
}

func TestAddIsSymmetricInRooting(t *testing.T) {
	root := licenseSubdivided(t)
	parent := selectPassage(t, root, "|to such|")

	childNode := root.ResolvedChildren()[0]
	child, err := childNode.SelectAll()
	require.NoError(t, err)

	// The result is rooted at the ancestor regardless of operand order.
	combined, err := child.Add(parent)
	require.NoError(t, err)
	assert.Equal(t, "/test/acts/47/11", combined.Node())
}

func TestAddImpliedSelectionIsAbsorbed(t *testing.T) {
	e := licenseTogether(t)
	whole, err := e.SelectAll()
	require.NoError(t, err)
	part := selectPassage(t, e, "|barbers|")

	combined, err := whole.Add(part)
	require.NoError(t, err)

	selected, err := combined.SelectedText()
	require.NoError(t, err)
	assert.Equal(t, mustText(t, e), selected)
}

func TestAddUnrelatedNodesFails(t *testing.T) {
	a, err := licenseTogether(t).SelectAll()
	require.NoError(t, err)
	b, err := waiverSection(t).SelectAll()
	require.NoError(t, err)

	_, err = a.Add(b)
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrCodeStructuralMismatch))
}

func TestAddReanchorsAcrossVersions(t *testing.T) {
	old, amended := beardDefinition(t)
	current := selectPassage(t, amended, "|facial hair|")
	historic := selectPassage(t, old, "|below the chin|")

	combined, err := current.Add(historic)
	require.NoError(t, err)

	selected, err := combined.SelectedText()
	require.NoError(t, err)
	assert.Equal(t, "…facial hair…below the chin…", selected)
}

func TestAddReanchorFailsWhenTextIsGone(t *testing.T) {
	old, amended := beardDefinition(t)
	current := selectPassage(t, amended, "|facial hair|")
	historic := selectPassage(t, old, "|5 millimetres|")

	_, err := current.Add(historic)
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrCodeReanchorFailed))
}

func TestConsolidateMergesWhatItCan(t *testing.T) {
	e := licenseTogether(t)
	passages := []*Passage{
		selectPassage(t, e, "|barbers|"),
		selectPassage(t, e, "|hairdressers|"),
		selectPassage(t, fourthAmendment(t), "|probable cause|"),
	}

	merged := Consolidate(passages)
	require.Len(t, merged, 2)

	nodes := map[string]bool{}
	for _, p := range merged {
		nodes[p.Node()] = true
	}
	assert.True(t, nodes["/test/acts/47/11"])
	assert.True(t, nodes["/us/const/amendment/IV"])
}

func TestConsolidateAcrossTreeLevels(t *testing.T) {
	root := licenseSubdivided(t)
	childNode := root.ResolvedChildren()[0]
	child, err := childNode.SelectAll()
	require.NoError(t, err)

	merged := Consolidate([]*Passage{
		selectPassage(t, root, "|to such|"),
		child,
	})
	require.Len(t, merged, 1)
	assert.Equal(t, "/test/acts/47/11", merged[0].Node())
}

func TestConsolidateEmpty(t *testing.T) {
	assert.Empty(t, Consolidate(nil))
}

func TestGroupConsolidatesOnConstruction(t *testing.T) {
	e := licenseTogether(t)
	group := NewGroup(
		selectPassage(t, e, "|barbers|"),
		selectPassage(t, e, "|hairdressers|"),
	)
	assert.Equal(t, 1, group.Len())
}

func TestGroupAdd(t *testing.T) {
	e := licenseTogether(t)
	a := NewGroup(selectPassage(t, e, "|barbers|"))
	b := NewGroup(selectPassage(t, fourthAmendment(t), "|probable cause|"))

	combined := a.Add(b)
	assert.Equal(t, 2, combined.Len())
	assert.Equal(t, 1, a.Len())
}
