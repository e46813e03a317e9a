package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const warrantClause = "and no Warrants shall issue, but upon probable cause, supported by Oath or affirmation"

func TestParseQuote(t *testing.T) {
	q := ParseQuote("and no|Warrants|shall issue")
	assert.Equal(t, Quote{Prefix: "and no", Exact: "Warrants", Suffix: "shall issue"}, q)
}

func TestParseQuoteWithoutMarkers(t *testing.T) {
	q := ParseQuote("probable cause")
	assert.Equal(t, Quote{Exact: "probable cause"}, q)
}

func TestParseQuoteWrongMarkerCountIsExact(t *testing.T) {
	// One pipe does not make a split-marker form.
	q := ParseQuote("a|b")
	assert.Equal(t, Quote{Exact: "a|b"}, q)
}

func TestQuoteFindExact(t *testing.T) {
	q := Quote{Exact: "probable cause"}
	sp, err := q.Find(warrantClause)
	require.NoError(t, err)
	assert.Equal(t, "probable cause", sp.Text(warrantClause))
}

func TestQuoteFindExcludesContext(t *testing.T) {
	q := Quote{Prefix: "upon ", Exact: "probable", Suffix: " cause"}
	sp, err := q.Find(warrantClause)
	require.NoError(t, err)
	assert.Equal(t, "probable", sp.Text(warrantClause))
}

func TestQuoteFindNotFound(t *testing.T) {
	q := Quote{Exact: "text that doesn't exist in the code"}
	_, err := q.Find(warrantClause)
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrCodeQuoteNotFound))
}

func TestQuoteFindAmbiguous(t *testing.T) {
	text := "the cat and the dog"
	_, err := Quote{Exact: "the"}.Find(text)
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrCodeAmbiguousQuote))

	// Context resolves the ambiguity.
	sp, err := Quote{Exact: "the", Suffix: " dog"}.Find(text)
	require.NoError(t, err)
	assert.Equal(t, Span{Start: 12, End: 15}, sp)
}

func TestQuoteFindToleratesSpaceBetweenContextParts(t *testing.T) {
	// Context parts need not spell out the whitespace separating them
	// from the exact text.
	text := "and particularly describing the place to be searched, and the persons or things to be seized."
	q := Quote{Prefix: "and", Exact: "the persons or things", Suffix: "to be seized."}
	sp, err := q.Find(text)
	require.NoError(t, err)
	assert.Equal(t, "the persons or things", sp.Text(text))
}

func TestQuoteFindEmpty(t *testing.T) {
	_, err := Quote{}.Find(warrantClause)
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrCodeQuoteNotFound))
}

func TestQuoteFindBetweenPrefixAndSuffix(t *testing.T) {
	// No exact part: select whatever sits between the contexts, with
	// surrounding spaces trimmed.
	q := Quote{Prefix: "but upon", Suffix: ", supported"}
	sp, err := q.Find(warrantClause)
	require.NoError(t, err)
	assert.Equal(t, "probable cause", sp.Text(warrantClause))
}

func TestQuoteFindBetweenPrefixOnly(t *testing.T) {
	q := Quote{Prefix: "Oath or"}
	sp, err := q.Find(warrantClause)
	require.NoError(t, err)
	assert.Equal(t, "affirmation", sp.Text(warrantClause))
}

func TestQuoteFindBetweenSuffixOnly(t *testing.T) {
	q := Quote{Suffix: "Warrants shall issue"}
	sp, err := q.Find(warrantClause)
	require.NoError(t, err)
	assert.Equal(t, "and no", sp.Text(warrantClause))
}

func TestQuoteFindBetweenNothingLeft(t *testing.T) {
	q := Quote{Prefix: "probable ", Suffix: "cause"}
	_, err := q.Find(warrantClause)
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrCodeQuoteNotFound))
}

func TestQuoteFindBetweenAmbiguousContext(t *testing.T) {
	text := "one fish two fish red fish"
	_, err := Quote{Prefix: "fish"}.Find(text)
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrCodeAmbiguousQuote))
}

func TestQuoteIsUniqueIn(t *testing.T) {
	assert.True(t, Quote{Exact: "probable cause"}.IsUniqueIn(warrantClause))
	assert.False(t, Quote{Exact: "missing words"}.IsUniqueIn(warrantClause))
}

func TestQuoteString(t *testing.T) {
	assert.Equal(t, "probable cause", Quote{Exact: "probable cause"}.String())
	assert.Equal(t, "upon |probable| cause", Quote{Prefix: "upon ", Exact: "probable", Suffix: " cause"}.String())
	assert.Equal(t, "|x|after", Quote{Exact: "x", Suffix: "after"}.String())
}
