package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetNormalizes(t *testing.T) {
	set := NewSet(
		Span{Start: 10, End: 15},
		Span{Start: 0, End: 4},
		Span{Start: 4, End: 6},  // adjacent to the first, should merge
		Span{Start: 12, End: 20}, // overlaps the 10:15 span
	)
	assert.Equal(t, []Span{{Start: 0, End: 6}, {Start: 10, End: 20}}, set.Spans())
}

func TestNewSetDropsEmptySpans(t *testing.T) {
	set := NewSet(Span{}, Span{Start: 5, End: 5}, Span{Start: 1, End: 2})
	assert.Equal(t, []Span{{Start: 1, End: 2}}, set.Spans())
}

func TestZeroSetIsEmpty(t *testing.T) {
	var set Set
	assert.True(t, set.IsEmpty())
	assert.Equal(t, 0, set.Size())
	assert.Equal(t, "{}", set.String())
}

func TestSetUnion(t *testing.T) {
	a := NewSet(Span{Start: 0, End: 5})
	b := NewSet(Span{Start: 3, End: 9}, Span{Start: 20, End: 25})

	union := a.Union(b)
	assert.Equal(t, []Span{{Start: 0, End: 9}, {Start: 20, End: 25}}, union.Spans())

	// Union does not mutate its operands.
	assert.Equal(t, []Span{{Start: 0, End: 5}}, a.Spans())
}

func TestSetIntersect(t *testing.T) {
	a := NewSet(Span{Start: 0, End: 10}, Span{Start: 20, End: 30})
	b := NewSet(Span{Start: 5, End: 25})

	assert.Equal(t, []Span{{Start: 5, End: 10}, {Start: 20, End: 25}}, a.Intersect(b).Spans())
	assert.True(t, a.Intersect(Set{}).IsEmpty())
}

func TestSetShiftClampsAndDrops(t *testing.T) {
	set := NewSet(Span{Start: 0, End: 4}, Span{Start: 10, End: 18})

	// The first span lands entirely before zero and is dropped.
	shifted := set.Shift(-6)
	assert.Equal(t, []Span{{Start: 4, End: 12}}, shifted.Spans())

	clamped := NewSet(Span{Start: 2, End: 8}).Shift(-4)
	assert.Equal(t, []Span{{Start: 0, End: 4}}, clamped.Spans())
}

func TestSetLimit(t *testing.T) {
	set := NewSet(Span{Start: 0, End: 10}, Span{Start: 20, End: 30})

	assert.Equal(t, []Span{{Start: 5, End: 10}, {Start: 20, End: 22}}, set.Limit(5, 22).Spans())

	// A non-positive end means no upper bound.
	assert.Equal(t, []Span{{Start: 25, End: 30}}, set.Limit(25, 0).Spans())
}

func TestAddMarginBridgesPunctuationGaps(t *testing.T) {
	text := "barbers, hairdressers, or other male grooming professionals"
	set := NewSet(Span{Start: 0, End: 7}, Span{Start: 9, End: 21})

	// The gap is ", " which is margin text within the width.
	merged := set.AddMargin(text, 4)
	assert.Equal(t, []Span{{Start: 0, End: 21}}, merged.Spans())
}

func TestAddMarginKeepsWordGaps(t *testing.T) {
	text := "barbers, hairdressers, or other male grooming professionals"
	set := NewSet(Span{Start: 0, End: 7}, Span{Start: 26, End: 31})

	// The gap contains words, so the spans stay apart no matter how
	// generous the width.
	assert.Equal(t, set.Spans(), set.AddMargin(text, 100).Spans())
}

func TestAddMarginRespectsWidth(t *testing.T) {
	text := "a....... b"
	set := NewSet(Span{Start: 0, End: 1}, Span{Start: 9, End: 10})

	// The gap is all margin characters but wider than 4.
	assert.Equal(t, set.Spans(), set.AddMargin(text, 4).Spans())
}

func TestValidateWithin(t *testing.T) {
	text := "short text"
	require.NoError(t, NewSet(Span{Start: 0, End: 5}).ValidateWithin(text))

	// A span may run past the end; only one starting past the end is an
	// unused selector.
	require.NoError(t, NewSet(Span{Start: 5, End: 50}).ValidateWithin(text))

	err := NewSet(Span{Start: 11, End: 20}).ValidateWithin(text)
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrCodeSelectorUnused))
}

func TestAsSequenceWithGaps(t *testing.T) {
	text := "one two three four"
	set := NewSet(Span{Start: 4, End: 7}, Span{Start: 14, End: 18})

	seq := set.AsSequence(text, true)
	assert.Equal(t, "…two…four", seq.String())
}

func TestAsSequenceCoveringWholeText(t *testing.T) {
	text := "one two"
	seq := NewSet(Span{Start: 0, End: 7}).AsSequence(text, true)
	assert.Equal(t, "one two", seq.String())
}

func TestAsSequenceWithoutGaps(t *testing.T) {
	text := "one two three"
	set := NewSet(Span{Start: 0, End: 3}, Span{Start: 8, End: 13})

	seq := set.AsSequence(text, false)
	frags := seq.Fragments()
	require.Len(t, frags, 2)
	assert.Equal(t, "one", frags[0].Text)
	assert.Equal(t, "three", frags[1].Text)
}

func TestAsSequenceEmptySelection(t *testing.T) {
	assert.True(t, Set{}.AsSequence("some text", true).IsEmpty())
}

func TestSelectedText(t *testing.T) {
	text := "no Warrants shall issue, but upon probable cause"
	set := NewSet(Span{Start: 0, End: 11}, Span{Start: 34, End: 48})
	assert.Equal(t, "no Warrants…probable cause", set.SelectedText(text))
}

func TestAsQuotesRoundTrip(t *testing.T) {
	text := "The right of the people to be secure in their persons"
	set := NewSet(Span{Start: 4, End: 9}, Span{Start: 30, End: 36})

	quotes := set.AsQuotes(text)
	require.Len(t, quotes, 2)
	for i, q := range quotes {
		sp, err := q.Find(text)
		require.NoError(t, err)
		assert.Equal(t, set.Spans()[i], sp)
	}
}

func TestAsQuotesAddsContextForRepeatedText(t *testing.T) {
	// "shall" appears twice; the quote for the second needs context.
	text := "no State shall make any law, nor shall any State deny"
	set := NewSet(Span{Start: 33, End: 38})

	quotes := set.AsQuotes(text)
	require.Len(t, quotes, 1)
	assert.True(t, quotes[0].Prefix != "" || quotes[0].Suffix != "")

	sp, err := quotes[0].Find(text)
	require.NoError(t, err)
	assert.Equal(t, Span{Start: 33, End: 38}, sp)
}
