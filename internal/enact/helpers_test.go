package enact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func node(t *testing.T, path, content, startDate string, children ...*Enactment) *Enactment {
	t.Helper()
	e := &Enactment{
		Node:              path,
		StartDate:         date(t, startDate),
		KnownRevisionDate: true,
	}
	if content != "" {
		version, err := NewTextVersion(content)
		require.NoError(t, err)
		e.TextVersion = version
	}
	for _, child := range children {
		e.Children = append(e.Children, ResolvedChild(child))
	}
	return e
}

// licenseTogether is the 1935 licensing section, enacted as one
// undivided paragraph.
func licenseTogether(t *testing.T) *Enactment {
	t.Helper()
	e := node(t, "/test/acts/47/11",
		"The Department of Beards may issue licenses to such barbers, hairdressers, or other male grooming professionals as they see fit to purchase a beardcoin from a customer whose beard they have removed, and to resell those beardcoins to the Department of Beards.",
		"1935-04-01")
	repealed := date(t, "2013-07-18")
	e.EndDate = &repealed
	return e
}

// licenseSubdivided is the 2013 re-enactment of the same section, with
// the paragraph split into subdivisions. Its flattened text matches
// licenseTogether word for word.
func licenseSubdivided(t *testing.T) *Enactment {
	t.Helper()
	return node(t, "/test/acts/47/11",
		"The Department of Beards may issue licenses to such",
		"2013-07-18",
		node(t, "/test/acts/47/11/i", "barbers,", "2013-07-18"),
		node(t, "/test/acts/47/11/ii", "hairdressers, or", "2013-07-18"),
		node(t, "/test/acts/47/11/iii", "other male grooming professionals", "2013-07-18"),
		node(t, "/test/acts/47/11/iii-con", "as they see fit to purchase a beardcoin from a customer", "2013-07-18"),
		node(t, "/test/acts/47/11/iv", "whose beard they have removed,", "2013-07-18"),
		node(t, "/test/acts/47/11/iv-con", "and to resell those beardcoins to the Department of Beards.", "2013-07-18"),
	)
}

// waiverSection has no content of its own; its text lives in two
// numbered children.
func waiverSection(t *testing.T) *Enactment {
	t.Helper()
	return node(t, "/test/acts/47/6D", "", "1935-04-01",
		node(t, "/test/acts/47/6D/1",
			"The Department of Beards shall waive the collection of beard tax upon issuance of beardcoin under Section 6C where the reason the maintainer wears a beard is due to bona fide religious, cultural, or medical reasons.",
			"2013-07-18"),
		node(t, "/test/acts/47/6D/2",
			"The determination of the Department of Beards as to what constitutes bona fide religious or cultural reasons shall be final and no right of appeal shall exist.",
			"1935-04-01"),
	)
}

func fourthAmendment(t *testing.T) *Enactment {
	t.Helper()
	return node(t, "/us/const/amendment/IV",
		"The right of the people to be secure in their persons, houses, papers, and effects, against unreasonable searches and seizures, shall not be violated, and no Warrants shall issue, but upon probable cause, supported by Oath or affirmation, and particularly describing the place to be searched, and the persons or things to be seized.",
		"1791-12-15")
}

func copyrightSection(t *testing.T) *Enactment {
	t.Helper()
	return node(t, "/us/usc/t17/s102", "", "2013-07-18",
		node(t, "/us/usc/t17/s102/a",
			"Copyright protection subsists, in accordance with this title, in original works of authorship fixed in any tangible medium of expression, now known or later developed, from which they can be perceived, reproduced, or otherwise communicated, either directly or with the aid of a machine or device. Works of authorship include the following categories:",
			"2013-07-18"),
		node(t, "/us/usc/t17/s102/b",
			"In no case does copyright protection for an original work of authorship extend to any idea, procedure, process, system, method of operation, concept, principle, or discovery, regardless of the form in which it is described, explained, illustrated, or embodied in such work.",
			"2013-07-18"),
	)
}

func mustText(t *testing.T, e *Enactment) string {
	t.Helper()
	text, err := e.Text()
	require.NoError(t, err)
	return text
}
