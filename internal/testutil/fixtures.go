// Package testutil provides shared fixtures and helpers for tests.
//
// The fixtures mirror a small body of legislation: a fictional beard
// tax act used to exercise selection and version comparison, plus a
// few real constitutional amendments and a copyright statute used to
// exercise citations and cross-provision comparison.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lexanchor/lexanchor/internal/enact"
)

// Date parses an ISO date or fails the test.
func Date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

// DatePtr parses an ISO date into a pointer or fails the test.
func DatePtr(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed := Date(t, value)
	return &parsed
}

func textVersion(t *testing.T, content string) *enact.TextVersion {
	t.Helper()
	version, err := enact.NewTextVersion(content)
	require.NoError(t, err)
	return version
}

// leaf builds a childless provision.
func leaf(t *testing.T, node, heading, content, startDate string) *enact.Enactment {
	t.Helper()
	e := &enact.Enactment{
		Node:              node,
		Heading:           heading,
		StartDate:         Date(t, startDate),
		KnownRevisionDate: true,
	}
	if content != "" {
		e.TextVersion = textVersion(t, content)
	}
	return e
}

// Section11Together returns the 1935 version of the beard act's
// licensing section, enacted as a single undivided paragraph.
func Section11Together(t *testing.T) *enact.Enactment {
	t.Helper()
	e := leaf(t, "/test/acts/47/11", "Licensed repurchasers of beardcoin",
		"The Department of Beards may issue licenses to such barbers, hairdressers, or other male grooming professionals as they see fit to purchase a beardcoin from a customer whose beard they have removed, and to resell those beardcoins to the Department of Beards.",
		"1935-04-01")
	e.EndDate = DatePtr(t, "2013-07-18")
	return e
}

// Section11Subdivided returns the 2013 version of the same section,
// re-enacted with the paragraph split into lettered subdivisions. Its
// flattened text matches Section11Together word for word, which makes
// it the canonical fixture for re-anchoring across versions.
func Section11Subdivided(t *testing.T) *enact.Enactment {
	t.Helper()
	parent := leaf(t, "/test/acts/47/11", "Licensed repurchasers of beardcoin",
		"The Department of Beards may issue licenses to such",
		"2013-07-18")
	parts := []struct {
		node    string
		content string
	}{
		{"/test/acts/47/11/i", "barbers,"},
		{"/test/acts/47/11/ii", "hairdressers, or"},
		{"/test/acts/47/11/iii", "other male grooming professionals"},
		{"/test/acts/47/11/iii-con", "as they see fit to purchase a beardcoin from a customer"},
		{"/test/acts/47/11/iv", "whose beard they have removed,"},
		{"/test/acts/47/11/iv-con", "and to resell those beardcoins to the Department of Beards."},
	}
	for _, part := range parts {
		child := leaf(t, part.node, "", part.content, "2013-07-18")
		parent.Children = append(parent.Children, enact.ResolvedChild(child))
	}
	return parent
}

// Section6D returns the beard tax waiver section, whose own content is
// empty and whose text lives entirely in two numbered children.
func Section6D(t *testing.T) *enact.Enactment {
	t.Helper()
	parent := leaf(t, "/test/acts/47/6D", "Waiver of beard tax in special circumstances",
		"", "1935-04-01")
	one := leaf(t, "/test/acts/47/6D/1", "",
		"The Department of Beards shall waive the collection of beard tax upon issuance of beardcoin under Section 6C where the reason the maintainer wears a beard is due to bona fide religious, cultural, or medical reasons.",
		"2013-07-18")
	two := leaf(t, "/test/acts/47/6D/2", "",
		"The determination of the Department of Beards as to what constitutes bona fide religious or cultural reasons shall be final and no right of appeal shall exist.",
		"1935-04-01")
	parent.Children = []enact.Child{enact.ResolvedChild(one), enact.ResolvedChild(two)}
	return parent
}

// FourthAmendment returns the Fourth Amendment to the US Constitution.
func FourthAmendment(t *testing.T) *enact.Enactment {
	t.Helper()
	return leaf(t, "/us/const/amendment/IV", "AMENDMENT IV.",
		"The right of the people to be secure in their persons, houses, papers, and effects, against unreasonable searches and seizures, shall not be violated, and no Warrants shall issue, but upon probable cause, supported by Oath or affirmation, and particularly describing the place to be searched, and the persons or things to be seized.",
		"1791-12-15")
}

// FifthAmendment returns the Fifth Amendment to the US Constitution.
func FifthAmendment(t *testing.T) *enact.Enactment {
	t.Helper()
	return leaf(t, "/us/const/amendment/V", "AMENDMENT V.",
		"No person shall be held to answer for a capital, or otherwise infamous crime, unless on a presentment or indictment of a Grand Jury, except in cases arising in the land or naval forces, or in the Militia, when in actual service in time of War or public danger; nor shall any person be subject for the same offence to be twice put in jeopardy of life or limb; nor shall be compelled in any Criminal Case to be a witness against himself; nor be deprived of life, liberty, or property, without due process of law; nor shall private property be taken for public use, without just compensation.",
		"1791-12-15")
}

// FourteenthSection1 returns section 1 of the Fourteenth Amendment,
// which shares its due process language with the Fifth.
func FourteenthSection1(t *testing.T) *enact.Enactment {
	t.Helper()
	return leaf(t, "/us/const/amendment/XIV/1", "Citizenship: security and equal protection of citizens.",
		"All persons born or naturalized in the United States, and subject to the jurisdiction thereof, are citizens of the United States and of the State wherein they reside. No State shall make or enforce any law which shall abridge the privileges or immunities of citizens of the United States; nor shall any State deprive any person of life, liberty, or property, without due process of law; nor deny to any person within its jurisdiction the equal protection of the laws.",
		"1868-07-28")
}

// CopyrightSection102 returns 17 U.S.C. § 102, with subject matter in
// subsection (a) and the idea/expression exclusion in subsection (b).
func CopyrightSection102(t *testing.T) *enact.Enactment {
	t.Helper()
	parent := leaf(t, "/us/usc/t17/s102", "Subject matter of copyright: In general",
		"", "2013-07-18")
	subA := leaf(t, "/us/usc/t17/s102/a", "",
		"Copyright protection subsists, in accordance with this title, in original works of authorship fixed in any tangible medium of expression, now known or later developed, from which they can be perceived, reproduced, or otherwise communicated, either directly or with the aid of a machine or device. Works of authorship include the following categories:",
		"2013-07-18")
	subB := leaf(t, "/us/usc/t17/s102/b", "",
		"In no case does copyright protection for an original work of authorship extend to any idea, procedure, process, system, method of operation, concept, principle, or discovery, regardless of the form in which it is described, explained, illustrated, or embodied in such work.",
		"2013-07-18")
	parent.Children = []enact.Child{enact.ResolvedChild(subA), enact.ResolvedChild(subB)}
	return parent
}
