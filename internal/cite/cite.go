// Package cite models citations to codified law: the level of a legal
// code, citation-path decomposition, Citation Style Language (CSL)
// rendering, and the cross-reference records carried by provisions.
package cite

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// CodeLevel is the level of law a legal code contains.
type CodeLevel int

const (
	LevelConstitution CodeLevel = iota + 1
	LevelStatute
	LevelRegulation
	LevelCourtRule
)

// String implements fmt.Stringer.
func (l CodeLevel) String() string {
	switch l {
	case LevelConstitution:
		return "constitution"
	case LevelStatute:
		return "statute"
	case LevelRegulation:
		return "regulation"
	case LevelCourtRule:
		return "court rule"
	default:
		return fmt.Sprintf("CodeLevel(%d)", int(l))
	}
}

type codeInfo struct {
	name  string
	level CodeLevel
}

// knownCodes maps citation-path parts to the codes they refer to,
// keyed by jurisdiction then code identifier.
var knownCodes = map[string]map[string]codeInfo{
	"test": {
		"acts": {"Test Acts", LevelStatute},
	},
	"us": {
		"const": {"U.S. Const.", LevelConstitution},
		"usc":   {"U.S. Code", LevelStatute},
		"cfr":   {"CFR", LevelRegulation},
	},
	"us-ca": {
		"const": {"Cal. Const.", LevelConstitution},
		"code":  {"Cal. Codes", LevelStatute},
		"ccr":   {"Cal. Code Regs.", LevelRegulation},
		"roc":   {"Cal. Rules of Court", LevelCourtRule},
	},
}

// IdentifyCode finds the display name and level of a code from the
// jurisdiction and code parts of a citation path.
func IdentifyCode(jurisdiction, code string) (string, CodeLevel, error) {
	sovereign, ok := knownCodes[jurisdiction]
	if !ok {
		return "", 0, fmt.Errorf("%q is not a known jurisdiction identifier", jurisdiction)
	}
	info, ok := sovereign[code]
	if !ok {
		return "", 0, fmt.Errorf("%q is not a known code identifier", code)
	}
	return info.name, info.level, nil
}

// Citation is a reference to a provision in a citation style suitable
// for written text, intended for Citation Style Language (CSL) output.
type Citation struct {
	Jurisdiction string
	Code         string // display name, e.g. "U.S. Code"
	Level        CodeLevel
	Volume       string // title number, leading "t" stripped
	Section      string // "sec. N" form
	RevisionDate *time.Time
}

// NewCitation builds a Citation from raw citation-path parts,
// normalizing the volume ("t17" becomes "17") and section ("s102"
// becomes "sec. 102").
func NewCitation(jurisdiction, code, volume, section string, revised *time.Time) (Citation, error) {
	name, level, err := IdentifyCode(jurisdiction, code)
	if err != nil {
		return Citation{}, err
	}
	volume = strings.TrimPrefix(volume, "t")
	if section != "" && !strings.HasPrefix(section, "sec. ") {
		section = "sec. " + strings.TrimPrefix(section, "s")
	}
	return Citation{
		Jurisdiction: jurisdiction,
		Code:         name,
		Level:        level,
		Volume:       volume,
		Section:      section,
		RevisionDate: revised,
	}, nil
}

// String renders the citation in conventional form, e.g.
// "17 U.S. Code § 102 (2013)".
func (c Citation) String() string {
	name := strings.TrimSpace(fmt.Sprintf("%s %s %s", c.Volume, c.Code, c.Section))
	if c.RevisionDate != nil {
		name += fmt.Sprintf(" (%d)", c.RevisionDate.Year())
	}
	return strings.ReplaceAll(name, "sec.", "§")
}

type cslDate struct {
	DateParts [][]any `json:"date-parts"`
}

type cslRecord struct {
	Type         string   `json:"type"`
	Jurisdiction string   `json:"jurisdiction"`
	Code         string   `json:"container-title,omitempty"`
	Volume       string   `json:"volume,omitempty"`
	Section      string   `json:"section,omitempty"`
	EventDate    *cslDate `json:"event-date,omitempty"`
}

// CSLJSON serializes the citation as a Citation Style Language JSON
// object. The revision date, when known, becomes the "event-date"
// field in date-parts form.
func (c Citation) CSLJSON() ([]byte, error) {
	rec := cslRecord{
		Type:         "legislation",
		Jurisdiction: c.Jurisdiction,
		Code:         c.Code,
		Volume:       c.Volume,
		Section:      c.Section,
	}
	if c.RevisionDate != nil {
		d := c.RevisionDate
		rec.EventDate = &cslDate{
			DateParts: [][]any{{
				fmt.Sprintf("%d", d.Year()), int(d.Month()), d.Day(),
			}},
		}
	}
	return json.Marshal(rec)
}
