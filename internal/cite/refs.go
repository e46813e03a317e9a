package cite

import (
	"fmt"
	"time"
)

// CrossReference is a provision's citation to another provision.
type CrossReference struct {
	// TargetURI is the citation path of the target provision.
	TargetURI string `json:"target_uri"`

	// TargetURL is where the target provision can be fetched.
	TargetURL string `json:"target_url"`

	// ReferenceText is the literal text in the citing provision that
	// represents the cross-reference.
	ReferenceText string `json:"reference_text"`

	// TargetNode optionally identifies the target in the source API.
	TargetNode int `json:"target_node,omitempty"`
}

// String implements fmt.Stringer.
func (r CrossReference) String() string {
	return fmt.Sprintf("CrossReference(target_uri=%q, reference_text=%q)", r.TargetURI, r.ReferenceText)
}

// CitingProvisionLocation records where a citing provision is codified:
// its node path, the start date of the citing version, and its heading.
type CitingProvisionLocation struct {
	Node      string    `json:"node"`
	StartDate time.Time `json:"start_date"`
	Heading   string    `json:"heading,omitempty"`
}

// Before orders locations by start date, then by node path. Used to
// find the most recent location of a citing text.
func (l CitingProvisionLocation) Before(other CitingProvisionLocation) bool {
	if !l.StartDate.Equal(other.StartDate) {
		return l.StartDate.Before(other.StartDate)
	}
	return l.Node < other.Node
}

// String implements fmt.Stringer.
func (l CitingProvisionLocation) String() string {
	return fmt.Sprintf("(%s %s)", l.Node, l.StartDate.Format("2006-01-02"))
}

// InboundReference is the reverse-direction memo: a record that some
// citing text refers to a specified target provision, with every
// location where that citing text has been enacted.
type InboundReference struct {
	Content       string                    `json:"content"`
	ReferenceText string                    `json:"reference_text"`
	TargetURI     string                    `json:"target_uri"`
	Locations     []CitingProvisionLocation `json:"locations"`
}

// LatestLocation returns the most recent location where the citing
// text has been enacted. The second return value is false when the
// reference has no locations.
func (r InboundReference) LatestLocation() (CitingProvisionLocation, bool) {
	if len(r.Locations) == 0 {
		return CitingProvisionLocation{}, false
	}
	latest := r.Locations[0]
	for _, loc := range r.Locations[1:] {
		if latest.Before(loc) {
			latest = loc
		}
	}
	return latest, true
}

// String implements fmt.Stringer.
func (r InboundReference) String() string {
	result := fmt.Sprintf("InboundReference to %s", r.TargetURI)
	if latest, ok := r.LatestLocation(); ok {
		result = fmt.Sprintf("%s, from %s", result, latest)
	}
	if extra := len(r.Locations) - 1; extra > 0 {
		result = fmt.Sprintf("%s and %d other locations", result, extra)
	}
	return result
}
