// Package enact models legislative provisions as trees of cited, dated
// text nodes and implements selection of passages within them.
//
// An Enactment is one provision: a citation path, a heading, a dated
// text version, and child provisions. A Passage pairs an Enactment with
// an anchor.Set scoped to the flattened text of the Enactment's whole
// subtree. Passages support additive selection, comparison for same
// meaning (Means) and implication (Implies), and merging across
// different text versions of the same citation.
//
// The package is purely synchronous and side-effect free apart from
// explicit mutation of a Passage's own selection. Merges always operate
// on deep copies and never mutate their inputs, so distinct values are
// safe to use from multiple goroutines.
package enact
