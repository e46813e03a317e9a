package enact

import (
	"errors"
	"fmt"
)

// StructureError represents a failure caused by the shape of a
// provision tree rather than by a selector.
//
// Structure errors include:
//   - Structural mismatch: neither citation path is an ancestor of the
//     other, or a named node cannot be located during a merge
//   - Unresolved child: an operation requiring full text reached a node
//     whose children are unresolved path references
//   - Re-anchor failed: a selection from another text version could not
//     be placed in this version's text
type StructureError struct {
	// Code identifies the error category.
	Code StructureErrorCode

	// Message is a human-readable description.
	Message string

	// Node is the citation path of the provision where the error arose.
	Node string

	// OtherNode is the second citation path involved, if any.
	OtherNode string

	// Err is the underlying cause, if any.
	Err error
}

// StructureErrorCode categorizes structure errors.
type StructureErrorCode string

const (
	// ErrCodeStructuralMismatch indicates two provisions that cannot be
	// combined or located within one another.
	ErrCodeStructuralMismatch StructureErrorCode = "STRUCTURAL_MISMATCH"

	// ErrCodeUnresolvedChild indicates a child that is only a path
	// reference where a loaded node was required.
	ErrCodeUnresolvedChild StructureErrorCode = "UNRESOLVED_CHILD"

	// ErrCodeReanchorFailed indicates a selection that could not be
	// re-anchored onto a different text version.
	ErrCodeReanchorFailed StructureErrorCode = "REANCHOR_FAILED"
)

// Error implements the error interface.
func (e *StructureError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Node != "" && e.OtherNode != "" {
		msg = fmt.Sprintf("%s (node=%s, other=%s)", msg, e.Node, e.OtherNode)
	} else if e.Node != "" {
		msg = fmt.Sprintf("%s (node=%s)", msg, e.Node)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *StructureError) Unwrap() error {
	return e.Err
}

// HasCode reports whether err is (or wraps) a StructureError with the
// given code.
func HasCode(err error, code StructureErrorCode) bool {
	var structErr *StructureError
	if errors.As(err, &structErr) {
		return structErr.Code == code
	}
	return false
}
