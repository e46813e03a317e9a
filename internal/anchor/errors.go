package anchor

import (
	"errors"
	"fmt"
)

// SelectionError represents a failure to resolve or apply a selector.
//
// Selection errors include:
//   - Quote not found: no occurrence of the quoted text
//   - Ambiguous quote: prefix/suffix context does not single out one match
//   - Selector unused: a range begins beyond the end of the scoped text
//   - Invalid span: a range with start < 0 or end <= start
//
// All selection errors are local, synchronous failures. They are reported
// to the caller and never silently dropped.
type SelectionError struct {
	// Code identifies the error category.
	Code SelectionErrorCode

	// Message is a human-readable description.
	Message string

	// Quote is the selector that failed to resolve, if any.
	Quote *Quote

	// Span is the range that could not be applied, if any.
	Span *Span
}

// SelectionErrorCode categorizes selection errors.
type SelectionErrorCode string

const (
	// ErrCodeQuoteNotFound indicates the quoted text has no occurrence.
	ErrCodeQuoteNotFound SelectionErrorCode = "QUOTE_NOT_FOUND"

	// ErrCodeAmbiguousQuote indicates the quoted text matches more than once.
	ErrCodeAmbiguousQuote SelectionErrorCode = "AMBIGUOUS_QUOTE"

	// ErrCodeSelectorUnused indicates a range begins past the end of the text.
	ErrCodeSelectorUnused SelectionErrorCode = "SELECTOR_UNUSED"

	// ErrCodeInvalidSpan indicates a range that is not a valid [start, end).
	ErrCodeInvalidSpan SelectionErrorCode = "INVALID_SPAN"
)

// Error implements the error interface.
func (e *SelectionError) Error() string {
	switch {
	case e.Quote != nil:
		return fmt.Sprintf("%s: %s (quote=%s)", e.Code, e.Message, e.Quote)
	case e.Span != nil:
		return fmt.Sprintf("%s: %s (span=%s)", e.Code, e.Message, e.Span)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// HasCode reports whether err is (or wraps) a SelectionError with the
// given code.
func HasCode(err error, code SelectionErrorCode) bool {
	var selErr *SelectionError
	if errors.As(err, &selErr) {
		return selErr.Code == code
	}
	return false
}
