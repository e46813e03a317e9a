package client

import (
	"errors"
	"fmt"
)

// ClientError represents a failure to retrieve a provision record.
type ClientError struct {
	// Code identifies the error category.
	Code ClientErrorCode

	// Message is a human-readable description.
	Message string

	// Path is the citation path that was queried.
	Path string

	// Date is the version date that was queried, if any.
	Date string
}

// ClientErrorCode categorizes retrieval errors.
type ClientErrorCode string

const (
	// ErrCodePathNotFound indicates no enacted text exists at the path.
	ErrCodePathNotFound ClientErrorCode = "PATH_NOT_FOUND"

	// ErrCodeDateNotFound indicates no version exists on or before the
	// queried date.
	ErrCodeDateNotFound ClientErrorCode = "DATE_NOT_FOUND"

	// ErrCodeRequestFailed indicates a transport or server failure.
	ErrCodeRequestFailed ClientErrorCode = "REQUEST_FAILED"
)

// Error implements the error interface.
func (e *ClientError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Path != "" && e.Date != "" {
		return fmt.Sprintf("%s (path=%s, date=%s)", msg, e.Path, e.Date)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s (path=%s)", msg, e.Path)
	}
	return msg
}

// HasCode reports whether err is (or wraps) a ClientError with the
// given code.
func HasCode(err error, code ClientErrorCode) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Code == code
	}
	return false
}
