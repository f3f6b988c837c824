// Package errors defines custom error types for better error handling and debugging.
// AddonError provides context-aware error reporting with type classification.
package errors

import (
	"errors"
	"fmt"
)

// AddonError represents errors that occur while serving catalog, meta or stream requests
type AddonError struct {
	Type    string
	Message string
	Cause   error
}

func (e *AddonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AddonError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeFetchFailed   = "FETCH_FAILED"
	ErrorTypeParseFailed   = "PARSE_FAILED"
	ErrorTypeInvalidID     = "INVALID_ID"
	ErrorTypeNotFound      = "NOT_FOUND"
	ErrorTypeExtractFailed = "EXTRACT_FAILED"
)

// NewAddonError creates a new AddonError
func NewAddonError(errorType, message string, cause error) *AddonError {
	return &AddonError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewFetchError creates an error for a page that could not be fetched
func NewFetchError(url string, cause error) *AddonError {
	return NewAddonError(ErrorTypeFetchFailed, fmt.Sprintf("failed to fetch %s", url), cause)
}

// NewParseError creates a document parsing error
func NewParseError(message string, cause error) *AddonError {
	return NewAddonError(ErrorTypeParseFailed, message, cause)
}

// NewInvalidIDError creates an invalid ID error
func NewInvalidIDError(id string) *AddonError {
	return NewAddonError(ErrorTypeInvalidID, fmt.Sprintf("Invalid ID format: %s", id), nil)
}

// NewNotFoundError creates an error for unknown catalogs or items
func NewNotFoundError(what string) *AddonError {
	return NewAddonError(ErrorTypeNotFound, fmt.Sprintf("%s not found", what), nil)
}

// NewExtractError creates an extractor failure
func NewExtractError(extractor, url string, cause error) *AddonError {
	return NewAddonError(ErrorTypeExtractFailed, fmt.Sprintf("%s could not extract %s", extractor, url), cause)
}

// IsType reports whether any AddonError in err's chain has the given type.
func IsType(err error, errorType string) bool {
	for err != nil {
		var ae *AddonError
		if !errors.As(err, &ae) {
			return false
		}
		if ae.Type == errorType {
			return true
		}
		err = ae.Cause
	}
	return false
}
