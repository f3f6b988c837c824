package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddonErrorFormatting(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewFetchError("https://example.test/a/", cause)

	assert.Equal(t, "FETCH_FAILED: failed to fetch https://example.test/a/ (caused by: connection refused)", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "INVALID_ID: Invalid ID format: x", NewInvalidIDError("x").Error())
}

func TestIsType(t *testing.T) {
	wrapped := fmt.Errorf("meta: %w", NewNotFoundError("meta"))

	assert.True(t, IsType(wrapped, ErrorTypeNotFound))
	assert.False(t, IsType(wrapped, ErrorTypeFetchFailed))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeNotFound))
}

func TestIsTypeWalksNestedAddonErrors(t *testing.T) {
	err := NewExtractError("Mivalyo", "https://mivalyo.com/v/x", NewParseError("unpack player script", errors.New("bad")))

	assert.True(t, IsType(err, ErrorTypeExtractFailed))
	assert.True(t, IsType(err, ErrorTypeParseFailed))
	assert.False(t, IsType(err, ErrorTypeNotFound))
	assert.Equal(t, "NOT_FOUND: catalog film21-x not found", NewNotFoundError("catalog film21-x").Error())
}
