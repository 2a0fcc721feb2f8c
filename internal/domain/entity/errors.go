package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for the summarization pipeline.
// Callers classify failures with errors.Is; every layer wraps with %w.
var (
	// ErrInvalidInput indicates that the provided input is invalid
	// (missing content, unknown mode or length, malformed URL).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPostURL indicates that a post URL does not have the
	// <host>/<author>/0x<64 hex> shape. It is also an ErrInvalidInput.
	ErrInvalidPostURL = fmt.Errorf("%w: invalid Farcaster post URL", ErrInvalidInput)

	// ErrFetch indicates a transport failure or non-success HTTP status
	// during an outbound GET.
	ErrFetch = errors.New("fetch failed")

	// ErrBackendUnconfigured indicates that the credential required by the
	// summarization backend is missing.
	ErrBackendUnconfigured = errors.New("summarization backend not configured")

	// ErrBackend indicates a non-success or malformed response from an
	// external API (summarization backend or post API).
	ErrBackend = errors.New("backend request failed")

	// ErrEmptyContent indicates that extraction produced no usable text.
	ErrEmptyContent = errors.New("no content found to summarize")

	// ErrEmptyResult indicates that the backend returned no summary text.
	ErrEmptyResult = errors.New("no summary generated")
)

// ValidationError represents a validation error with detailed field information.
// It unwraps to ErrInvalidInput so callers only need one errors.Is check.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap returns ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
