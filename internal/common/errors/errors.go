// Package errors provides standardized error handling for the chat pipeline.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// ErrCodeValidation covers malformed inbound requests.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeNotFound covers unrecognized airport codes, cities or airlines.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeUpstreamUnavailable covers live-flight provider timeouts and
	// failures that could not be served from the fallback cache.
	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"

	// ErrCodeUnclassified marks queries no rule matched. Never surfaced as a
	// failure; the engine answers with generic help instead.
	ErrCodeUnclassified ErrorCode = "UNCLASSIFIED"

	// ErrCodeDatasetLoadFailed covers airport dataset load/download errors
	// at startup.
	ErrCodeDatasetLoadFailed ErrorCode = "DATASET_LOAD_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a non-retryable request validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates a non-retryable lookup miss.
func NewNotFoundError(what, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("%s not recognized", what),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamUnavailableError creates a retryable upstream failure.
func NewUpstreamUnavailableError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamUnavailable,
		Message:   fmt.Sprintf("Upstream provider '%s' unavailable", provider),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatasetLoadFailedError creates a retryable dataset load error.
func NewDatasetLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatasetLoadFailed,
		Message:   "Airport dataset load failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatus maps an error code to the status returned by the chat endpoint.
// NOT_FOUND and UNCLASSIFIED are answered with guidance text at 200; they are
// terminal classifications, not transport failures.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeUpstreamUnavailable:
		return http.StatusBadGateway
	case ErrCodeDatasetLoadFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}

// AsStandard extracts a *StandardError from err when present.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a NOT_FOUND StandardError.
func IsNotFound(err error) bool {
	stdErr, ok := AsStandard(err)
	return ok && stdErr.Code == ErrCodeNotFound
}
