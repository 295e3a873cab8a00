package errors

import (
	"errors"
	"fmt"
	"net/http"

	"pdf-summarizer/internal/domain"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeTooLarge         ErrorType = "too_large"
	ErrorTypeInsufficientText ErrorType = "insufficient_text"
	ErrorTypeUnauthorized     ErrorType = "unauthorized"
	ErrorTypeInternal         ErrorType = "internal"
	ErrorTypeNetwork          ErrorType = "network"
	ErrorTypeTimeout          ErrorType = "timeout"
)

// GenerationFailedMessage is the generic message shown for any generation failure.
const GenerationFailedMessage = "Failed to generate summary"

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewPayloadTooLargeError creates an error for uploads over the size limit
func NewPayloadTooLargeError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeTooLarge,
		Message:    message,
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

// NewInsufficientTextError creates the error shown when a document has too little text
func NewInsufficientTextError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInsufficientText,
		Message:    domain.InsufficientTextMessage,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// NewTimeoutError creates an error for an upstream call that ran out of time
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// FromDomain maps pipeline errors onto user-facing application errors.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var insufficient *domain.InsufficientTextError
	if errors.As(err, &insufficient) {
		return NewInsufficientTextError(err)
	}

	var genErr *domain.GenerationError
	if errors.As(err, &genErr) {
		switch genErr.Kind {
		case domain.GenerationTimeout:
			return NewTimeoutError(GenerationFailedMessage, err)
		case domain.GenerationUnavailable:
			return NewNetworkError(GenerationFailedMessage, err)
		default:
			return NewInternalError(GenerationFailedMessage, err)
		}
	}

	if errors.Is(err, domain.ErrUnknownPreset) {
		return NewValidationError("Unknown preset", err.Error())
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return NewValidationError("Invalid request", validationErr.Error())
	}

	return NewInternalError("Internal server error", err)
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}
