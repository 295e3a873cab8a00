package domain

import (
	"errors"
	"fmt"
)

// InsufficientTextMessage is shown when a document yields too little text to summarize.
const InsufficientTextMessage = "Could not read enough text from PDF."

// Domain errors
var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrInvalidFile   = errors.New("invalid file")
	ErrInvalidToken  = errors.New("invalid token")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// ExtractionError reports a document that could not be opened or parsed.
// Page is 1-based; 0 means the failure happened before any page was read.
type ExtractionError struct {
	Page  int
	Cause error
}

func (e *ExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("extract page %d: %v", e.Page, e.Cause)
	}
	return fmt.Sprintf("extract document: %v", e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// InsufficientTextError reports normalized text at or below the preset threshold.
type InsufficientTextError struct {
	Length    int
	Threshold int
}

func (e *InsufficientTextError) Error() string {
	return InsufficientTextMessage
}

// GenerationErrorKind classifies summary generation failures.
type GenerationErrorKind string

const (
	GenerationUnavailable GenerationErrorKind = "unavailable"
	GenerationInference   GenerationErrorKind = "inference"
	GenerationTimeout     GenerationErrorKind = "timeout"
	GenerationEmpty       GenerationErrorKind = "empty"
)

// GenerationError reports a model that failed to load or to produce a summary.
type GenerationError struct {
	Kind    GenerationErrorKind
	Backend string
	Cause   error
}

// NewGenerationError builds a GenerationError.
func NewGenerationError(backend string, kind GenerationErrorKind, cause error) *GenerationError {
	return &GenerationError{Kind: kind, Backend: backend, Cause: cause}
}

func (e *GenerationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("generation %s (%s)", e.Kind, e.Backend)
	}
	return fmt.Sprintf("generation %s (%s): %v", e.Kind, e.Backend, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// IsGenerationKind reports whether err is a GenerationError of the given kind.
func IsGenerationKind(err error, kind GenerationErrorKind) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr) && genErr.Kind == kind
}
