package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"pdf-summarizer/internal/domain"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantType   ErrorType
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "insufficient text",
			err:        &domain.InsufficientTextError{Length: 50, Threshold: 100},
			wantType:   ErrorTypeInsufficientText,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "Could not read enough text from PDF.",
		},
		{
			name:       "generation timeout",
			err:        domain.NewGenerationError("huggingface", domain.GenerationTimeout, context.DeadlineExceeded),
			wantType:   ErrorTypeTimeout,
			wantStatus: http.StatusGatewayTimeout,
			wantMsg:    GenerationFailedMessage,
		},
		{
			name:       "model unavailable",
			err:        domain.NewGenerationError("vertex", domain.GenerationUnavailable, errors.New("no credentials")),
			wantType:   ErrorTypeNetwork,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    GenerationFailedMessage,
		},
		{
			name:       "inference failure",
			err:        fmt.Errorf("summarize: %w", domain.NewGenerationError("openai", domain.GenerationInference, errors.New("oom"))),
			wantType:   ErrorTypeInternal,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    GenerationFailedMessage,
		},
		{
			name:       "unknown preset",
			err:        fmt.Errorf("%w: %q", domain.ErrUnknownPreset, "nope"),
			wantType:   ErrorTypeValidation,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Unknown preset",
		},
		{
			name:       "plain error",
			err:        errors.New("disk full"),
			wantType:   ErrorTypeInternal,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomain(tt.err)
			if appErr.Type != tt.wantType {
				t.Errorf("expected type %s, got %s", tt.wantType, appErr.Type)
			}
			if appErr.StatusCode != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, appErr.StatusCode)
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, appErr.Message)
			}
		})
	}
}

func TestFromDomain_PassesAppErrorThrough(t *testing.T) {
	original := NewPayloadTooLargeError("File too large")
	wrapped := fmt.Errorf("upload: %w", original)

	if got := FromDomain(wrapped); got != original {
		t.Fatalf("expected the wrapped AppError to be returned unchanged")
	}
	if FromDomain(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewValidationError("bad", "details"))

	if !IsType(err, ErrorTypeValidation) {
		t.Error("expected validation type")
	}
	if IsType(errors.New("x"), ErrorTypeValidation) {
		t.Error("expected plain errors to match no type")
	}
	if err.Error() != "wrapped: validation: bad (details)" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
