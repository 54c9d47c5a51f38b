package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/impostor-party/impostor/internal/errors"
	"github.com/impostor-party/impostor/internal/handlers"
)

func TestAPIError_Error(t *testing.T) {
	err := handlers.NewAPIError(http.StatusBadRequest, "BAD_REQUEST", "test message")

	if err.Error() != "test message" {
		t.Errorf("expected 'test message', got %q", err.Error())
	}
	if err.Code != "BAD_REQUEST" {
		t.Errorf("expected code 'BAD_REQUEST', got %q", err.Code)
	}
}

func TestBadRequest(t *testing.T) {
	err := handlers.BadRequest("invalid input")

	if err.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", err.Status)
	}
	if err.Message != "invalid input" {
		t.Errorf("expected message 'invalid input', got %q", err.Message)
	}
}

func TestNotFound(t *testing.T) {
	err := handlers.NotFound("resource not found")

	if err.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", err.Status)
	}
}

func TestConflict(t *testing.T) {
	err := handlers.Conflict("already running")

	if err.Status != http.StatusConflict {
		t.Errorf("expected status 409, got %d", err.Status)
	}
	if err.Code != "CONFLICT" {
		t.Errorf("expected code 'CONFLICT', got %q", err.Code)
	}
}

func TestInternalError(t *testing.T) {
	originalErr := fmt.Errorf("db connection failed")
	err := handlers.InternalError(originalErr)

	if err.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", err.Status)
	}
	// Internal errors must not leak the original message
	if err.Message != "Internal server error" {
		t.Errorf("expected generic message, got %q", err.Message)
	}
}

func TestToAPIError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", errors.NotFound("missing"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", errors.Validation("bad value"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", errors.Conflict("busy"), http.StatusConflict, "CONFLICT"},
		{"no words", errors.NoWords("no enabled categories"), http.StatusBadRequest, "NO_WORDS"},
		{"internal", errors.Internal(fmt.Errorf("boom")), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"plain error", fmt.Errorf("unexpected"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := handlers.ToAPIError(tt.err)

			if apiErr.Status != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, apiErr.Status)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, apiErr.Code)
			}
		})
	}
}

func TestToAPIError_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("handler context: %w", errors.NotFound("category gone"))

	apiErr := handlers.ToAPIError(wrapped)

	if apiErr.Status != http.StatusNotFound {
		t.Errorf("expected wrapped kind to survive, got status %d", apiErr.Status)
	}
	if apiErr.Message != "category gone" {
		t.Errorf("expected original message, got %q", apiErr.Message)
	}
}
