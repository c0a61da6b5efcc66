package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIncludesInternal(t *testing.T) {
	internal := stdErrors.New("boom")
	err := Wrap(internal, "failed")

	if err.Error() != "failed: boom" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
	if !stdErrors.Is(err, internal) {
		t.Fatal("expected wrapped error to unwrap to the internal error")
	}
}

func TestWithInternalCopies(t *testing.T) {
	base := New("TEST", "test", 400)
	with := base.WithInternal(stdErrors.New("oops"))

	if with == base {
		t.Fatal("expected WithInternal to return a copy")
	}
	if base.Internal != nil {
		t.Fatal("expected original error to remain unchanged")
	}
	if with.Internal == nil {
		t.Fatal("expected internal error to be set")
	}
}

func TestIsMatchesCopiesByCode(t *testing.T) {
	conflict := New("COMPANY_EXISTS", "exists", http.StatusConflict)
	copyWithCause := conflict.WithInternal(stdErrors.New("unique constraint"))

	if !stdErrors.Is(fmt.Errorf("wrap: %w", copyWithCause), conflict) {
		t.Fatal("expected copy to match original by code")
	}
	if stdErrors.Is(copyWithCause, ErrNotFound) {
		t.Fatal("expected different codes not to match")
	}
}

func TestFromError(t *testing.T) {
	appErr := ErrNotFound
	if out := FromError(appErr); out != appErr {
		t.Fatal("expected FromError to return the same AppError instance")
	}

	wrapped := fmt.Errorf("company service: %w", ErrBadRequest)
	if out := FromError(wrapped); out != ErrBadRequest {
		t.Fatal("expected FromError to find the AppError in the chain")
	}

	raw := stdErrors.New("raw")
	out := FromError(raw)
	if out.Code != ErrInternalServer.Code {
		t.Fatalf("expected internal server code, got %s", out.Code)
	}
	if out.Internal == nil {
		t.Fatal("expected internal error to be attached")
	}
	if FromError(nil) != nil {
		t.Fatal("expected nil for nil input")
	}
}

func TestStatusDefaults(t *testing.T) {
	if got := New("X", "x", 0).Status(); got != http.StatusInternalServerError {
		t.Fatalf("expected 500 default, got %d", got)
	}
	if got := NewNotFound("icon not found").Status(); got != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", got)
	}
	var nilErr *AppError
	if got := nilErr.Status(); got != http.StatusInternalServerError {
		t.Fatalf("expected 500 for nil error, got %d", got)
	}
}

func TestNewBadRequest(t *testing.T) {
	err := NewBadRequest("invalid payload")
	if err.Code != ErrBadRequest.Code {
		t.Fatalf("expected %s, got %s", ErrBadRequest.Code, err.Code)
	}
	if err.Message != "invalid payload" {
		t.Fatalf("unexpected message: %s", err.Message)
	}
	if err.StatusCode != ErrBadRequest.StatusCode {
		t.Fatalf("unexpected status: %d", err.StatusCode)
	}
}
