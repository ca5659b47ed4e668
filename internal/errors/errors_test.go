package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	err := NewInvalidRequest("index must be an integer")
	want := "INVALID_REQUEST: index must be an integer"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestNewMalformedDocument(t *testing.T) {
	err := NewMalformedDocument("expected ','", 17)
	if err.Code != ErrMalformedDocument || err.Status != 422 {
		t.Errorf("code/status = %s/%d", err.Code, err.Status)
	}
	if !strings.Contains(err.Message, "at position 17") {
		t.Errorf("Message = %q, want position suffix", err.Message)
	}
	if got := err.Details["position"]; got != 17 {
		t.Errorf("Details[position] = %v, want 17", got)
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound(5, 2)
	if err.Code != ErrNotFound || err.Status != 404 {
		t.Errorf("code/status = %s/%d", err.Code, err.Status)
	}
	if err.Details["index"] != 5 || err.Details["count"] != 2 {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestNewIOFailed(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := NewIOFailed("write field_notes.json", cause)
	if err.Code != ErrIOFailed || err.Status != 500 {
		t.Errorf("code/status = %s/%d", err.Code, err.Status)
	}
	if !strings.Contains(err.Message, "permission denied") {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestNewInternal_NilError(t *testing.T) {
	err := NewInternal(nil)
	if err.Message != "internal error" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestIs(t *testing.T) {
	if !Is(NewInvalidRequest("x"), ErrInvalidRequest) {
		t.Error("Is should match the code")
	}
	if Is(NewInvalidRequest("x"), ErrNotFound) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrInternal) {
		t.Error("Is should not match a non-NoteError")
	}
	if Is(nil, ErrInternal) {
		t.Error("Is should not match nil")
	}
}
