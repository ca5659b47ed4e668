package errors

import "fmt"

// ErrorCode represents a field-notes error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"    // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrMalformedDocument ErrorCode = "MALFORMED_DOCUMENT" // 422
	ErrIOFailed          ErrorCode = "IO_FAILED"          // 500
	ErrInternal          ErrorCode = "INTERNAL"           // 500
)

// NoteError represents a structured error with code, status, and details.
type NoteError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *NoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *NoteError {
	return &NoteError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for an entry index outside the stored sequence.
func NewNotFound(index, count int) *NoteError {
	return &NoteError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("no entry at index %d (store holds %d)", index, count),
		Details: map[string]any{"index": index, "count": count},
	}
}

// NewMalformedDocument creates a 422 error for a storage document the decoder rejects.
// The byte offset where parsing failed is carried in Details.
func NewMalformedDocument(msg string, pos int) *NoteError {
	return &NoteError{
		Code:    ErrMalformedDocument,
		Status:  422,
		Message: fmt.Sprintf("%s at position %d", msg, pos),
		Details: map[string]any{"position": pos},
	}
}

// NewIOFailed creates a 500 error for a failed file operation.
func NewIOFailed(op string, err error) *NoteError {
	return &NoteError{
		Code:    ErrIOFailed,
		Status:  500,
		Message: fmt.Sprintf("%s: %v", op, err),
		Details: map[string]any{"op": op},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *NoteError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &NoteError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a NoteError with the given code.
func Is(err error, code ErrorCode) bool {
	if nErr, ok := err.(*NoteError); ok {
		return nErr.Code == code
	}
	return false
}
