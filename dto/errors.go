package dto

import (
	"errors"
	"fmt"
)

// Validation errors are reported to the user before any processing happens.
var (
	ErrNoFile           = errors.New("no document provided")
	ErrInvalidFileType  = errors.New("invalid file type, only PDF is allowed")
	ErrFileTooLarge     = errors.New("document exceeds the maximum upload size")
	ErrInvalidSessionID = errors.New("session_id is not a valid UUID")
)

// ErrSessionNotFound means the advisory flow was entered with an unknown
// session id. The user is redirected to start over.
var ErrSessionNotFound = errors.New("session not found")

// ExtractionError wraps a failure while reading the uploaded document. The
// document file is already deleted by the time this error surfaces.
type ExtractionError struct {
	Stage string // "text-layer", "rasterize" or "ocr"
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed at %s: %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a pre-processing validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNoFile) ||
		errors.Is(err, ErrInvalidFileType) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrInvalidSessionID)
}

// ErrorResponse is the JSON error body returned by all handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
