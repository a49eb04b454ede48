package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput     = errors.New("input is empty or contains only whitespace")
	ErrMultipleJSON   = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrNoInput        = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrEmptySelection = errors.New("selection set is empty, export would produce an empty document")
	ErrNotArray       = errors.New("value is not a JSON array literal")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput          ErrorType = "input"
	ErrorTypeParse          ErrorType = "parse"
	ErrorTypeConflict       ErrorType = "structural_conflict"
	ErrorTypeStaleSelection ErrorType = "stale_selection"
	ErrorTypeArrayLiteral   ErrorType = "array_literal"
	ErrorTypeExport         ErrorType = "export"
	ErrorTypeUnknown        ErrorType = "unknown"
)

// AppError is an application-specific error with context. None of these are
// fatal: every type maps to a recovery the caller performs (reject the load,
// skip the path, re-prompt the edit, ask for confirmation).
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to reading input
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParseError creates a new error related to JSON parsing. The prior
// document and selection stay untouched when a load fails with one of these.
func NewParseError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: message,
		Err:     err,
	}
}

// NewConflictError records a structural type conflict: a write descended
// into a primitive or through a container of the wrong kind. Writes resolve
// these by overwriting, so the error is logged rather than returned.
func NewConflictError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
		Err:     err,
	}
}

// NewStaleSelectionError records a selected path that no longer resolves in
// the current document. Reconstruction skips these silently.
func NewStaleSelectionError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeStaleSelection,
		Message: message,
		Err:     err,
	}
}

// NewArrayLiteralError creates a new error for bulk array text that does not
// parse as a JSON array
func NewArrayLiteralError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeArrayLiteral,
		Message: message,
		Err:     err,
	}
}

// NewExportError creates a new error related to producing or writing the
// exported subset
func NewExportError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExport,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParse:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeConflict:
			return fmt.Sprintf("Structural conflict: %s", appErr.Message)
		case ErrorTypeStaleSelection:
			return fmt.Sprintf("Stale selection: %s", appErr.Message)
		case ErrorTypeArrayLiteral:
			return fmt.Sprintf("Array edit error: %s", appErr.Message)
		case ErrorTypeExport:
			return fmt.Sprintf("Export error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrMultipleJSON) {
		return "Error: Multiple JSON values found. Please provide a single JSON document."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrEmptySelection) {
		return "Error: The selection is empty. Select at least one path or pass --allow-empty to export anyway."
	}
	if errors.Is(err, ErrNotArray) {
		return "Error: The text is not a JSON array. Provide a value like [1, 2, 3]."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
