package model

import "fmt"

// ParseError represents a failure to extract a model from incoming Finvoice
// XML. Path names the element (or document region) that failed.
type ParseError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("finvoice parse: %s: %s (%v)", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("finvoice parse: %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(path, message string, cause error) *ParseError {
	return &ParseError{
		Path:    path,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError represents a model value that cannot be rendered into a
// valid payable document (for example a seller without bank identifiers).
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}
