// Package errors classifies tool-level failures so the CLI can report them
// consistently and map them to exit codes.
package errors

import (
	"fmt"
)

// Error types for different categories of failures
const (
	ErrUsage       = "USAGE_ERROR"
	ErrInputRead   = "INPUT_READ_ERROR"
	ErrSpecParse   = "SPEC_PARSE_ERROR"
	ErrGeneration  = "GENERATION_ERROR"
	ErrOutputWrite = "OUTPUT_WRITE_ERROR"
	ErrWatch       = "WATCH_ERROR"
)

// Exit codes reported to the build pipeline, one per failure category
const (
	ExitSuccess    = 0
	ExitUsage      = 1
	ExitIO         = 2
	ExitParse      = 3
	ExitGeneration = 4
)

// ToolError represents a structured error with type and context
type ToolError struct {
	Type    string
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *ToolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap allows error unwrapping
func (e *ToolError) Unwrap() error {
	return e.Cause
}

// New creates a new ToolError
func New(errorType, message string) *ToolError {
	return &ToolError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Wrap creates a new ToolError wrapping an existing error
func Wrap(errorType, message string, cause error) *ToolError {
	return &ToolError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (e *ToolError) WithContext(key string, value interface{}) *ToolError {
	e.Context[key] = value
	return e
}

// GetContext returns context value by key
func (e *ToolError) GetContext(key string) (interface{}, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType string) bool {
	if toolErr, ok := err.(*ToolError); ok {
		return toolErr.Type == errorType
	}
	return false
}

// NewInputError creates an input-read error for a file
func NewInputError(path string, cause error) *ToolError {
	return Wrap(ErrInputRead, fmt.Sprintf("reading %s", path), cause).
		WithContext("path", path)
}

// NewParseError creates a specification parse error for a file
func NewParseError(path string, cause error) *ToolError {
	return Wrap(ErrSpecParse, fmt.Sprintf("parsing %s", path), cause).
		WithContext("path", path)
}

// NewGenerationError creates a generation error for a file
func NewGenerationError(path string, cause error) *ToolError {
	return Wrap(ErrGeneration, fmt.Sprintf("generating tests from %s", path), cause).
		WithContext("path", path)
}

// NewWriteError creates an output-write error
func NewWriteError(path string, cause error) *ToolError {
	return Wrap(ErrOutputWrite, fmt.Sprintf("writing %s", path), cause).
		WithContext("path", path)
}

// ExitCode maps an error to the tool's exit code scheme
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	toolErr, ok := err.(*ToolError)
	if !ok {
		return ExitUsage
	}
	switch toolErr.Type {
	case ErrInputRead, ErrOutputWrite, ErrWatch:
		return ExitIO
	case ErrSpecParse:
		return ExitParse
	case ErrGeneration:
		return ExitGeneration
	default:
		return ExitUsage
	}
}
