package generator

import (
	"fmt"
	"strings"
)

// GeneratorError provides error reporting with specification context
type GeneratorError struct {
	Message    string
	Title      string // Title of the specification being expanded
	SourceLine int
	ErrorType  string // "validation", "template"
}

func (e *GeneratorError) Error() string {
	var builder strings.Builder

	if e.ErrorType != "" {
		builder.WriteString(fmt.Sprintf("[%s] ", e.ErrorType))
	}

	if e.Title != "" && e.SourceLine > 0 {
		builder.WriteString(fmt.Sprintf("error in specification '%s' at line %d: %s",
			e.Title, e.SourceLine, e.Message))
	} else if e.Title != "" {
		builder.WriteString(fmt.Sprintf("error in specification '%s': %s", e.Title, e.Message))
	} else {
		builder.WriteString(fmt.Sprintf("generator error: %s", e.Message))
	}

	return builder.String()
}

// ValidationError represents a validation failure detected before emission
type ValidationError struct {
	*GeneratorError
	Cause error
}

func NewValidationError(message, title string, sourceLine int) *ValidationError {
	return &ValidationError{
		GeneratorError: &GeneratorError{
			Message:    message,
			Title:      title,
			SourceLine: sourceLine,
			ErrorType:  "validation",
		},
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// TemplateError represents a failure while rendering output templates
type TemplateError struct {
	*GeneratorError
	TemplateName string
}

func NewTemplateError(message, templateName string) *TemplateError {
	return &TemplateError{
		GeneratorError: &GeneratorError{
			Message:   message,
			ErrorType: "template",
		},
		TemplateName: templateName,
	}
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("[template] error in template '%s': %s", e.TemplateName, e.Message)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
