package config

import (
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeConfigNotFound   = "CONFIG_NOT_FOUND"
	ErrCodeConfigParse      = "CONFIG_PARSE"
	ErrCodeConfigFormat     = "CONFIG_FORMAT"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
)

// UserError represents a user-friendly error with actionable suggestions.
type UserError struct {
	Code       string // Error code for categorization (e.g., "CONFIG_NOT_FOUND")
	Message    string // User-friendly error message
	Context    string // File path or key the error refers to
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *UserError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s (at %s)", e.Message, e.Context)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

// Format returns a fully formatted error with all details.
func (e *UserError) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, "\n  Location: %s", e.Context)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, "\n  Cause: %v", e.Underlying)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}

	return b.String()
}

// ErrorList accumulates validation errors for reporting them together.
type ErrorList struct {
	errors []*UserError
}

// AddValidation adds a validation error for field.
func (l *ErrorList) AddValidation(field, message, suggestion string) {
	l.errors = append(l.errors, &UserError{
		Code:       ErrCodeValidationFailed,
		Message:    fmt.Sprintf("%s: %s", field, message),
		Context:    field,
		Suggestion: suggestion,
	})
}

// Errors returns the list of errors.
func (l *ErrorList) Errors() []*UserError {
	return append([]*UserError(nil), l.errors...)
}

// Error implements the error interface for ErrorList.
func (l *ErrorList) Error() string {
	if len(l.errors) == 1 {
		return l.errors[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d errors occurred:\n", len(l.errors))
	for i, err := range l.errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Format returns a detailed formatted output of all errors.
func (l *ErrorList) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d error(s):\n", len(l.errors))
	for i, err := range l.errors {
		fmt.Fprintf(&b, "\n--- Error %d ---\n", i+1)
		b.WriteString(err.Format())
		b.WriteString("\n")
	}
	return b.String()
}

// AsError returns the ErrorList as an error, or nil if empty.
func (l *ErrorList) AsError() error {
	if len(l.errors) == 0 {
		return nil
	}
	return l
}

// NewConfigNotFoundError creates an error for a missing config file.
func NewConfigNotFoundError(path string) *UserError {
	return &UserError{
		Code:       ErrCodeConfigNotFound,
		Message:    fmt.Sprintf("configuration file not found: %s", path),
		Context:    path,
		Suggestion: "Check the --config path, or omit it to use the defaults.",
	}
}

// NewConfigParseError creates an error for a file that does not decode.
func NewConfigParseError(path, format string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeConfigParse,
		Message:    fmt.Sprintf("failed to parse %s configuration", format),
		Context:    path,
		Suggestion: "Check the file syntax. Durations are written like \"200ms\" or \"3s\".",
		Underlying: err,
	}
}

// NewConfigFormatError creates an error for an unsupported file extension.
func NewConfigFormatError(path string) *UserError {
	return &UserError{
		Code:       ErrCodeConfigFormat,
		Message:    "unsupported configuration format",
		Context:    path,
		Suggestion: "Use a .yaml, .yml, .toml or .ini file.",
	}
}
