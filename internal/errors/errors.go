package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Plan errors (PLAN-001 to PLAN-099)
	ErrCodePlanNotFound    ErrorCode = "PLAN-001"
	ErrCodePlanInvalidName ErrorCode = "PLAN-002"
	ErrCodePlanExists      ErrorCode = "PLAN-003"
	ErrCodeStoreNotSet     ErrorCode = "PLAN-004"

	// Task errors (TASK-001 to TASK-099)
	ErrCodeTaskNotFound ErrorCode = "TASK-001"
	ErrCodeTaskInvalid  ErrorCode = "TASK-002"

	// Validation errors (VALID-001 to VALID-099)
	ErrCodeValidationFailed ErrorCode = "VALID-001"

	// Workspace errors (WS-001 to WS-099)
	ErrCodeWorkspaceMissing ErrorCode = "WS-001"
	ErrCodeWorkspaceInit    ErrorCode = "WS-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
	ErrCodeFileUnmarshal   ErrorCode = "IO-005"
	ErrCodeFileMarshal     ErrorCode = "IO-006"
)

// PlancraftError represents an enhanced error with code, suggestions, and a cause
type PlancraftError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *PlancraftError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *PlancraftError) Unwrap() error {
	return e.Cause
}

// New creates a new PlancraftError
func New(code ErrorCode, message string) *PlancraftError {
	return &PlancraftError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new PlancraftError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *PlancraftError {
	return &PlancraftError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *PlancraftError) WithSuggestion(suggestion string) *PlancraftError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *PlancraftError) WithSuggestions(suggestions ...string) *PlancraftError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// IsNotFound reports whether err carries a not-found code.
// Callers use this to distinguish missing records from real I/O failures.
func IsNotFound(err error) bool {
	var perr *PlancraftError
	if !errors.As(err, &perr) {
		return false
	}
	switch perr.Code {
	case ErrCodePlanNotFound, ErrCodeTaskNotFound, ErrCodeFileNotFound, ErrCodeWorkspaceMissing:
		return true
	default:
		return false
	}
}

// Common error constructors for frequently used errors

// NewPlanNotFoundError creates a plan not found error
func NewPlanNotFoundError(name string) *PlancraftError {
	return New(ErrCodePlanNotFound, fmt.Sprintf("plan not found: %s", name)).
		WithSuggestion("Run 'plancraft plan list' to see available plans").
		WithSuggestion("Check if the plan name is spelled correctly")
}

// NewTaskNotFoundError creates a task not found error
func NewTaskNotFoundError(planName, taskID string) *PlancraftError {
	return New(ErrCodeTaskNotFound, fmt.Sprintf("task %s not found in plan %s", taskID, planName)).
		WithSuggestion(fmt.Sprintf("Run 'plancraft plan show %s' to see the plan's tasks", planName))
}

// NewStoreNotSetError creates a precondition error for plans without storage attached
func NewStoreNotSetError(planName string) *PlancraftError {
	return New(ErrCodeStoreNotSet, fmt.Sprintf("plan %s has no store attached", planName)).
		WithSuggestion("Call Plan.SetStore() before mutating the plan's tasks")
}

// NewWorkspaceMissingError creates a workspace not initialized error
func NewWorkspaceMissingError(dir string) *PlancraftError {
	return New(ErrCodeWorkspaceMissing, fmt.Sprintf("workspace not initialized: %s", dir)).
		WithSuggestion("Run 'plancraft init' to create the workspace")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *PlancraftError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}
