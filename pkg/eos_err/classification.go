// pkg/eos_err/classification.go
//
// Error classification with exit codes. Commands return classified errors
// and main() turns them into a process status.

package eos_err

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory classifies errors for appropriate handling
type ErrorCategory int

const (
	// CategorySystem - OS/terminal/filesystem issues (exit 1)
	CategorySystem ErrorCategory = iota
	// CategoryValidation - Input or configuration the user can fix (exit 2)
	CategoryValidation
	// CategoryUser - User cancelled/interrupted (exit 130)
	CategoryUser
	// CategoryInternal - Bugs in passgen itself (exit 3)
	CategoryInternal
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryUser:
		return "user"
	case CategoryInternal:
		return "internal"
	default:
		return "system"
	}
}

// ClassifiedError wraps an error with category and remediation info
type ClassifiedError struct {
	Category    ErrorCategory
	Message     string
	Cause       error
	Remediation []string
}

// Error implements the error interface
func (e *ClassifiedError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Message)

	if e.Cause != nil && e.Cause.Error() != e.Message {
		sb.WriteString(fmt.Sprintf("\n\nCause: %v", e.Cause))
	}

	if len(e.Remediation) > 0 {
		sb.WriteString("\n\nHow to fix:")
		for i, step := range e.Remediation {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	return sb.String()
}

// Unwrap returns the underlying error
func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error category
func (e *ClassifiedError) ExitCode() int {
	switch e.Category {
	case CategoryUser:
		return 130 // Standard for SIGINT (Ctrl-C)
	case CategoryValidation:
		return 2
	case CategoryInternal:
		return 3
	default:
		return 1
	}
}

// GetExitCode extracts exit code from any error.
// Returns 0 for nil, the category code for classified errors, 2 for other
// expected user errors and 1 for everything else.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.ExitCode()
	}

	if IsExpectedUserError(err) {
		return 2
	}

	return 1
}

// CategoryOf returns the category of err, CategorySystem when unclassified.
func CategoryOf(err error) ErrorCategory {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Category
	}
	if IsExpectedUserError(err) {
		return CategoryValidation
	}
	return CategorySystem
}

// NewValidationError creates an error for input validation failures
func NewValidationError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryValidation,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewSystemError creates an error for terminal or filesystem failures
func NewSystemError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategorySystem,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewInternalError creates an error for passgen bugs.
// These should be reported to developers
func NewInternalError(message string, cause error) error {
	return &ClassifiedError{
		Category: CategoryInternal,
		Message:  message,
		Cause:    cause,
		Remediation: []string{
			"This is likely a bug in passgen",
			"Rerun with --log-level debug and include the log output in a report",
		},
	}
}

// NewUserCancelledError creates an error for user-initiated cancellation
func NewUserCancelledError(operation string) error {
	return &ClassifiedError{
		Category:    CategoryUser,
		Message:     fmt.Sprintf("Operation cancelled by user: %s", operation),
		Remediation: []string{"Run the command again to retry"},
	}
}
