// Package errors provides a lightweight structured error type (FileSyncError)
// for category-based classification in the sync engine and the CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a filesync error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Sync pass errors
	CategorySource      ErrorCategory = "source"
	CategoryDestination ErrorCategory = "destination"
	CategoryFileSystem  ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategorySchedule ErrorCategory = "schedule"
	CategoryJournal  ErrorCategory = "journal"
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// FileSyncError is a structured error with category, severity and context
type FileSyncError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for FileSyncError
type ContextFields map[string]any

// Error implements the error interface
func (e *FileSyncError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *FileSyncError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *FileSyncError) WithContext(key string, value any) *FileSyncError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new FileSyncError
func New(category ErrorCategory, severity ErrorSeverity, message string) *FileSyncError {
	return &FileSyncError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new FileSyncError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *FileSyncError {
	return &FileSyncError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As extracts the first FileSyncError in err's chain.
func As(err error) (*FileSyncError, bool) {
	var fse *FileSyncError
	if stderrors.As(err, &fse) {
		return fse, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if fse, ok := As(err); ok {
		return fse.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a FileSyncError
func GetCategory(err error) ErrorCategory {
	if fse, ok := As(err); ok {
		return fse.Category
	}
	return CategoryInternal
}

// IsSoft reports whether err is a classified error that must not stop the process.
// Source, destination and filesystem failures are tallied by the sync pass instead.
func IsSoft(err error) bool {
	fse, ok := As(err)
	if !ok {
		return false
	}
	return fse.Severity != SeverityFatal
}
