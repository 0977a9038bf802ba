package errors

// Convenience functions for common error patterns

// Config errors

func ConfigUnreadable(path string, cause error) *FileSyncError {
	return Wrap(cause, CategoryConfig, SeverityWarning, "configuration unreadable, using defaults").
		WithContext("path", path)
}

func ConfigWriteFailed(path string, cause error) *FileSyncError {
	return Wrap(cause, CategoryConfig, SeverityError, "configuration could not be saved").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *FileSyncError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Sync errors

func SourceUnavailable(path string, cause error) *FileSyncError {
	return Wrap(cause, CategorySource, SeverityWarning, "source file unavailable").
		WithContext("path", path)
}

func DestinationFailed(dir string, cause error) *FileSyncError {
	return Wrap(cause, CategoryDestination, SeverityWarning, "copy to destination failed").
		WithContext("destination", dir)
}

func InspectFailed(path string, cause error) *FileSyncError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "destination file unreadable").
		WithContext("path", path)
}

// Runtime errors

func ScheduleFailed(operation string, cause error) *FileSyncError {
	return Wrap(cause, CategorySchedule, SeverityError, "scheduler operation failed").
		WithContext("operation", operation)
}

func CoordinatorClosed() *FileSyncError {
	return New(CategoryRuntime, SeverityError, "coordinator is closed")
}

func JournalFailed(operation string, cause error) *FileSyncError {
	return Wrap(cause, CategoryJournal, SeverityWarning, "journal operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *FileSyncError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
