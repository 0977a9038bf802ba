package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if fse, ok := As(err); ok {
		return a.exitCodeFromFileSync(fse)
	}

	return 1
}

// exitCodeFromFileSync maps FileSyncError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromFileSync(err *FileSyncError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategorySource, CategoryDestination, CategoryFileSystem:
		return 11 // Filesystem error
	case CategorySchedule, CategoryJournal, CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if fse, ok := As(err); ok {
		return a.formatFileSync(fse)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatFileSync formats a FileSyncError for display.
func (a *CLIErrorAdapter) formatFileSync(err *FileSyncError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		if reason, ok := err.Context["reason"]; ok {
			return fmt.Sprintf("%s: %v", err.Message, reason)
		}
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.out, "%s\n", message)
	a.exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if fse, ok := As(err); ok {
		return fse.Category == CategoryInternal ||
			fse.Category == CategoryRuntime ||
			fse.Severity == SeverityFatal
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if fse, ok := As(err); ok {
		level := a.slogLevelFromSeverity(fse.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(fse.Category)),
		}
		for k, v := range fse.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if fse.Cause != nil {
			attrs = append(attrs, slog.String("cause", fse.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), level, fse.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts FileSyncError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
