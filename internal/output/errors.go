package output

import (
	"errors"
	"fmt"
)

// Exit codes following sysexits.h convention
const (
	ExitOK          = 0  // Success
	ExitGeneral     = 1  // General error
	ExitUsage       = 2  // Invalid usage / bad arguments
	ExitNotFound    = 4  // Item not found
	ExitConflict    = 5  // Item already exists
	ExitConfigError = 10 // Configuration error
	ExitSpawn       = 12 // Process or terminal could not be started
	ExitScript      = 13 // Script could not be written to the workspace
	ExitUnsupported = 14 // No launcher for this platform
	ExitUnavailable = 69 // Clipboard or other OS service missing (EX_UNAVAILABLE)
	ExitLocked      = 75 // Item list locked by another process (EX_TEMPFAIL)
)

// CLIError represents a structured error with exit code and optional hint
type CLIError struct {
	ExitCode int
	Message  string
	Hint     string

	// Err is the underlying cause, kept for errors.Is
	Err error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the cause
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError
func NewCLIError(code int, msg string) *CLIError {
	return &CLIError{
		ExitCode: code,
		Message:  msg,
	}
}

// Wrap creates a CLIError whose message is msg followed by the cause
func Wrap(code int, msg string, err error) *CLIError {
	return &CLIError{
		ExitCode: code,
		Message:  fmt.Sprintf("%s: %v", msg, err),
		Err:      err,
	}
}

// WithHint adds a user-facing hint to the error
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// ExitWithError prints the error via the formatter and returns the exit code
// main should exit with. os.Exit itself stays in main.
func ExitWithError(formatter Formatter, err error) int {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		formatter.PrintError(cliErr)
		if cliErr.Hint != "" {
			formatter.PrintHint(cliErr.Hint)
		}
		return cliErr.ExitCode
	}

	formatter.PrintError(err)
	return ExitGeneral
}
