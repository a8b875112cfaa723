// Package exitcode defines the process exit codes used by the plancraft CLI
// and maps errors onto them.
package exitcode

import (
	stderrors "errors"
	"os"

	"github.com/felixgeelhaar/plancraft/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ValidationFailed indicates a plan failed consistency validation
	ValidationFailed = 3

	// NotFound indicates a plan or task record was not found
	NotFound = 4

	// Interrupted indicates the operation was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}
	if errors.IsNotFound(err) {
		return NotFound
	}

	var perr *errors.PlancraftError
	if stderrors.As(err, &perr) && perr.Code == errors.ErrCodeValidationFailed {
		return ValidationFailed
	}

	return GeneralError
}
