package exitcode

import (
	"context"
	"errors"
	"os"

	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// ParseError indicates input that could not be read or parsed into the
	// typed model: unreadable files, malformed files, bad settings, bad flags
	ParseError = 1

	// ValidationFailed indicates the inputs parsed but do not form a valid
	// plan: unsatisfiable constraints, cycles, incomplete configuration
	ValidationFailed = 2

	// Interrupted indicates the run was cancelled by a signal or ran past
	// its --timeout
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to its exit code by the stage that raised it
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Interrupted
	}

	var be *builderrors.BuildError
	if errors.As(err, &be) {
		switch be.Stage() {
		case builderrors.StageResolve, builderrors.StagePlan, builderrors.StageValidate:
			return ValidationFailed
		default:
			return ParseError
		}
	}

	// Untyped errors come from flag parsing and file access before any
	// stage ran.
	return ParseError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case ParseError:
		return "Parse error (unreadable or malformed input)"
	case ValidationFailed:
		return "Validation failure"
	case Interrupted:
		return "Interrupted (signal or timeout)"
	default:
		return "Unknown error"
	}
}
