package ux

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError adds a suggestion to errors that do not carry one.
// Typed build errors already list their suggestions and pass through.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}

	var be *builderrors.BuildError
	if errors.As(err, &be) {
		return err
	}

	errMsg := err.Error()

	if errors.Is(err, fs.ErrNotExist) {
		if strings.Contains(errMsg, "build-plan.") {
			return NewErrorWithSuggestion(err,
				"Pass --config <file>, or create build-plan.properties in the project root")
		}
		if strings.Contains(errMsg, "dependencies.") {
			return NewErrorWithSuggestion(err,
				"Pass --deps <file>, or create dependencies.txt in the project root")
		}
		return NewErrorWithSuggestion(err, "Check that the file path is correct")
	}

	if errors.Is(err, fs.ErrPermission) || strings.Contains(errMsg, "permission denied") {
		return NewErrorWithSuggestion(err,
			"Check file permissions and ensure you have access to the required files/directories")
	}

	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "unknown command") {
		return NewErrorWithSuggestion(err, "Run 'build-plan --help' for usage")
	}

	if strings.Contains(errMsg, "deadline exceeded") {
		return NewErrorWithSuggestion(err, "Raise --timeout or check that the repository directory is reachable")
	}

	return err
}

// FormatError provides consistent error formatting with context
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}
