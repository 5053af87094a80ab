package exitcode

import (
	"context"
	"errors"
	"fmt"
	"testing"

	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"Success", Success, 0},
		{"ParseError", ParseError, 1},
		{"ValidationFailed", ValidationFailed, 2},
		{"Interrupted", Interrupted, 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("Exit code %s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error returns success",
			err:      nil,
			expected: Success,
		},
		{
			name:     "missing required setting is a parse error",
			err:      builderrors.NewMissingRequiredSetting("applicationId"),
			expected: ParseError,
		},
		{
			name:     "type mismatch is a parse error",
			err:      builderrors.NewTypeMismatch("minSdk", "int", "x", nil),
			expected: ParseError,
		},
		{
			name:     "file not found is a parse error",
			err:      builderrors.NewFileNotFoundError("deps.yaml"),
			expected: ParseError,
		},
		{
			name:     "unsatisfiable constraint is a validation failure",
			err:      builderrors.NewUnsatisfiableConstraint("g:a", []string{"^1.0.0"}, nil),
			expected: ValidationFailed,
		},
		{
			name:     "wrapped cycle is a validation failure",
			err:      fmt.Errorf("assemble: %w", builderrors.NewCyclicDependency([]string{"a", "b", "a"})),
			expected: ValidationFailed,
		},
		{
			name:     "incomplete configuration is a validation failure",
			err:      builderrors.NewIncompleteConfiguration("x", []string{"x"}),
			expected: ValidationFailed,
		},
		{
			name:     "cancellation is an interrupt",
			err:      fmt.Errorf("stage resolve: %w", context.Canceled),
			expected: Interrupted,
		},
		{
			name:     "timeout is an interrupt",
			err:      fmt.Errorf("stage plan: %w", context.DeadlineExceeded),
			expected: Interrupted,
		},
		{
			name:     "timeout inside a resolve error is an interrupt",
			err:      builderrors.NewRepositoryError("g:a", context.DeadlineExceeded),
			expected: Interrupted,
		},
		{
			name:     "untyped error is a parse error",
			err:      errors.New("unknown flag: --bogus"),
			expected: ParseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.expected {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	for _, code := range []int{Success, ParseError, ValidationFailed, Interrupted} {
		if got := GetExitCodeDescription(code); got == "Unknown error" {
			t.Errorf("code %d has no description", code)
		}
	}
	if got := GetExitCodeDescription(42); got != "Unknown error" {
		t.Errorf("GetExitCodeDescription(42) = %q, want Unknown error", got)
	}
}
