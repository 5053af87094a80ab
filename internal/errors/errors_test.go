package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeCyclicDependency, "test error message")

	if err.Code != ErrCodeCyclicDependency {
		t.Errorf("expected code %s, got %s", ErrCodeCyclicDependency, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeFileReadFailed, "failed to read file", cause)

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name      string
		err       *BuildError
		wantParts []string
	}{
		{
			name:      "stage and code",
			err:       New(ErrCodeUnknownTask, "unknown task"),
			wantParts: []string{"[PLAN-002]", "plan:", "unknown task"},
		},
		{
			name:      "cause",
			err:       Wrap(ErrCodeFileReadFailed, "read failed", fmt.Errorf("permission denied")),
			wantParts: []string{"[IO-002]", "io:", "permission denied"},
		},
		{
			name:      "details and suggestions",
			err:       New(ErrCodeIncompleteConfiguration, "broken").WithDetails("task a: x").WithSuggestion("fix it"),
			wantParts: []string{"validate:", "\n  - task a: x", "Suggestions:", "fix it"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()
			for _, part := range tt.wantParts {
				if !strings.Contains(errStr, part) {
					t.Errorf("error string should contain %q, got: %s", part, errStr)
				}
			}
		})
	}
}

func TestCodeStage(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want Stage
	}{
		{ErrCodeMissingRequiredSetting, StageConfig},
		{ErrCodeTypeMismatch, StageConfig},
		{ErrCodeUnsatisfiableConstraint, StageResolve},
		{ErrCodeCyclicDependency, StagePlan},
		{ErrCodeIncompleteConfiguration, StageValidate},
		{ErrCodeFileNotFound, StageIO},
	}

	for _, tt := range tests {
		if got := tt.code.Stage(); got != tt.want {
			t.Errorf("%s.Stage() = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestIsMatchesSentinelByCode(t *testing.T) {
	err := fmt.Errorf("assemble: %w", NewCyclicDependency([]string{"a", "b", "a"}))

	if !errors.Is(err, ErrCyclicDependency) {
		t.Error("wrapped cyclic dependency should match ErrCyclicDependency")
	}
	if errors.Is(err, ErrUnknownTask) {
		t.Error("cyclic dependency should not match ErrUnknownTask")
	}

	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatal("errors.As should find the BuildError")
	}
	if be.Identifier != "a" {
		t.Errorf("Identifier = %q, want a", be.Identifier)
	}
	if !strings.Contains(be.Error(), "a -> b -> a") {
		t.Errorf("cycle path missing from message: %s", be.Error())
	}
}

func TestNewMissingRequiredSetting(t *testing.T) {
	err := NewMissingRequiredSetting("applicationId")

	if err.Code != ErrCodeMissingRequiredSetting {
		t.Errorf("expected code %s, got %s", ErrCodeMissingRequiredSetting, err.Code)
	}
	if err.Identifier != "applicationId" {
		t.Errorf("Identifier = %q, want applicationId", err.Identifier)
	}
	if len(err.Suggestions) == 0 {
		t.Error("expected a suggestion")
	}
}

func TestNewTypeMismatch(t *testing.T) {
	cause := fmt.Errorf("a number is required")
	err := NewTypeMismatch("minSdk", "int", "twenty", cause)

	if !errors.Is(err, ErrTypeMismatch) {
		t.Error("should match ErrTypeMismatch")
	}
	if !errors.Is(err, cause) {
		t.Error("should unwrap to cause")
	}
	if !strings.Contains(err.Error(), `"minSdk"`) || !strings.Contains(err.Error(), "twenty") {
		t.Errorf("message should name setting and value: %s", err.Error())
	}
}

func TestNewUnsatisfiableConstraint(t *testing.T) {
	err := NewUnsatisfiableConstraint("g:lib", []string{"^1.2.0", ">=2.0.0"}, nil)

	msg := err.Error()
	for _, want := range []string{"g:lib", "^1.2.0, >=2.0.0", "available: none"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message should contain %q: %s", want, msg)
		}
	}
	if err.Stage() != StageResolve {
		t.Errorf("Stage() = %s, want resolve", err.Stage())
	}
}

func TestNewIncompleteConfiguration(t *testing.T) {
	issues := []string{`task "sign-release": setting "signingConfig" is not resolved`}
	err := NewIncompleteConfiguration("signingConfig", issues)

	if !errors.Is(err, ErrIncompleteConfiguration) {
		t.Error("should match ErrIncompleteConfiguration")
	}
	if len(err.Details) != 1 {
		t.Errorf("expected 1 detail, got %d", len(err.Details))
	}
}

func TestNewFileUnmarshalError(t *testing.T) {
	cause := fmt.Errorf("yaml: line 3")
	err := NewFileUnmarshalError("deps.yaml", "YAML", cause)

	if err.Code != ErrCodeFileUnmarshal {
		t.Errorf("expected code %s, got %s", ErrCodeFileUnmarshal, err.Code)
	}
	if !strings.Contains(err.Error(), "deps.yaml") {
		t.Errorf("message should contain path: %s", err.Error())
	}
	if len(err.Suggestions) != 2 {
		t.Errorf("expected 2 suggestions, got %d", len(err.Suggestions))
	}
}
