package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error codes, grouped by the pipeline stage that raises them
const (
	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeMissingRequiredSetting ErrorCode = "CONFIG-001"
	ErrCodeTypeMismatch           ErrorCode = "CONFIG-002"
	ErrCodeConfigParse            ErrorCode = "CONFIG-003"
	ErrCodeUnknownPlugin          ErrorCode = "CONFIG-004"
	ErrCodePluginRequirement      ErrorCode = "CONFIG-005"

	// Resolve errors (RESOLVE-001 to RESOLVE-099)
	ErrCodeUnsatisfiableConstraint ErrorCode = "RESOLVE-001"
	ErrCodeInvalidConstraint       ErrorCode = "RESOLVE-002"
	ErrCodeRepository              ErrorCode = "RESOLVE-003"

	// Plan errors (PLAN-001 to PLAN-099)
	ErrCodeCyclicDependency ErrorCode = "PLAN-001"
	ErrCodeUnknownTask      ErrorCode = "PLAN-002"
	ErrCodeDuplicateTask    ErrorCode = "PLAN-003"

	// Validate errors (VALIDATE-001 to VALIDATE-099)
	ErrCodeIncompleteConfiguration ErrorCode = "VALIDATE-001"
	ErrCodeVersionIncompatibility  ErrorCode = "VALIDATE-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeFileUnmarshal   ErrorCode = "IO-005"
	ErrCodeFileMarshal     ErrorCode = "IO-006"
)

// Stage names the pipeline stage an error code belongs to
type Stage string

const (
	StageConfig   Stage = "config"
	StageResolve  Stage = "resolve"
	StagePlan     Stage = "plan"
	StageValidate Stage = "validate"
	StageIO       Stage = "io"
)

// Stage returns the pipeline stage encoded in the code prefix
func (c ErrorCode) Stage() Stage {
	prefix, _, _ := strings.Cut(string(c), "-")
	switch prefix {
	case "CONFIG":
		return StageConfig
	case "RESOLVE":
		return StageResolve
	case "PLAN":
		return StagePlan
	case "VALIDATE":
		return StageValidate
	default:
		return StageIO
	}
}

// Sentinels for errors.Is. They match any BuildError with the same code.
var (
	ErrMissingRequiredSetting  = New(ErrCodeMissingRequiredSetting, "missing required setting")
	ErrTypeMismatch            = New(ErrCodeTypeMismatch, "type mismatch")
	ErrConfigParse             = New(ErrCodeConfigParse, "config parse error")
	ErrUnknownPlugin           = New(ErrCodeUnknownPlugin, "unknown plugin")
	ErrPluginRequirement       = New(ErrCodePluginRequirement, "plugin requirement")
	ErrUnsatisfiableConstraint = New(ErrCodeUnsatisfiableConstraint, "unsatisfiable constraint")
	ErrInvalidConstraint       = New(ErrCodeInvalidConstraint, "invalid constraint")
	ErrRepository              = New(ErrCodeRepository, "repository lookup failed")
	ErrCyclicDependency        = New(ErrCodeCyclicDependency, "cyclic dependency")
	ErrUnknownTask             = New(ErrCodeUnknownTask, "unknown task")
	ErrDuplicateTask           = New(ErrCodeDuplicateTask, "duplicate task")
	ErrIncompleteConfiguration = New(ErrCodeIncompleteConfiguration, "incomplete configuration")
	ErrVersionIncompatibility  = New(ErrCodeVersionIncompatibility, "version incompatibility")
	ErrFileNotFound            = New(ErrCodeFileNotFound, "file not found")
	ErrFileReadFailed          = New(ErrCodeFileReadFailed, "file read failed")
	ErrFileWriteFailed         = New(ErrCodeFileWriteFailed, "file write failed")
	ErrFileUnmarshal           = New(ErrCodeFileUnmarshal, "file unmarshal failed")
	ErrFileMarshal             = New(ErrCodeFileMarshal, "file marshal failed")
)

// BuildError is a typed pipeline failure. Identifier names the offending
// setting, library, task or file.
type BuildError struct {
	Code        ErrorCode
	Identifier  string
	Message     string
	Details     []string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s: %s", e.Code, e.Code.Stage(), e.Message)

	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}

	for _, d := range e.Details {
		fmt.Fprintf(&b, "\n  - %s", d)
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			fmt.Fprintf(&b, "\n  • %s", suggestion)
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a BuildError with the same code
func (e *BuildError) Is(target error) bool {
	t, ok := target.(*BuildError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Stage returns the pipeline stage that raised the error
func (e *BuildError) Stage() Stage {
	return e.Code.Stage()
}

// New creates a new BuildError
func New(code ErrorCode, message string) *BuildError {
	return &BuildError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new BuildError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *BuildError {
	return &BuildError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithIdentifier sets the offending identifier
func (e *BuildError) WithIdentifier(id string) *BuildError {
	e.Identifier = id
	return e
}

// WithDetails appends detail lines
func (e *BuildError) WithDetails(details ...string) *BuildError {
	e.Details = append(e.Details, details...)
	return e
}

// WithSuggestion adds a suggestion to the error
func (e *BuildError) WithSuggestion(suggestion string) *BuildError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *BuildError) WithSuggestions(suggestions ...string) *BuildError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// NewMissingRequiredSetting reports a required setting absent from the config
func NewMissingRequiredSetting(name string) *BuildError {
	return New(ErrCodeMissingRequiredSetting, fmt.Sprintf("missing required setting %q", name)).
		WithIdentifier(name).
		WithSuggestion(fmt.Sprintf("Add '%s = <value>' to the config file", name))
}

// NewTypeMismatch reports a value that cannot be coerced to its declared type
func NewTypeMismatch(name, want string, value any, cause error) *BuildError {
	return Wrap(ErrCodeTypeMismatch,
		fmt.Sprintf("setting %q: cannot use %v as %s", name, value, want), cause).
		WithIdentifier(name)
}

// NewConfigParseError reports a malformed config or dependencies file
func NewConfigParseError(path string, line int, cause error) *BuildError {
	msg := fmt.Sprintf("cannot parse %s", path)
	if line > 0 {
		msg = fmt.Sprintf("cannot parse %s line %d", path, line)
	}
	return Wrap(ErrCodeConfigParse, msg, cause).
		WithIdentifier(path).
		WithSuggestion("Check the file syntax: key = value lines, JSON, YAML or HCL")
}

// NewUnknownPlugin reports a plugin declaration outside the known set
func NewUnknownPlugin(id string, known []string) *BuildError {
	return New(ErrCodeUnknownPlugin, fmt.Sprintf("unknown plugin %q", id)).
		WithIdentifier(id).
		WithSuggestion("Use one of: " + strings.Join(known, ", "))
}

// NewPluginRequirement reports a plugin declared without a plugin it builds on
func NewPluginRequirement(id, requires string) *BuildError {
	return New(ErrCodePluginRequirement, fmt.Sprintf("plugin %q requires plugin %q", id, requires)).
		WithIdentifier(id).
		WithSuggestion(fmt.Sprintf("Add %q to the plugins setting", requires))
}

// NewUnsatisfiableConstraint reports a library whose constraints have no common version
func NewUnsatisfiableConstraint(library string, constraints []string, candidates []string) *BuildError {
	err := New(ErrCodeUnsatisfiableConstraint,
		fmt.Sprintf("no version of %s satisfies all constraints", library)).
		WithIdentifier(library).
		WithDetails("constraints: " + strings.Join(constraints, ", "))
	if len(candidates) > 0 {
		err.WithDetails("available: " + strings.Join(candidates, ", "))
	} else {
		err.WithDetails("available: none")
	}
	return err.WithSuggestion("Relax one of the constraints or publish a matching version")
}

// NewInvalidConstraint reports a version constraint that does not parse
func NewInvalidConstraint(library, constraint string, cause error) *BuildError {
	return Wrap(ErrCodeInvalidConstraint,
		fmt.Sprintf("invalid version constraint %q for %s", constraint, library), cause).
		WithIdentifier(library)
}

// NewRepositoryError reports a failed repository lookup
func NewRepositoryError(library string, cause error) *BuildError {
	return Wrap(ErrCodeRepository, fmt.Sprintf("cannot list versions of %s", library), cause).
		WithIdentifier(library)
}

// NewCyclicDependency reports a cycle in the task graph; path is the witness
func NewCyclicDependency(path []string) *BuildError {
	id := ""
	if len(path) > 0 {
		id = path[0]
	}
	return New(ErrCodeCyclicDependency,
		fmt.Sprintf("cyclic dependency between tasks (%s)", strings.Join(path, " -> "))).
		WithIdentifier(id).
		WithSuggestion("Remove one of the depends_on edges on the cycle")
}

// NewUnknownTask reports a prerequisite that names no task
func NewUnknownTask(task, prerequisite string) *BuildError {
	return New(ErrCodeUnknownTask,
		fmt.Sprintf("task %q depends on unknown task %q", task, prerequisite)).
		WithIdentifier(prerequisite)
}

// NewDuplicateTask reports two tasks with the same ID
func NewDuplicateTask(id string) *BuildError {
	return New(ErrCodeDuplicateTask, fmt.Sprintf("duplicate task %q", id)).
		WithIdentifier(id)
}

// NewIncompleteConfiguration reports task references that resolve to nothing.
// The first issue's identifier becomes the error identifier.
func NewIncompleteConfiguration(identifier string, issues []string) *BuildError {
	return New(ErrCodeIncompleteConfiguration,
		fmt.Sprintf("plan references %d unresolved setting(s) or dependency(ies)", len(issues))).
		WithIdentifier(identifier).
		WithDetails(issues...)
}

// NewVersionIncompatibility reports conflicting versions in the plan
func NewVersionIncompatibility(identifier string, issues []string) *BuildError {
	return New(ErrCodeVersionIncompatibility,
		fmt.Sprintf("plan has %d version incompatibility(ies)", len(issues))).
		WithIdentifier(identifier).
		WithDetails(issues...)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *BuildError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithIdentifier(path).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileReadError creates a read failure error
func NewFileReadError(path string, cause error) *BuildError {
	return Wrap(ErrCodeFileReadFailed, fmt.Sprintf("failed to read %s", path), cause).
		WithIdentifier(path)
}

// NewFileWriteError creates a write failure error
func NewFileWriteError(path string, cause error) *BuildError {
	return Wrap(ErrCodeFileWriteFailed, fmt.Sprintf("failed to write %s", path), cause).
		WithIdentifier(path)
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *BuildError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithIdentifier(path).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}
