package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// TaskID identifies a build task inside a plan.
// Task IDs double as the deterministic tie-break key of the topological
// sort, so they are restricted to a plain lowercase alphabet.
type TaskID string

var (
	taskIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

	maxTaskIDLength = 64
)

// NewTaskID creates a TaskID after validating it
func NewTaskID(value string) (TaskID, error) {
	id := TaskID(value)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate checks if the task ID is well formed
func (t TaskID) Validate() error {
	s := string(t)

	switch {
	case s == "":
		return fmt.Errorf("task ID cannot be empty")
	case len(s) > maxTaskIDLength:
		return fmt.Errorf("task ID %q exceeds maximum length of %d characters", s, maxTaskIDLength)
	case !taskIDPattern.MatchString(s):
		return fmt.Errorf("task ID %q must start with a letter and contain only lowercase letters, numbers, and hyphens", s)
	case strings.Contains(s, "--"):
		return fmt.Errorf("task ID %q cannot contain consecutive hyphens", s)
	case strings.HasSuffix(s, "-"):
		return fmt.Errorf("task ID %q cannot end with a hyphen", s)
	}

	return nil
}

// String returns the string representation
func (t TaskID) String() string {
	return string(t)
}
