package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// LibraryName is a Maven-style library coordinate without a version,
// e.g. "com.google.firebase:firebase-analytics-ktx".
type LibraryName string

var (
	coordinatePartPattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

	maxLibraryNameLength = 200
)

// NewLibraryName creates a LibraryName after validating it
func NewLibraryName(value string) (LibraryName, error) {
	name := LibraryName(strings.TrimSpace(value))
	if err := name.Validate(); err != nil {
		return "", err
	}
	return name, nil
}

// Validate checks that the name has the form group:artifact
func (l LibraryName) Validate() error {
	s := string(l)

	if s == "" {
		return fmt.Errorf("library name cannot be empty")
	}
	if len(s) > maxLibraryNameLength {
		return fmt.Errorf("library name %q exceeds maximum length of %d characters", s, maxLibraryNameLength)
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return fmt.Errorf("library name %q must have the form group:artifact", s)
	}
	for _, part := range parts {
		if !coordinatePartPattern.MatchString(part) {
			return fmt.Errorf("library name %q has an invalid coordinate part %q", s, part)
		}
	}

	return nil
}

// Group returns the group part of the coordinate
func (l LibraryName) Group() string {
	group, _, _ := strings.Cut(string(l), ":")
	return group
}

// Artifact returns the artifact part of the coordinate
func (l LibraryName) Artifact() string {
	_, artifact, _ := strings.Cut(string(l), ":")
	return artifact
}

// String returns the string representation
func (l LibraryName) String() string {
	return string(l)
}
