package log

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Format represents the output format for logs
type Format int

const (
	// FormatText outputs logs in human-readable key=value form
	FormatText Format = iota
	// FormatJSON outputs one JSON object per line
	FormatJSON
)

// String returns the string representation of the format
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "console", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q (supported: text, json)", s)
	}
}

// Config holds configuration for the logger
type Config struct {
	// Level is the minimum log level to output
	Level Level

	// Format is the output format
	Format Format

	// Writer is where logs are written. Nil means stderr.
	Writer io.Writer

	// AddSource includes source file and line number in logs
	AddSource bool

	// Component is attached to every record as "component"
	Component string
}

// DefaultConfig logs at INFO in text form to stderr, keeping stdout free
// for the emitted plan.
func DefaultConfig() Config {
	return Config{
		Level:     LevelInfo,
		Format:    FormatText,
		Writer:    os.Stderr,
		Component: "build-plan",
	}
}

// DiscardConfig returns a configuration that drops every record
func DiscardConfig() Config {
	cfg := DefaultConfig()
	cfg.Writer = io.Discard
	return cfg
}
