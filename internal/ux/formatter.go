package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// View is a command result. Text output goes through RenderText; JSON and
// YAML output encode the view itself.
type View interface {
	RenderText(w io.Writer, styles Styles) error
}

// Formatter writes views in one output format
type Formatter interface {
	Format(v View) error
}

// FormatterOptions configures NewFormatter
type FormatterOptions struct {
	// Writer defaults to os.Stdout
	Writer io.Writer
	// NoColor disables styling in text output
	NoColor bool
}

type formatFunc func(View) error

func (f formatFunc) Format(v View) error { return f(v) }

// NewFormatter returns the formatter for format; an empty format is text
func NewFormatter(format string, opts *FormatterOptions) (Formatter, error) {
	var w io.Writer = os.Stdout
	noColor := false
	if opts != nil {
		if opts.Writer != nil {
			w = opts.Writer
		}
		noColor = opts.NoColor
	}

	switch format {
	case FormatText, "":
		styles := NewStyles(w, noColor)
		return formatFunc(func(v View) error {
			return v.RenderText(w, styles)
		}), nil
	case FormatJSON:
		return formatFunc(func(v View) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		}), nil
	case FormatYAML:
		return formatFunc(func(v View) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(v); err != nil {
				return err
			}
			return enc.Close()
		}), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: %s, %s, %s)", format, FormatText, FormatJSON, FormatYAML)
	}
}
