package ux

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles of text output
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Key    lipgloss.Style
	Value  lipgloss.Style
	Muted  lipgloss.Style
	Ok     lipgloss.Style
	Error  lipgloss.Style
}

// NewStyles builds styles for w. The renderer picks the color profile of
// w, so output to a pipe or file carries no escape codes. noColor strips
// colors regardless.
func NewStyles(w io.Writer, noColor bool) Styles {
	r := lipgloss.NewRenderer(w)
	color := func(s lipgloss.Style, c string) lipgloss.Style {
		if noColor {
			return s
		}
		return s.Foreground(lipgloss.Color(c))
	}

	return Styles{
		Title:  color(r.NewStyle().Bold(true), "205"),
		Header: color(r.NewStyle().Bold(true), "99"),
		Key:    color(r.NewStyle(), "99"),
		Value:  color(r.NewStyle(), "252"),
		Muted:  color(r.NewStyle(), "241"),
		Ok:     color(r.NewStyle().Bold(true), "10"),
		Error:  color(r.NewStyle().Bold(true), "9"),
	}
}
