package ux

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
)

type countView struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func (v countView) RenderText(w io.Writer, s Styles) error {
	_, err := fmt.Fprintf(w, "%s=%d\n", v.Name, v.Count)
	return err
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"json format", FormatJSON, false},
		{"yaml format", FormatYAML, false},
		{"text format", FormatText, false},
		{"empty format defaults to text", "", false},
		{"unknown format", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFormatter(tt.format, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewFormatter() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatterOutput(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{FormatText, []string{"tasks=3\n"}},
		{FormatJSON, []string{`"name": "tasks"`, `"count": 3`}},
		{FormatYAML, []string{"name: tasks\n", "count: 3\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			formatter, err := NewFormatter(tt.format, &FormatterOptions{Writer: &buf, NoColor: true})
			if err != nil {
				t.Fatalf("NewFormatter() error = %v", err)
			}
			if err := formatter.Format(countView{Name: "tasks", Count: 3}); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
