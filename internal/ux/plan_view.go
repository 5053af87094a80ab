package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/buildplan/internal/plan"
	"github.com/felixgeelhaar/buildplan/internal/validate"
)

// PlanView renders a plan as text. JSON and YAML output carry the plan
// alone, in the same form as the saved plan file.
type PlanView struct {
	Plan *plan.Plan
	// Written is the path the plan was saved to, empty for dry runs
	Written string
}

func (v PlanView) MarshalJSON() ([]byte, error) { return json.Marshal(v.Plan) }

func (v PlanView) MarshalYAML() (interface{}, error) { return v.Plan, nil }

// RenderText implements View
func (v PlanView) RenderText(w io.Writer, s Styles) error {
	p := v.Plan
	var b strings.Builder

	fmt.Fprintln(&b, s.Title.Render("Build plan"))
	fmt.Fprintf(&b, "%s %s\n", s.Key.Render("invocation:"), s.Value.Render(p.InvocationID))
	fmt.Fprintf(&b, "%s %s\n\n", s.Key.Render("fingerprint:"), s.Value.Render(p.Fingerprint))

	fmt.Fprintln(&b, s.Header.Render(fmt.Sprintf("Tasks (%d)", len(p.Tasks))))
	for i, t := range p.Tasks {
		line := fmt.Sprintf("%3d. %-26s %s", i+1, t.ID, s.Muted.Render(t.Action.Kind))
		if len(t.DependsOn) > 0 {
			line += s.Muted.Render("  after " + strings.Join(t.DependsOn, ", "))
		}
		fmt.Fprintln(&b, line)
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, s.Header.Render(fmt.Sprintf("Dependencies (%d)", len(p.Dependencies))))
	for _, d := range p.Dependencies {
		fmt.Fprintf(&b, "  %-50s %-10s %s\n", d.Name, d.Version,
			s.Muted.Render(fmt.Sprintf("%s, %s", d.Scope, d.Origin)))
	}

	fmt.Fprintln(&b)
	if v.Written != "" {
		fmt.Fprintln(&b, s.Ok.Render("Plan written to "+v.Written))
	} else {
		fmt.Fprintln(&b, s.Ok.Render("Dry run, nothing written"))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ValidationView renders the result of re-validating a saved plan
type ValidationView struct {
	Path   string           `json:"path" yaml:"path"`
	Valid  bool             `json:"valid" yaml:"valid"`
	Issues []validate.Issue `json:"issues" yaml:"issues"`
}

// RenderText implements View
func (v ValidationView) RenderText(w io.Writer, s Styles) error {
	var b strings.Builder
	if v.Valid {
		fmt.Fprintf(&b, "%s %s\n", s.Ok.Render("valid"), v.Path)
	} else {
		fmt.Fprintf(&b, "%s %s\n", s.Error.Render("invalid"), v.Path)
		for _, is := range v.Issues {
			fmt.Fprintf(&b, "  %s %s\n", s.Muted.Render("["+string(is.Code)+"]"), is.Message)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
