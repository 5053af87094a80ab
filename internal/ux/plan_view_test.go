package ux

import (
	"bytes"
	"strings"
	"testing"

	"github.com/felixgeelhaar/buildplan/internal/domain"
	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
	"github.com/felixgeelhaar/buildplan/internal/plan"
	"github.com/felixgeelhaar/buildplan/internal/resolve"
	"github.com/felixgeelhaar/buildplan/internal/validate"
)

func samplePlan() *plan.Plan {
	return &plan.Plan{
		InvocationID: "6f1c2b1e-0000-4000-8000-000000000000",
		Fingerprint:  "abc123",
		Tasks: []plan.Task{
			{ID: "prepare", DependsOn: []string{}, Action: plan.Action{Kind: "prepare"}},
			{ID: "assemble", DependsOn: []string{"prepare"}, Action: plan.Action{Kind: "assemble"}},
		},
		Dependencies: []resolve.ResolvedDependency{
			{Name: "androidx.core:core-ktx", Version: "1.13.1", Scope: domain.ScopeCompile, Origin: resolve.OriginRepository},
		},
	}
}

func TestPlanViewText(t *testing.T) {
	var buf bytes.Buffer
	formatter, err := NewFormatter("text", &FormatterOptions{Writer: &buf, NoColor: true})
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}

	if err := formatter.Format(PlanView{Plan: samplePlan()}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Tasks (2)",
		"1. prepare",
		"2. assemble",
		"after prepare",
		"androidx.core:core-ktx",
		"compile, repository",
		"Dry run, nothing written",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlanViewWritten(t *testing.T) {
	var buf bytes.Buffer
	if err := (PlanView{Plan: samplePlan(), Written: "out/build-plan.json"}).RenderText(&buf, NewStyles(&buf, true)); err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Plan written to out/build-plan.json") {
		t.Errorf("missing written path:\n%s", buf.String())
	}
}

func TestPlanViewEncodesPlanOnly(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			formatter, err := NewFormatter(format, &FormatterOptions{Writer: &buf})
			if err != nil {
				t.Fatalf("NewFormatter() error = %v", err)
			}
			if err := formatter.Format(PlanView{Plan: samplePlan(), Written: "out/build-plan.json"}); err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			out := buf.String()
			if !strings.Contains(out, "invocation_id") || !strings.Contains(out, "androidx.core:core-ktx") {
				t.Errorf("plan fields missing:\n%s", out)
			}
			if strings.Contains(out, "Written") || strings.Contains(out, "out/build-plan.json") {
				t.Errorf("view fields leaked into %s output:\n%s", format, out)
			}
		})
	}
}

func TestValidationViewText(t *testing.T) {
	var buf bytes.Buffer
	view := ValidationView{
		Path: "build-plan.json",
		Issues: []validate.Issue{{
			Code:       builderrors.ErrCodeVersionIncompatibility,
			Identifier: "minSdk",
			Message:    "minSdk 35 is higher than targetSdk 34",
		}},
	}
	if err := view.RenderText(&buf, NewStyles(&buf, true)); err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "invalid build-plan.json") || !strings.Contains(out, "[VALIDATE-002] minSdk 35") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
