package ux

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
)

func TestNewErrorWithSuggestion(t *testing.T) {
	if NewErrorWithSuggestion(nil, "x") != nil {
		t.Error("nil error should stay nil")
	}

	base := errors.New("something failed")
	err := NewErrorWithSuggestion(base, "try this fix")
	if !errors.Is(err, base) {
		t.Error("should unwrap to the base error")
	}
	if !strings.Contains(err.Error(), "Suggestion: try this fix") {
		t.Errorf("missing suggestion: %s", err.Error())
	}

	if got := NewErrorWithSuggestion(base, "").Error(); got != "something failed" {
		t.Errorf("empty suggestion changed message: %s", got)
	}
}

func TestEnhanceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantSuggestion string
	}{
		{
			name:           "missing config",
			err:            fmt.Errorf("none of [build-plan.properties] found: %w", fs.ErrNotExist),
			wantSuggestion: "--config",
		},
		{
			name:           "missing deps",
			err:            fmt.Errorf("none of [dependencies.txt] found: %w", fs.ErrNotExist),
			wantSuggestion: "--deps",
		},
		{
			name:           "permission",
			err:            fmt.Errorf("open x: %w", fs.ErrPermission),
			wantSuggestion: "permissions",
		},
		{
			name:           "unknown flag",
			err:            errors.New("unknown flag: --cofig"),
			wantSuggestion: "--help",
		},
		{
			name:           "timeout",
			err:            fmt.Errorf("stage resolve: context deadline exceeded"),
			wantSuggestion: "--timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnhanceError(tt.err)
			if !strings.Contains(got.Error(), tt.wantSuggestion) {
				t.Errorf("EnhanceError() = %q, want suggestion containing %q", got.Error(), tt.wantSuggestion)
			}
		})
	}
}

func TestEnhanceErrorPassesBuildErrors(t *testing.T) {
	err := builderrors.NewFileNotFoundError("build-plan.properties")
	if got := EnhanceError(err); got != err {
		t.Errorf("typed error should pass through unchanged, got %v", got)
	}
	if EnhanceError(nil) != nil {
		t.Error("nil should stay nil")
	}
}

func TestFormatError(t *testing.T) {
	err := FormatError(errors.New("boom"), "load config")
	if err.Error() != "load config: boom" {
		t.Errorf("FormatError() = %q", err.Error())
	}
}
