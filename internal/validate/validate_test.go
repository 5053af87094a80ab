package validate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/buildplan/internal/domain"
	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
	"github.com/felixgeelhaar/buildplan/internal/plan"
	"github.com/felixgeelhaar/buildplan/internal/resolve"
)

func validPlan() *plan.Plan {
	return &plan.Plan{
		InvocationID: "inv",
		Tasks: []plan.Task{
			{ID: "prepare", DependsOn: []string{}, Action: plan.Action{Kind: "prepare"}},
			{ID: "resolve-dependencies", DependsOn: []string{"prepare"}, Action: plan.Action{Kind: "resolve", Dependencies: []string{"androidx.core:core-ktx"}}},
			{ID: "compile-java", DependsOn: []string{"resolve-dependencies"}, Action: plan.Action{Kind: "compile", Settings: []string{"compileSdk"}, Dependencies: []string{"androidx.core:core-ktx"}}},
			{ID: "assemble", DependsOn: []string{"compile-java"}, Action: plan.Action{Kind: "assemble"}},
		},
		Dependencies: []resolve.ResolvedDependency{
			{Name: "androidx.core:core-ktx", Version: "1.13.1", SatisfiesConstraints: true, Scope: domain.ScopeCompile, Constraints: []string{"^1.12.0"}},
		},
		Settings: map[string]plan.Setting{
			"compileSdk": {Type: "int", Value: "34"},
			"minSdk":     {Type: "int", Value: "21"},
			"targetSdk":  {Type: "int", Value: "34"},
		},
	}
}

func TestValidatePasses(t *testing.T) {
	require.NoError(t, Validate(context.Background(), validPlan()))
	assert.Empty(t, Check(validPlan()))
}

func TestValidateIncompleteConfiguration(t *testing.T) {
	p := validPlan()
	p.Tasks[2].Action.Settings = append(p.Tasks[2].Action.Settings, "signingConfig")
	p.Tasks[2].Action.Dependencies = append(p.Tasks[2].Action.Dependencies, "androidx.appcompat:appcompat")
	// also broken, but incomplete references are reported first
	p.Settings["minSdk"] = plan.Setting{Type: "int", Value: "40"}

	err := Validate(context.Background(), p)
	require.ErrorIs(t, err, builderrors.ErrIncompleteConfiguration)

	var be *builderrors.BuildError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "signingConfig", be.Identifier)
	assert.Len(t, be.Details, 2)
	assert.Contains(t, be.Details[1], "androidx.appcompat:appcompat")
}

func TestValidateMissingPrerequisite(t *testing.T) {
	p := validPlan()
	p.Tasks[3].DependsOn = append(p.Tasks[3].DependsOn, "lint")

	err := Validate(context.Background(), p)
	require.ErrorIs(t, err, builderrors.ErrIncompleteConfiguration)
	assert.NotErrorIs(t, err, builderrors.ErrVersionIncompatibility)

	var be *builderrors.BuildError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "lint", be.Identifier)
	require.Len(t, be.Details, 1)
	assert.Contains(t, be.Details[0], `task "assemble" depends on "lint"`)

	issues := Check(p)
	require.Len(t, issues, 1)
	assert.Equal(t, builderrors.ErrCodeIncompleteConfiguration, issues[0].Code)
}

func TestValidateVersionIncompatibility(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*plan.Plan)
		ident  string
	}{
		{
			name:   "marked unsatisfied",
			mutate: func(p *plan.Plan) { p.Dependencies[0].SatisfiesConstraints = false },
			ident:  "androidx.core:core-ktx",
		},
		{
			name:   "version outside constraints",
			mutate: func(p *plan.Plan) { p.Dependencies[0].Version = "2.0.0" },
			ident:  "androidx.core:core-ktx",
		},
		{
			name:   "unparsable version",
			mutate: func(p *plan.Plan) { p.Dependencies[0].Version = "latest" },
			ident:  "androidx.core:core-ktx",
		},
		{
			name:   "minSdk above targetSdk",
			mutate: func(p *plan.Plan) { p.Settings["minSdk"] = plan.Setting{Type: "int", Value: "35"} },
			ident:  "minSdk",
		},
		{
			name:   "targetSdk above compileSdk",
			mutate: func(p *plan.Plan) { p.Settings["targetSdk"] = plan.Setting{Type: "int", Value: "35"} },
			ident:  "targetSdk",
		},
		{
			name: "jvm target mismatch",
			mutate: func(p *plan.Plan) {
				p.Settings["jvmTarget"] = plan.Setting{Type: "string", Value: "17"}
				p.Settings["javaVersion"] = plan.Setting{Type: "string", Value: "VERSION_11"}
			},
			ident: "jvmTarget",
		},
		{
			name: "order not topological",
			mutate: func(p *plan.Plan) {
				p.Tasks[2], p.Tasks[3] = p.Tasks[3], p.Tasks[2]
			},
			ident: "assemble",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPlan()
			tt.mutate(p)

			err := Validate(context.Background(), p)
			require.ErrorIs(t, err, builderrors.ErrVersionIncompatibility)

			var be *builderrors.BuildError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, tt.ident, be.Identifier)
		})
	}
}

func TestCheckCollectsAllIssues(t *testing.T) {
	p := validPlan()
	p.Dependencies[0].Version = "2.0.0"
	p.Settings["minSdk"] = plan.Setting{Type: "int", Value: "35"}

	issues := Check(p)
	// dependency, minSdk > targetSdk, minSdk > compileSdk
	require.Len(t, issues, 3)
	for _, is := range issues {
		assert.Equal(t, builderrors.ErrCodeVersionIncompatibility, is.Code)
	}
}

func TestNormalizeJavaVersion(t *testing.T) {
	tests := map[string]string{
		"1.8":                    "8",
		"8":                      "8",
		"VERSION_1_8":            "8",
		"JavaVersion.VERSION_17": "17",
		"17":                     "17",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeJavaVersion(in), in)
	}
}
