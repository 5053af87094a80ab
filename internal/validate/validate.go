// Package validate cross-checks a finished build plan.
//
// Two kinds of problems are reported. Tasks that reference prerequisites,
// settings or dependencies the plan does not carry make the configuration
// incomplete.
// Selected versions that break their constraints, SDK levels out of order,
// a Kotlin JVM target that differs from the Java version and a task order
// that is not topological are version incompatibilities. All issues are
// collected before failing.
package validate

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
	"github.com/felixgeelhaar/buildplan/internal/log"
	"github.com/felixgeelhaar/buildplan/internal/plan"
	"github.com/felixgeelhaar/buildplan/internal/resolve"
)

// Issue is one problem found in a plan
type Issue struct {
	Code       builderrors.ErrorCode `json:"code" yaml:"code"`
	Identifier string                `json:"identifier" yaml:"identifier"`
	Message    string                `json:"message" yaml:"message"`
}

// Check returns every issue found in the plan, incomplete references
// first, each group in plan order
func Check(p *plan.Plan) []Issue {
	var issues []Issue
	issues = append(issues, checkReferences(p)...)
	issues = append(issues, checkDependencies(p)...)
	issues = append(issues, checkSDKLevels(p)...)
	issues = append(issues, checkJVMTarget(p)...)
	issues = append(issues, checkOrder(p)...)
	return issues
}

// Validate fails with IncompleteConfiguration when any reference is
// unresolved, and otherwise with VersionIncompatibility when any version
// check fails
func Validate(ctx context.Context, p *plan.Plan) error {
	logger := log.FromContext(ctx).WithStage("validate")

	issues := Check(p)
	for _, code := range []builderrors.ErrorCode{
		builderrors.ErrCodeIncompleteConfiguration,
		builderrors.ErrCodeVersionIncompatibility,
	} {
		var (
			messages []string
			first    string
		)
		for _, is := range issues {
			if is.Code != code {
				continue
			}
			if first == "" {
				first = is.Identifier
			}
			messages = append(messages, is.Message)
		}
		if len(messages) == 0 {
			continue
		}

		logger.Debug("plan rejected", "code", code, "issues", len(messages))
		if code == builderrors.ErrCodeIncompleteConfiguration {
			return builderrors.NewIncompleteConfiguration(first, messages)
		}
		return builderrors.NewVersionIncompatibility(first, messages)
	}

	logger.Debug("plan valid", "tasks", len(p.Tasks))
	return nil
}

func checkReferences(p *plan.Plan) []Issue {
	var issues []Issue
	for _, t := range p.Tasks {
		for _, dep := range t.DependsOn {
			if _, ok := p.Task(dep); !ok {
				issues = append(issues, Issue{
					Code:       builderrors.ErrCodeIncompleteConfiguration,
					Identifier: dep,
					Message:    fmt.Sprintf("task %q depends on %q, which is not in the plan", t.ID, dep),
				})
			}
		}
		for _, s := range t.Action.Settings {
			if _, ok := p.Settings[s]; !ok {
				issues = append(issues, Issue{
					Code:       builderrors.ErrCodeIncompleteConfiguration,
					Identifier: s,
					Message:    fmt.Sprintf("task %q: setting %q is not resolved", t.ID, s),
				})
			}
		}
		for _, d := range t.Action.Dependencies {
			if _, ok := p.Dependency(d); !ok {
				issues = append(issues, Issue{
					Code:       builderrors.ErrCodeIncompleteConfiguration,
					Identifier: d,
					Message:    fmt.Sprintf("task %q: dependency %q is not resolved", t.ID, d),
				})
			}
		}
	}
	return issues
}

func incompatible(identifier, format string, args ...any) Issue {
	return Issue{
		Code:       builderrors.ErrCodeVersionIncompatibility,
		Identifier: identifier,
		Message:    fmt.Sprintf(format, args...),
	}
}

func checkDependencies(p *plan.Plan) []Issue {
	var issues []Issue
	for _, d := range p.Dependencies {
		name := d.Name.String()
		if !d.SatisfiesConstraints {
			issues = append(issues, incompatible(name, "%s: version %s is marked as not satisfying its constraints", name, d.Version))
			continue
		}
		ok, err := resolve.Satisfies(d.Version, d.Constraints)
		switch {
		case err != nil:
			issues = append(issues, incompatible(name, "%s: cannot check version %s: %v", name, d.Version, err))
		case !ok:
			issues = append(issues, incompatible(name, "%s: version %s does not satisfy %s",
				name, d.Version, strings.Join(d.Constraints, ", ")))
		}
	}
	return issues
}

// checkSDKLevels requires minSdk <= targetSdk <= compileSdk for the levels
// that are set
func checkSDKLevels(p *plan.Plan) []Issue {
	levels := []string{"minSdk", "targetSdk", "compileSdk"}
	values := make(map[string]int, len(levels))
	var issues []Issue
	for _, name := range levels {
		s, ok := p.Settings[name]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(s.Value)
		if err != nil {
			issues = append(issues, incompatible(name, "%s: %q is not an API level", name, s.Value))
			continue
		}
		values[name] = n
	}

	for i := 0; i < len(levels); i++ {
		for j := i + 1; j < len(levels); j++ {
			lo, hasLo := values[levels[i]]
			hi, hasHi := values[levels[j]]
			if hasLo && hasHi && lo > hi {
				issues = append(issues, incompatible(levels[i], "%s %d is higher than %s %d", levels[i], lo, levels[j], hi))
			}
		}
	}
	return issues
}

func checkJVMTarget(p *plan.Plan) []Issue {
	jvm, hasJVM := p.Settings["jvmTarget"]
	java, hasJava := p.Settings["javaVersion"]
	if !hasJVM || !hasJava {
		return nil
	}
	if normalizeJavaVersion(jvm.Value) != normalizeJavaVersion(java.Value) {
		return []Issue{incompatible("jvmTarget", "jvmTarget %s does not match javaVersion %s", jvm.Value, java.Value)}
	}
	return nil
}

// normalizeJavaVersion maps the spellings of a Java release onto one form:
// "1.8", "8" and "VERSION_1_8" all become "8".
func normalizeJavaVersion(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "JavaVersion.")
	v = strings.TrimPrefix(v, "VERSION_")
	v = strings.ReplaceAll(v, "_", ".")
	return strings.TrimPrefix(v, "1.")
}

func checkOrder(p *plan.Plan) []Issue {
	pos := make(map[string]int, len(p.Tasks))
	for i, t := range p.Tasks {
		pos[t.ID] = i
	}

	var issues []Issue
	for i, t := range p.Tasks {
		for _, dep := range t.DependsOn {
			// missing prerequisites are reported by checkReferences
			if j, ok := pos[dep]; ok && j >= i {
				issues = append(issues, incompatible(t.ID, "task %q runs before its prerequisite %q", t.ID, dep))
			}
		}
	}
	return issues
}
