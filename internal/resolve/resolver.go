// Package resolve picks one version per library from a set of dependency
// specs.
//
// Specs are grouped by library name and every constraint in a group must
// hold for the selected version. Among the candidates a repository lists,
// the highest satisfying version wins. Platform (BOM) specs are resolved
// first and supply versions for specs that carry no constraint of their
// own.
package resolve

import (
	"context"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/felixgeelhaar/buildplan/internal/domain"
	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
	"github.com/felixgeelhaar/buildplan/internal/log"
)

// Resolver selects versions from a repository
type Resolver struct {
	repo Repository
	lock *Lock
}

// Option configures a Resolver
type Option func(*Resolver)

// WithLock makes the resolver keep locked versions that still satisfy
// their constraints
func WithLock(lock *Lock) Option {
	return func(r *Resolver) {
		r.lock = lock
	}
}

// NewResolver creates a resolver. A nil repository knows no libraries, so
// only exact pins resolve.
func NewResolver(repo Repository, opts ...Option) *Resolver {
	if repo == nil {
		repo = NewStaticRepository(nil)
	}
	r := &Resolver{repo: repo}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve resolves specs against repo without a lock
func Resolve(ctx context.Context, repo Repository, specs []DependencySpec) ([]ResolvedDependency, error) {
	return NewResolver(repo).Resolve(ctx, specs)
}

type group struct {
	name        domain.LibraryName
	scope       domain.Scope
	constraints []string
}

// Resolve returns one ResolvedDependency per library, sorted by name
func (r *Resolver) Resolve(ctx context.Context, specs []DependencySpec) ([]ResolvedDependency, error) {
	logger := log.FromContext(ctx).WithStage("resolve")

	groups, err := groupSpecs(specs)
	if err != nil {
		return nil, err
	}

	resolved := make(map[domain.LibraryName]ResolvedDependency, len(groups))
	managed := make(map[domain.LibraryName]string)

	for _, g := range groups {
		if g.scope != domain.ScopePlatform {
			continue
		}
		dep, err := r.selectVersion(ctx, g.name, g.constraints)
		if err != nil {
			return nil, err
		}
		dep.Scope = g.scope
		resolved[g.name] = dep

		if pr, ok := r.repo.(PlatformRepository); ok {
			versions, err := pr.Managed(ctx, g.name, dep.Version)
			if err != nil {
				return nil, builderrors.NewRepositoryError(g.name.String(), err)
			}
			for lib, v := range versions {
				if _, taken := managed[lib]; !taken {
					managed[lib] = v
				}
			}
		}
		logger.Debug("platform resolved", "library", g.name, "version", dep.Version, "manages", len(managed))
	}

	for _, g := range groups {
		if g.scope == domain.ScopePlatform {
			continue
		}

		constraints := g.constraints
		fromPlatform := false
		if len(constraints) == 0 {
			v, ok := managed[g.name]
			if !ok {
				return nil, builderrors.NewUnsatisfiableConstraint(g.name.String(),
					[]string{"no version declared and no platform manages it"}, nil).
					WithSuggestion("Declare a version or add a platform that manages " + g.name.String())
			}
			constraints = []string{v}
			fromPlatform = true
		}

		dep, err := r.selectVersion(ctx, g.name, constraints)
		if err != nil {
			return nil, err
		}
		if fromPlatform && dep.Origin != OriginLocked {
			dep.Origin = OriginPlatform
		}
		dep.Scope = g.scope
		resolved[g.name] = dep
		logger.Debug("dependency resolved", "library", g.name, "version", dep.Version, "origin", dep.Origin)
	}

	out := make([]ResolvedDependency, 0, len(resolved))
	for _, g := range groups {
		out = append(out, resolved[g.name])
	}
	return out, nil
}

// groupSpecs merges specs by library name and returns the groups sorted by
// name. Constraints keep declaration order without duplicates.
func groupSpecs(specs []DependencySpec) ([]*group, error) {
	byName := make(map[domain.LibraryName]*group)
	for _, s := range specs {
		name := domain.LibraryName(strings.TrimSpace(s.Name.String()))
		if err := name.Validate(); err != nil {
			return nil, builderrors.NewInvalidConstraint(name.String(), s.Constraint, err)
		}
		scope := s.Scope
		if scope == "" {
			scope = domain.ScopeCompile
		}
		if err := scope.Validate(); err != nil {
			return nil, builderrors.NewInvalidConstraint(name.String(), s.Constraint, err)
		}

		g, ok := byName[name]
		if !ok {
			g = &group{name: name, scope: scope}
			byName[name] = g
		} else {
			g.scope = g.scope.Merge(scope)
		}

		c := strings.TrimSpace(s.Constraint)
		if c != "" && !contains(g.constraints, c) {
			g.constraints = append(g.constraints, c)
		}
	}

	groups := make([]*group, 0, len(byName))
	for _, g := range byName {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].name < groups[j].name })
	return groups, nil
}

// selectVersion picks the highest candidate satisfying every constraint
func (r *Resolver) selectVersion(ctx context.Context, name domain.LibraryName, constraints []string) (ResolvedDependency, error) {
	parsed := make([]*semver.Constraints, 0, len(constraints))
	for _, c := range constraints {
		pc, err := semver.NewConstraint(c)
		if err != nil {
			return ResolvedDependency{}, builderrors.NewInvalidConstraint(name.String(), c, err)
		}
		parsed = append(parsed, pc)
	}

	listed, err := r.repo.Versions(ctx, name)
	if err != nil {
		return ResolvedDependency{}, builderrors.NewRepositoryError(name.String(), err)
	}
	origin := OriginRepository
	if len(listed) == 0 {
		listed = pins(constraints)
		origin = OriginPinned
	}
	candidates := parseVersions(listed)

	satisfies := func(v *semver.Version) bool {
		for _, c := range parsed {
			if !c.Check(v) {
				return false
			}
		}
		return true
	}
	selected := func(v *semver.Version, o Origin) ResolvedDependency {
		return ResolvedDependency{
			Name:                 name,
			Version:              v.Original(),
			SatisfiesConstraints: true,
			Constraints:          append([]string(nil), constraints...),
			Origin:               o,
		}
	}

	if locked, ok := r.lock.lookup(name); ok {
		for _, v := range candidates {
			if v.Equal(locked) && satisfies(v) {
				return selected(v, OriginLocked), nil
			}
		}
	}

	for i := len(candidates) - 1; i >= 0; i-- {
		if satisfies(candidates[i]) {
			return selected(candidates[i], origin), nil
		}
	}

	available := make([]string, 0, len(candidates))
	for _, v := range candidates {
		available = append(available, v.Original())
	}
	return ResolvedDependency{}, builderrors.NewUnsatisfiableConstraint(name.String(), constraints, available)
}

// Satisfies reports whether version meets every constraint
func Satisfies(version string, constraints []string) (bool, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, err
	}
	for _, c := range constraints {
		pc, err := semver.NewConstraint(c)
		if err != nil {
			return false, err
		}
		if !pc.Check(v) {
			return false, nil
		}
	}
	return true, nil
}

// pins returns the exact versions named by constraints
func pins(constraints []string) []string {
	var out []string
	for _, c := range constraints {
		if v, ok := exactVersion(c); ok {
			out = append(out, v)
		}
	}
	return out
}

func exactVersion(c string) (string, bool) {
	c = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(c), "="))
	if c == "" || strings.ContainsAny(c, "<>!~^*|, ") {
		return "", false
	}
	if _, err := semver.NewVersion(c); err != nil {
		return "", false
	}
	return c, true
}

// parseVersions parses and sorts versions ascending. Entries that are not
// versions are skipped.
func parseVersions(listed []string) []*semver.Version {
	out := make([]*semver.Version, 0, len(listed))
	for _, s := range listed {
		v, err := semver.NewVersion(strings.TrimSpace(s))
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LessThan(out[j]) })
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
