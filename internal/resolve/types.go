package resolve

import (
	"github.com/felixgeelhaar/buildplan/internal/domain"
)

// DependencySpec is one declared dependency. Constraint may be empty for
// libraries whose version is managed by a platform.
type DependencySpec struct {
	Name       domain.LibraryName `json:"name" yaml:"name"`
	Constraint string             `json:"version,omitempty" yaml:"version,omitempty"`
	Scope      domain.Scope       `json:"scope,omitempty" yaml:"scope,omitempty"`
}

// Origin records where a selected version came from
type Origin string

const (
	OriginRepository Origin = "repository"
	OriginPinned     Origin = "pinned"
	OriginPlatform   Origin = "platform"
	OriginLocked     Origin = "locked"
)

// ResolvedDependency is the single version chosen for a library
type ResolvedDependency struct {
	Name                 domain.LibraryName `json:"name" yaml:"name"`
	Version              string             `json:"version" yaml:"version"`
	SatisfiesConstraints bool               `json:"satisfies_constraints" yaml:"satisfies_constraints"`
	Scope                domain.Scope       `json:"scope" yaml:"scope"`
	Constraints          []string           `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Origin               Origin             `json:"origin" yaml:"origin"`
}

// Coordinate returns group:artifact:version
func (d ResolvedDependency) Coordinate() string {
	return d.Name.String() + ":" + d.Version
}
