package resolve

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/buildplan/internal/domain"
	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
	"github.com/felixgeelhaar/buildplan/internal/fileformat"
)

// File is a parsed dependencies file
type File struct {
	Dependencies []DependencySpec                `json:"dependencies" yaml:"dependencies"`
	Repository   map[domain.LibraryName][]string `json:"repository,omitempty" yaml:"repository,omitempty"`
	Platforms    []PlatformRelease               `json:"platforms,omitempty" yaml:"platforms,omitempty"`
}

// PlatformRelease lists the versions one platform release manages
type PlatformRelease struct {
	Name    domain.LibraryName            `json:"name" yaml:"name"`
	Version string                        `json:"version" yaml:"version"`
	Manages map[domain.LibraryName]string `json:"manages" yaml:"manages"`
}

// StaticRepository returns a repository over the versions and platform
// releases listed in the file
func (f *File) StaticRepository() *StaticRepository {
	r := NewStaticRepository(f.Repository)
	for _, p := range f.Platforms {
		r.AddPlatform(p.Name, p.Version, p.Manages)
	}
	return r
}

// LoadFile reads a dependencies file, picking the format by extension
func LoadFile(path string) (*File, error) {
	data, err := fileformat.Read(path)
	if err != nil {
		return nil, err
	}
	return ParseFile(path, fileformat.Detect(path), data)
}

// ParseFile decodes a dependencies file
func ParseFile(path string, format fileformat.Format, data []byte) (*File, error) {
	var (
		f   File
		err error
	)
	switch format {
	case fileformat.JSON:
		if err = json.Unmarshal(data, &f); err != nil {
			return nil, builderrors.NewFileUnmarshalError(path, format.Name(), err)
		}
	case fileformat.YAML:
		if err = yaml.Unmarshal(data, &f); err != nil {
			return nil, builderrors.NewFileUnmarshalError(path, format.Name(), err)
		}
	case fileformat.HCL:
		return nil, builderrors.NewConfigParseError(path, 0,
			fmt.Errorf("dependencies files are JSON, YAML or dependency lines"))
	default:
		if err = parseLines(path, data, &f); err != nil {
			return nil, err
		}
	}

	for i, d := range f.Dependencies {
		if err := d.Name.Validate(); err != nil {
			return nil, builderrors.NewConfigParseError(path, 0, fmt.Errorf("dependency %d: %w", i+1, err))
		}
		if d.Scope != "" {
			scope, err := domain.ParseScope(string(d.Scope))
			if err != nil {
				return nil, builderrors.NewConfigParseError(path, 0, fmt.Errorf("dependency %s: %w", d.Name, err))
			}
			f.Dependencies[i].Scope = scope
		}
		if err := checkConstraint(d); err != nil {
			return nil, builderrors.NewConfigParseError(path, 0, err)
		}
	}
	return &f, nil
}

// checkConstraint rejects a constraint the resolver could not parse, so a
// malformed file fails as a parse error
func checkConstraint(d DependencySpec) error {
	if d.Constraint == "" {
		return nil
	}
	if _, err := semver.NewConstraint(d.Constraint); err != nil {
		return fmt.Errorf("dependency %s: invalid version constraint %q: %w", d.Name, d.Constraint, err)
	}
	return nil
}

// parseLines reads the line format:
//
//	implementation androidx.core:core-ktx:^1.12.0
//	implementation(platform("com.google.firebase:firebase-bom:32.7.2"))
//	implementation("com.google.firebase:firebase-analytics-ktx")
//	repository androidx.core:core-ktx = 1.12.0, 1.13.1
func parseLines(path string, data []byte, f *File) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "repository "); ok {
			name, versions, ok := strings.Cut(rest, "=")
			if !ok {
				return builderrors.NewConfigParseError(path, n, fmt.Errorf("expected repository <group:artifact> = <versions>"))
			}
			lib, err := domain.NewLibraryName(name)
			if err != nil {
				return builderrors.NewConfigParseError(path, n, err)
			}
			if f.Repository == nil {
				f.Repository = make(map[domain.LibraryName][]string)
			}
			for _, v := range strings.Split(versions, ",") {
				if v = strings.TrimSpace(v); v != "" {
					f.Repository[lib] = append(f.Repository[lib], v)
				}
			}
			continue
		}

		spec, err := parseDependencyLine(line)
		if err == nil {
			err = checkConstraint(spec)
		}
		if err != nil {
			return builderrors.NewConfigParseError(path, n, err)
		}
		f.Dependencies = append(f.Dependencies, spec)
	}
	if err := scanner.Err(); err != nil {
		return builderrors.NewFileReadError(path, err)
	}
	return nil
}

func parseDependencyLine(line string) (DependencySpec, error) {
	fields := strings.Fields(strings.NewReplacer("(", " ", ")", " ", `"`, " ", "'", " ").Replace(line))

	spec := DependencySpec{Scope: domain.ScopeCompile}
	var coordinate string
	switch len(fields) {
	case 1:
		coordinate = fields[0]
	case 2, 3:
		scope, err := domain.ParseScope(fields[0])
		if err != nil {
			return DependencySpec{}, err
		}
		spec.Scope = scope
		if len(fields) == 3 {
			if fields[1] != "platform" {
				return DependencySpec{}, fmt.Errorf("unexpected %q", fields[1])
			}
			spec.Scope = domain.ScopePlatform
		}
		coordinate = fields[len(fields)-1]
	default:
		return DependencySpec{}, fmt.Errorf("expected [scope] group:artifact[:version]")
	}

	parts := strings.SplitN(coordinate, ":", 3)
	if len(parts) < 2 {
		return DependencySpec{}, fmt.Errorf("coordinate %q must be group:artifact[:version]", coordinate)
	}
	name, err := domain.NewLibraryName(parts[0] + ":" + parts[1])
	if err != nil {
		return DependencySpec{}, err
	}
	spec.Name = name
	if len(parts) == 3 {
		spec.Constraint = parts[2]
	}
	return spec, nil
}
