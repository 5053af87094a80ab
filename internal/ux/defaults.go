package ux

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// PathDefaults provides defaults for the files build-plan reads and writes
type PathDefaults struct {
	// Dir is where default files are looked up
	Dir string
}

// NewPathDefaults creates a new PathDefaults rooted at the working directory
func NewPathDefaults() *PathDefaults {
	return &PathDefaults{Dir: "."}
}

// configNames are tried in order when --config is not given
var configNames = []string{
	"build-plan.properties",
	"build-plan.yaml",
	"build-plan.yml",
	"build-plan.json",
	"build-plan.hcl",
}

// depsNames are tried in order when --deps is not given
var depsNames = []string{
	"dependencies.txt",
	"dependencies.yaml",
	"dependencies.yml",
	"dependencies.json",
}

// ConfigFile returns the first existing config file, searching Dir and
// its parents up to the repository root
func (pd *PathDefaults) ConfigFile() (string, error) {
	return DiscoverFile(pd.Dir, configNames)
}

// DepsFile returns the first existing dependencies file
func (pd *PathDefaults) DepsFile() (string, error) {
	return DiscoverFile(pd.Dir, depsNames)
}

// PlanFile returns the default path of the written plan
func (pd *PathDefaults) PlanFile() string {
	return filepath.Join(pd.Dir, "build-plan.json")
}

// LockFile returns the default path of the lock file
func (pd *PathDefaults) LockFile() string {
	return filepath.Join(pd.Dir, "build-plan.lock")
}

// DiscoverFile looks for the first of names in dir and then in each parent
// directory. The search stops at a directory containing .git or at the
// filesystem root.
func DiscoverFile(dir string, names []string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for cur := abs; ; {
		for _, name := range names {
			path := filepath.Join(cur, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
		if _, err := os.Stat(filepath.Join(cur, ".git")); err == nil {
			break
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}

	return "", fmt.Errorf("none of %v found in %s or its parents: %w", names, abs, fs.ErrNotExist)
}

// IsNotFound reports whether a discovery failed because nothing matched
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
