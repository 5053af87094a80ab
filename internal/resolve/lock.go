package resolve

import (
	"encoding/json"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/felixgeelhaar/buildplan/internal/domain"
	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
	"github.com/felixgeelhaar/buildplan/internal/fileformat"
)

// LockVersion is the current lock file layout version
const LockVersion = 1

// Lock pins the versions selected by an earlier resolution
type Lock struct {
	Version      int                           `json:"version"`
	Dependencies map[domain.LibraryName]string `json:"dependencies"`
}

// NewLock records the versions of a resolution
func NewLock(deps []ResolvedDependency) *Lock {
	l := &Lock{Version: LockVersion, Dependencies: make(map[domain.LibraryName]string, len(deps))}
	for _, d := range deps {
		l.Dependencies[d.Name] = d.Version
	}
	return l
}

// Names returns the locked library names in sorted order
func (l *Lock) Names() []domain.LibraryName {
	names := make([]domain.LibraryName, 0, len(l.Dependencies))
	for n := range l.Dependencies {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func (l *Lock) lookup(name domain.LibraryName) (*semver.Version, bool) {
	if l == nil {
		return nil, false
	}
	s, ok := l.Dependencies[name]
	if !ok {
		return nil, false
	}
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, false
	}
	return v, true
}

// SaveLock writes a lock file as indented JSON
func SaveLock(lock *Lock, path string) error {
	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return builderrors.Wrap(builderrors.ErrCodeFileMarshal, "marshal lock", err).WithIdentifier(path)
	}
	return fileformat.Write(path, append(data, '\n'))
}

// LoadLock reads a lock file
func LoadLock(path string) (*Lock, error) {
	data, err := fileformat.Read(path)
	if err != nil {
		return nil, err
	}

	var lock Lock
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, builderrors.NewFileUnmarshalError(path, fileformat.JSON.Name(), err)
	}
	if lock.Dependencies == nil {
		lock.Dependencies = make(map[domain.LibraryName]string)
	}
	return &lock, nil
}
