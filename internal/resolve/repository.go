package resolve

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/felixgeelhaar/buildplan/internal/domain"
)

// Repository lists the published versions of a library. A library the
// repository does not know yields an empty list and no error.
type Repository interface {
	Versions(ctx context.Context, name domain.LibraryName) ([]string, error)
}

// PlatformRepository is implemented by repositories that know the versions
// a platform (BOM) release manages.
type PlatformRepository interface {
	Managed(ctx context.Context, platform domain.LibraryName, version string) (map[domain.LibraryName]string, error)
}

// StaticRepository serves versions listed up front, typically in the
// dependencies file.
type StaticRepository struct {
	versions  map[domain.LibraryName][]string
	platforms map[string]map[domain.LibraryName]string
}

// NewStaticRepository creates a repository over a fixed version listing
func NewStaticRepository(versions map[domain.LibraryName][]string) *StaticRepository {
	r := &StaticRepository{
		versions:  make(map[domain.LibraryName][]string, len(versions)),
		platforms: make(map[string]map[domain.LibraryName]string),
	}
	for name, vs := range versions {
		r.versions[name] = append([]string(nil), vs...)
	}
	return r
}

// AddPlatform records the versions managed by one platform release. The
// release itself becomes a known version of the platform library.
func (r *StaticRepository) AddPlatform(platform domain.LibraryName, version string, managed map[domain.LibraryName]string) {
	m := make(map[domain.LibraryName]string, len(managed))
	for k, v := range managed {
		m[k] = v
	}
	r.platforms[platformKey(platform, version)] = m

	for _, v := range r.versions[platform] {
		if v == version {
			return
		}
	}
	r.versions[platform] = append(r.versions[platform], version)
}

// Versions implements Repository
func (r *StaticRepository) Versions(_ context.Context, name domain.LibraryName) ([]string, error) {
	return append([]string(nil), r.versions[name]...), nil
}

// Managed implements PlatformRepository
func (r *StaticRepository) Managed(_ context.Context, platform domain.LibraryName, version string) (map[domain.LibraryName]string, error) {
	return r.platforms[platformKey(platform, version)], nil
}

func platformKey(platform domain.LibraryName, version string) string {
	return platform.String() + ":" + version
}

// DirRepository reads versions from a Maven-style directory tree:
// <root>/<group path>/<artifact>/<version>/
type DirRepository struct {
	root string
}

// NewDirRepository creates a repository rooted at dir
func NewDirRepository(dir string) *DirRepository {
	return &DirRepository{root: dir}
}

// Versions implements Repository
func (r *DirRepository) Versions(ctx context.Context, name domain.LibraryName) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Join(r.root, filepath.FromSlash(strings.ReplaceAll(name.Group(), ".", "/")), name.Artifact())
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			versions = append(versions, e.Name())
		}
	}
	sort.Strings(versions)
	return versions, nil
}

// DefaultCacheSize is the number of libraries a CachingRepository keeps
const DefaultCacheSize = 512

// CachingRepository memoizes version listings of another repository
type CachingRepository struct {
	inner Repository
	cache *lru.Cache[domain.LibraryName, []string]
}

// NewCachingRepository wraps inner with an LRU cache of the given size
func NewCachingRepository(inner Repository, size int) (*CachingRepository, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[domain.LibraryName, []string](size)
	if err != nil {
		return nil, err
	}
	return &CachingRepository{inner: inner, cache: cache}, nil
}

// Versions implements Repository. Failed lookups are not cached.
func (r *CachingRepository) Versions(ctx context.Context, name domain.LibraryName) ([]string, error) {
	if vs, ok := r.cache.Get(name); ok {
		return append([]string(nil), vs...), nil
	}
	vs, err := r.inner.Versions(ctx, name)
	if err != nil {
		return nil, err
	}
	r.cache.Add(name, append([]string(nil), vs...))
	return vs, nil
}

// Managed implements PlatformRepository when the wrapped repository does
func (r *CachingRepository) Managed(ctx context.Context, platform domain.LibraryName, version string) (map[domain.LibraryName]string, error) {
	if p, ok := r.inner.(PlatformRepository); ok {
		return p.Managed(ctx, platform, version)
	}
	return nil, nil
}

// MultiRepository merges the listings of several repositories
type MultiRepository []Repository

// Versions implements Repository
func (m MultiRepository) Versions(ctx context.Context, name domain.LibraryName) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, r := range m {
		vs, err := r.Versions(ctx, name)
		if err != nil {
			return nil, err
		}
		for _, v := range vs {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out, nil
}

// Managed implements PlatformRepository. The first repository that
// manages the release wins.
func (m MultiRepository) Managed(ctx context.Context, platform domain.LibraryName, version string) (map[domain.LibraryName]string, error) {
	for _, r := range m {
		p, ok := r.(PlatformRepository)
		if !ok {
			continue
		}
		managed, err := p.Managed(ctx, platform, version)
		if err != nil {
			return nil, err
		}
		if len(managed) > 0 {
			return managed, nil
		}
	}
	return nil, nil
}
