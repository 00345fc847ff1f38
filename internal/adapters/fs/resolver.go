package fs

import (
	"path/filepath"
	"slices"

	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PathResolver = (*Resolver)(nil)

// Resolver implements the PathResolver interface using filepath.Glob.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve expands the given patterns relative to root into a sorted list of
// unique absolute paths. A pattern without matches is kept as a literal path,
// so that missing roots reach the snapshotter and are recorded as missing.
func (r *Resolver) Resolve(patterns []string, root string) ([]string, error) {
	uniquePaths := make(map[string]bool)

	for _, pattern := range patterns {
		path := pattern
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, pattern)
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
		}

		if len(matches) == 0 {
			uniquePaths[filepath.Clean(path)] = true
			continue
		}

		for _, match := range matches {
			uniquePaths[match] = true
		}
	}

	result := make([]string, 0, len(uniquePaths))
	for path := range uniquePaths {
		result = append(result, path)
	}
	slices.Sort(result)

	return result, nil
}
