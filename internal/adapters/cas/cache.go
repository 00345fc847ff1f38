package cas

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildCache = (*BuildCache)(nil)

const manifestName = "manifest.json"

// manifest describes the outputs stored under one cache key.
type manifest struct {
	Properties map[string][]manifestRoot `json:"properties"`
}

type manifestRoot struct {
	Root  string          `json:"root"`
	Type  domain.FileType `json:"type"`
	Files []manifestFile  `json:"files,omitempty"`
}

type manifestFile struct {
	Path string          `json:"path"`
	Type domain.FileType `json:"type"`
}

// BuildCache implements ports.BuildCache by copying output files into a
// directory per cache key.
type BuildCache struct {
	dir string
}

// NewBuildCache creates a BuildCache keeping its entries in dir.
func NewBuildCache(dir string) *BuildCache {
	return &BuildCache{dir: filepath.Clean(dir)}
}

// Store copies the files of every output snapshot into the entry for key.
// An existing entry for key is left untouched.
func (c *BuildCache) Store(ctx context.Context, key domain.Hash, outputs map[string]domain.FileSystemSnapshot) error {
	entry := c.entryDir(key)
	if _, err := os.Stat(entry); err == nil {
		return nil
	}

	if err := os.MkdirAll(c.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheStoreFailed.Error())
	}
	staging, err := os.MkdirTemp(c.dir, ".staging-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheStoreFailed.Error())
	}
	defer os.RemoveAll(staging) //nolint:errcheck // Already renamed on success

	m := manifest{Properties: make(map[string][]manifestRoot, len(outputs))}
	for name, snapshot := range outputs {
		roots := make([]manifestRoot, 0, len(snapshot.Roots))
		for i, loc := range snapshot.Roots {
			if err := ctx.Err(); err != nil {
				return err
			}
			root, err := storeRoot(filepath.Join(staging, name, strconv.Itoa(i)), loc)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "property", name)
			}
			roots = append(roots, root)
		}
		m.Properties[name] = roots
	}

	data, err := json.Marshal(m)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheStoreFailed.Error())
	}
	if err := os.WriteFile(filepath.Join(staging, manifestName), data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheStoreFailed.Error())
	}

	if err := os.Rename(staging, entry); err != nil {
		if _, statErr := os.Stat(entry); statErr == nil {
			// Stored concurrently by another unit with the same key.
			return nil
		}
		return zerr.Wrap(err, domain.ErrCacheStoreFailed.Error())
	}
	return nil
}

func storeRoot(dst string, loc domain.LocationSnapshot) (manifestRoot, error) {
	root := manifestRoot{Root: loc.Root, Type: loc.Type}
	if loc.Type == domain.FileTypeMissing {
		return root, nil
	}
	if err := os.MkdirAll(dst, domain.DirPerm); err != nil {
		return root, err
	}

	for _, f := range loc.Files {
		if f.RelativePath == "" {
			continue
		}
		root.Files = append(root.Files, manifestFile{Path: filepath.ToSlash(f.RelativePath), Type: f.Type})
		target := filepath.Join(dst, f.RelativePath)
		switch f.Type {
		case domain.FileTypeDirectory:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return root, err
			}
		case domain.FileTypeRegular:
			if err := copyFile(f.AbsolutePath, target); err != nil {
				return root, err
			}
		}
	}
	return root, nil
}

// Load restores the entry for key into the declared roots of each output
// property. An entry whose roots differ from the declared ones is a miss.
// Each root is replaced as a whole, so callers must not restore into output
// locations shared with other units.
func (c *BuildCache) Load(ctx context.Context, key domain.Hash, outputs map[string][]string) (bool, error) {
	entry := c.entryDir(key)
	//nolint:gosec // Path is constructed from the cache directory and hashed key
	data, err := os.ReadFile(filepath.Join(entry, manifestName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.Wrap(err, domain.ErrCacheLoadFailed.Error())
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrCacheLoadFailed.Error()), "key", key.String())
	}
	if !matches(m, outputs) {
		return false, nil
	}

	for name, roots := range m.Properties {
		for i, root := range roots {
			if err := ctx.Err(); err != nil {
				return false, err
			}
			src := filepath.Join(entry, name, strconv.Itoa(i))
			if err := restoreRoot(src, root); err != nil {
				return false, zerr.With(zerr.Wrap(err, domain.ErrCacheLoadFailed.Error()), "property", name)
			}
		}
	}
	return true, nil
}

func matches(m manifest, outputs map[string][]string) bool {
	if len(m.Properties) != len(outputs) {
		return false
	}
	for name, roots := range m.Properties {
		declared, ok := outputs[name]
		if !ok || len(declared) != len(roots) {
			return false
		}
		for i, root := range roots {
			abs, err := filepath.Abs(declared[i])
			if err != nil || abs != root.Root {
				return false
			}
		}
	}
	return true
}

func restoreRoot(src string, root manifestRoot) error {
	if err := os.RemoveAll(root.Root); err != nil {
		return err
	}

	switch root.Type {
	case domain.FileTypeMissing:
		return nil
	case domain.FileTypeRegular:
		if len(root.Files) != 1 {
			return zerr.With(zerr.New("corrupt cache entry"), "root", root.Root)
		}
		return copyFile(filepath.Join(src, filepath.FromSlash(root.Files[0].Path)), root.Root)
	}

	if err := os.MkdirAll(root.Root, domain.DirPerm); err != nil {
		return err
	}
	for _, f := range root.Files {
		target := filepath.Join(root.Root, filepath.FromSlash(f.Path))
		if f.Type == domain.FileTypeDirectory {
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(filepath.Join(src, filepath.FromSlash(f.Path)), target); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // Path comes from a snapshot or cache entry
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm()) //nolint:gosec // Path is declared by the project
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func (c *BuildCache) entryDir(key domain.Hash) string {
	return filepath.Join(c.dir, key.String())
}
