package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/avert/internal/adapters/fs"
	"go.trai.ch/avert/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .git/config
	//   .avert/history/x
	//   ignored/file
	//   src/main.go
	//   README.md
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config"), "git config")
	writeFile(t, filepath.Join(tmpDir, ".avert", "history", "x"), "{}")
	writeFile(t, filepath.Join(tmpDir, "ignored", "file"), "ignored content")
	writeFile(t, filepath.Join(tmpDir, "src", "main.go"), "package main")
	writeFile(t, filepath.Join(tmpDir, "README.md"), "# Readme")

	walker := fs.NewWalker()

	files := make(map[string]bool)
	for path := range walker.WalkFiles(tmpDir, []string{"ignored"}) {
		rel, err := filepath.Rel(tmpDir, path)
		require.NoError(t, err)
		files[filepath.ToSlash(rel)] = true
	}

	assert.Equal(t, map[string]bool{"src/main.go": true, "README.md": true}, files)
}

func TestWalker_WalkYieldsDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "src", "main.go"), "package main")

	var entries []fs.Entry
	for entry, err := range fs.NewWalker().Walk(tmpDir, nil) {
		require.NoError(t, err)
		entries = append(entries, entry)
	}

	assert.Equal(t, []fs.Entry{
		{Path: filepath.Join(tmpDir, "src"), IsDir: true},
		{Path: filepath.Join(tmpDir, "src", "main.go")},
	}, entries)
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, path, "hello world")

	hash1, err := fs.HashFile(path)
	require.NoError(t, err)
	assert.False(t, hash1.IsZero())

	hash2, err := fs.HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2, "expected deterministic hash")

	writeFile(t, path, "modified")
	hash3, err := fs.HashFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash3)

	_, err = fs.HashFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "failed to open file")
}

func TestSnapshotter_Snapshot(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "src", "a.txt"), "a")
	writeFile(t, filepath.Join(tmpDir, "src", "sub", "b.txt"), "b")
	writeFile(t, filepath.Join(tmpDir, "single.txt"), "single")

	src := filepath.Join(tmpDir, "src")
	single := filepath.Join(tmpDir, "single.txt")
	missing := filepath.Join(tmpDir, "missing")

	snapshotter := fs.NewSnapshotter(fs.NewWalker())
	snapshot, err := snapshotter.Snapshot([]string{src, single, missing})
	require.NoError(t, err)
	require.Len(t, snapshot.Roots, 3)

	t.Run("directory root", func(t *testing.T) {
		loc := snapshot.Roots[0]
		assert.Equal(t, src, loc.Root)
		assert.Equal(t, domain.FileTypeDirectory, loc.Type)

		rels := make(map[string]domain.FileType)
		for _, f := range loc.Files {
			rels[filepath.ToSlash(f.RelativePath)] = f.Type
			if f.Type == domain.FileTypeRegular {
				assert.False(t, f.ContentHash.IsZero(), f.AbsolutePath)
			}
		}
		assert.Equal(t, map[string]domain.FileType{
			"":          domain.FileTypeDirectory,
			"a.txt":     domain.FileTypeRegular,
			"sub":       domain.FileTypeDirectory,
			"sub/b.txt": domain.FileTypeRegular,
		}, rels)
	})

	t.Run("file root", func(t *testing.T) {
		loc := snapshot.Roots[1]
		assert.Equal(t, domain.FileTypeRegular, loc.Type)
		require.Len(t, loc.Files, 1)
		assert.Equal(t, "single.txt", loc.Files[0].RelativePath)
		assert.Equal(t, single, loc.Files[0].AbsolutePath)
	})

	t.Run("missing root", func(t *testing.T) {
		loc := snapshot.Roots[2]
		assert.Equal(t, domain.FileTypeMissing, loc.Type)
		assert.Empty(t, loc.Files)
	})
}

func TestSnapshotter_DetectsContentChanges(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.txt")
	writeFile(t, path, "one")

	snapshotter := fs.NewSnapshotter(fs.NewWalker())
	before, err := snapshotter.Snapshot([]string{tmpDir})
	require.NoError(t, err)

	writeFile(t, path, "two")
	after, err := snapshotter.Snapshot([]string{tmpDir})
	require.NoError(t, err)

	hashOf := func(s domain.FileSystemSnapshot) domain.Hash {
		for f := range s.Files() {
			if f.AbsolutePath == path {
				return f.ContentHash
			}
		}
		t.Fatalf("%s not in snapshot", path)
		return 0
	}
	assert.NotEqual(t, hashOf(before), hashOf(after))
}
