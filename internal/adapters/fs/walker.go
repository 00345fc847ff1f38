// Package fs provides file system adapters for walking, hashing and snapshotting files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/avert/internal/core/domain"
)

// Entry is a file system entry found while walking a root.
type Entry struct {
	Path  string
	IsDir bool
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Walk yields every file and directory below root in lexical order, skipping
// version control and avert metadata directories and names matching ignores.
// The root itself is not yielded. A walk error is yielded once and ends the walk.
func (w *Walker) Walk(root string, ignores []string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				yield(Entry{Path: path}, err)
				return filepath.SkipAll
			}
			if path == root {
				return nil
			}

			if skip, action := w.shouldSkip(d, ignores); skip {
				return action
			}

			if !yield(Entry{Path: path, IsDir: d.IsDir()}, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// WalkFiles yields the regular files below root. Walk errors end the walk silently.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for entry, err := range w.Walk(root, ignores) {
			if err != nil {
				return
			}
			if entry.IsDir {
				continue
			}
			if !yield(entry.Path) {
				return
			}
		}
	}
}

// shouldSkip reports whether d is excluded, and the action to return to WalkDir.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()

	if d.IsDir() {
		switch name {
		case ".git", ".jj", domain.AvertDirName:
			return true, filepath.SkipDir
		}
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}

	return false, nil
}
