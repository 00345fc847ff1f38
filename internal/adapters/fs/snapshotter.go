package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.FileSystemSnapshotter = (*Snapshotter)(nil)

// Snapshotter captures roots from the local file system.
type Snapshotter struct {
	walker  *Walker
	workers int
}

// NewSnapshotter creates a new Snapshotter hashing files on up to GOMAXPROCS goroutines.
func NewSnapshotter(walker *Walker) *Snapshotter {
	return &Snapshotter{walker: walker, workers: runtime.GOMAXPROCS(0)}
}

// Snapshot implements ports.FileSystemSnapshotter. Roots are made absolute;
// a root that does not exist is recorded with FileTypeMissing.
func (s *Snapshotter) Snapshot(roots []string) (domain.FileSystemSnapshot, error) {
	out := domain.FileSystemSnapshot{Roots: make([]domain.LocationSnapshot, 0, len(roots))}
	for _, root := range roots {
		loc, err := s.location(root)
		if err != nil {
			return domain.FileSystemSnapshot{}, zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "path", root)
		}
		out.Roots = append(out.Roots, loc)
	}
	return out, nil
}

func (s *Snapshotter) location(root string) (domain.LocationSnapshot, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return domain.LocationSnapshot{}, err
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return domain.LocationSnapshot{Root: abs, Type: domain.FileTypeMissing}, nil
	case err != nil:
		return domain.LocationSnapshot{}, err
	case !info.IsDir():
		hash, err := HashFile(abs)
		if err != nil {
			return domain.LocationSnapshot{}, err
		}
		return domain.LocationSnapshot{
			Root: abs,
			Type: domain.FileTypeRegular,
			Files: []domain.FileSnapshot{{
				AbsolutePath: abs,
				RelativePath: filepath.Base(abs),
				Type:         domain.FileTypeRegular,
				ContentHash:  hash,
			}},
		}, nil
	}

	files := []domain.FileSnapshot{{AbsolutePath: abs, Type: domain.FileTypeDirectory}}
	for entry, err := range s.walker.Walk(abs, nil) {
		if err != nil {
			return domain.LocationSnapshot{}, err
		}
		rel, err := filepath.Rel(abs, entry.Path)
		if err != nil {
			return domain.LocationSnapshot{}, err
		}
		f := domain.FileSnapshot{AbsolutePath: entry.Path, RelativePath: rel, Type: domain.FileTypeRegular}
		if entry.IsDir {
			f.Type = domain.FileTypeDirectory
		}
		files = append(files, f)
	}

	if err := s.hashAll(files); err != nil {
		return domain.LocationSnapshot{}, err
	}
	return domain.LocationSnapshot{Root: abs, Type: domain.FileTypeDirectory, Files: files}, nil
}

// hashAll fills in the content hash of every regular file in place.
func (s *Snapshotter) hashAll(files []domain.FileSnapshot) error {
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range files {
		if files[i].Type != domain.FileTypeRegular {
			continue
		}
		g.Go(func() error {
			hash, err := HashFile(files[i].AbsolutePath)
			if err != nil {
				return err
			}
			files[i].ContentHash = hash
			return nil
		})
	}
	return g.Wait()
}
