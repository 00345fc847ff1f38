package ports

import "go.trai.ch/avert/internal/core/domain"

// FileSystemSnapshotter captures the current state of a set of roots.
//
//go:generate go run go.uber.org/mock/mockgen -source=file_snapshotter.go -destination=mocks/mock_file_snapshotter.go -package=mocks
type FileSystemSnapshotter interface {
	// Snapshot walks every root. Missing roots are recorded with FileTypeMissing.
	Snapshot(roots []string) (domain.FileSystemSnapshot, error)
}
