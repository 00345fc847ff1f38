package ports

import "go.trai.ch/avert/internal/core/domain"

// ValueSnapshotter converts input values into immutable, comparable snapshots.
// Implementations must be safe for concurrent use.
//
//go:generate go run go.uber.org/mock/mockgen -source=value_snapshotter.go -destination=mocks/mock_value_snapshotter.go -package=mocks
type ValueSnapshotter interface {
	// Snapshot captures value.
	Snapshot(value any) (domain.ValueSnapshot, error)

	// SnapshotWithPrevious captures value, returning previous itself when value
	// snapshots as equal to it.
	SnapshotWithPrevious(value any, previous domain.ValueSnapshot) (domain.ValueSnapshot, error)
}
