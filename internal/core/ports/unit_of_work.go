package ports

import (
	"context"

	"go.trai.ch/avert/internal/core/domain"
)

// ImplementationVisitor receives the implementations of a unit of work.
type ImplementationVisitor interface {
	VisitImplementation(descriptor domain.ImplementationDescriptor)
	VisitAdditionalImplementation(descriptor domain.ImplementationDescriptor)
}

// InputPropertyVisitor receives a named input value.
type InputPropertyVisitor func(name string, value any)

// InputFilePropertyVisitor receives a named input file property, its
// normalization and a function producing its current snapshot on demand.
type InputFilePropertyVisitor func(name string, normalization domain.Normalization, snapshot func() (domain.FileSystemSnapshot, error))

// OutputPropertyVisitor receives a named output property and its declared roots.
type OutputPropertyVisitor func(name string, roots []string)

// UnitOfWork is a single schedulable, reproducible action with declared inputs
// and outputs. A unit is immutable for the duration of one execution attempt.
//
//go:generate go run go.uber.org/mock/mockgen -source=unit_of_work.go -destination=mocks/mock_unit_of_work.go -package=mocks
type UnitOfWork interface {
	// Identity is the key under which the unit's history is stored.
	Identity() string
	DisplayName() string

	IsHistoryMaintained() bool
	HasOverlappingOutputs() bool
	IsCacheable() bool

	VisitImplementations(visitor ImplementationVisitor)
	VisitInputProperties(visitor InputPropertyVisitor)
	VisitInputFileProperties(visitor InputFilePropertyVisitor)
	VisitOutputProperties(visitor OutputPropertyVisitor)

	// OutputFileSnapshotsBeforeExecution snapshots each output property as found on disk.
	OutputFileSnapshotsBeforeExecution() (map[string]domain.FileSystemSnapshot, error)
	// OutputFileSnapshotsAfterExecution snapshots each output property once the unit ran.
	OutputFileSnapshotsAfterExecution() (map[string]domain.FileSystemSnapshot, error)

	// Execute performs the work.
	Execute(ctx context.Context) error
}
