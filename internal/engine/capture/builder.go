// Package capture builds the before-execution state of a unit of work.
package capture

import (
	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/avert/internal/engine/overlap"
	"go.trai.ch/zerr"
)

// Builder orchestrates value snapshotting, implementation hashing and file
// fingerprinting into a domain.BeforeExecutionState. It is stateless and safe
// for concurrent use by independent pipeline invocations.
type Builder struct {
	snapshotter   ports.ValueSnapshotter
	hasher        ports.ImplementationHasher
	fingerprinter ports.Fingerprinter
}

// NewBuilder creates a new Builder.
func NewBuilder(
	snapshotter ports.ValueSnapshotter,
	hasher ports.ImplementationHasher,
	fingerprinter ports.Fingerprinter,
) *Builder {
	return &Builder{
		snapshotter:   snapshotter,
		hasher:        hasher,
		fingerprinter: fingerprinter,
	}
}

// Build captures the state of work before it executes.
//
// It returns nil, nil when the unit does not maintain execution history; no
// collaborator is invoked in that case. previous may be nil. Neither work nor
// previous is modified.
func (b *Builder) Build(
	work ports.UnitOfWork,
	previous *domain.AfterPreviousExecutionState,
) (*domain.BeforeExecutionState, error) {
	if !work.IsHistoryMaintained() {
		return nil, nil
	}

	implementation, additional, err := b.hashImplementations(work)
	if err != nil {
		return nil, err
	}

	inputs, err := b.snapshotInputs(work, previous)
	if err != nil {
		return nil, err
	}

	inputFiles, err := b.fingerprintInputFiles(work, previous)
	if err != nil {
		return nil, err
	}

	outputs, err := b.fingerprintOutputs(work, previous)
	if err != nil {
		return nil, err
	}

	return &domain.BeforeExecutionState{
		Implementation:            implementation,
		AdditionalImplementations: additional,
		InputProperties:           domain.NewProperties(inputs),
		InputFileProperties:       domain.NewProperties(inputFiles),
		OutputFileProperties:      domain.NewProperties(outputs),
	}, nil
}

type implementationCollector struct {
	primary    *domain.ImplementationDescriptor
	additional []domain.ImplementationDescriptor
}

func (c *implementationCollector) VisitImplementation(d domain.ImplementationDescriptor) {
	c.primary = &d
}

func (c *implementationCollector) VisitAdditionalImplementation(d domain.ImplementationDescriptor) {
	c.additional = append(c.additional, d)
}

func (b *Builder) hashImplementations(
	work ports.UnitOfWork,
) (domain.ImplementationSnapshot, []domain.ImplementationSnapshot, error) {
	var collector implementationCollector
	work.VisitImplementations(&collector)

	if collector.primary == nil {
		return domain.ImplementationSnapshot{}, nil, zerr.With(domain.ErrHashingFailed, "unit", work.Identity())
	}

	primary, err := b.hashImplementation(*collector.primary)
	if err != nil {
		return domain.ImplementationSnapshot{}, nil, err
	}

	var additional []domain.ImplementationSnapshot
	for _, d := range collector.additional {
		snapshot, err := b.hashImplementation(d)
		if err != nil {
			return domain.ImplementationSnapshot{}, nil, err
		}
		additional = append(additional, snapshot)
	}
	return primary, additional, nil
}

func (b *Builder) hashImplementation(d domain.ImplementationDescriptor) (domain.ImplementationSnapshot, error) {
	hash, err := b.hasher.Hash(d)
	if err != nil {
		return domain.ImplementationSnapshot{}, zerr.With(zerr.Wrap(err, domain.ErrHashingFailed.Error()), "identity", d.Identity)
	}
	return domain.ImplementationSnapshot{Identity: d.Identity, ContentHash: hash}, nil
}

func (b *Builder) snapshotInputs(
	work ports.UnitOfWork,
	previous *domain.AfterPreviousExecutionState,
) (map[string]domain.ValueSnapshot, error) {
	inputs := make(map[string]domain.ValueSnapshot)
	var firstErr error

	work.VisitInputProperties(func(name string, value any) {
		if firstErr != nil {
			return
		}

		var (
			snapshot domain.ValueSnapshot
			err      error
		)
		if prev, ok := previousInput(previous, name); ok {
			snapshot, err = b.snapshotter.SnapshotWithPrevious(value, prev)
		} else {
			snapshot, err = b.snapshotter.Snapshot(value)
		}
		if err != nil {
			firstErr = zerr.With(zerr.Wrap(err, domain.ErrSnapshotFailed.Error()), "property", name)
			return
		}
		inputs[name] = snapshot
	})

	return inputs, firstErr
}

func previousInput(previous *domain.AfterPreviousExecutionState, name string) (domain.ValueSnapshot, bool) {
	if previous == nil {
		return nil, false
	}
	return previous.InputProperties.Get(name)
}

func (b *Builder) fingerprintInputFiles(
	work ports.UnitOfWork,
	previous *domain.AfterPreviousExecutionState,
) (map[string]*domain.FileCollectionFingerprint, error) {
	fingerprints := make(map[string]*domain.FileCollectionFingerprint)
	var firstErr error

	work.VisitInputFileProperties(func(
		name string,
		normalization domain.Normalization,
		snapshot func() (domain.FileSystemSnapshot, error),
	) {
		if firstErr != nil {
			return
		}

		current, err := snapshot()
		if err != nil {
			firstErr = zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "property", name)
			return
		}
		fp, err := b.fingerprinter.Fingerprint(normalization, current)
		if err != nil {
			firstErr = zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "property", name)
			return
		}
		if previous != nil {
			prev, _ := previous.InputFileProperties.Get(name)
			fp = reuseFingerprint(prev, fp)
		}
		fingerprints[name] = fp
	})

	return fingerprints, firstErr
}

// reuseFingerprint returns previous when it matches fresh, so an unchanged
// property keeps the instance loaded from history.
func reuseFingerprint(previous, fresh *domain.FileCollectionFingerprint) *domain.FileCollectionFingerprint {
	if previous != nil && previous.Strategy == fresh.Strategy && previous.RootHash == fresh.RootHash && previous.Equal(fresh) {
		return previous
	}
	return fresh
}

func (b *Builder) fingerprintOutputs(
	work ports.UnitOfWork,
	previous *domain.AfterPreviousExecutionState,
) (map[string]*domain.FileCollectionFingerprint, error) {
	snapshots, err := work.OutputFileSnapshotsBeforeExecution()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "unit", work.Identity())
	}

	overlapping := work.HasOverlappingOutputs()
	fingerprints := make(map[string]*domain.FileCollectionFingerprint, len(snapshots))
	for name, current := range snapshots {
		var previousOutput *domain.FileCollectionFingerprint
		if previous != nil {
			previousOutput, _ = previous.OutputFileProperties.Get(name)
		}

		baseline := overlap.BeforeExecution(current, overlapping, previousOutput)
		fp, err := b.fingerprinter.Fingerprint(domain.OutputNormalization, baseline)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "property", name)
		}
		fingerprints[name] = reuseFingerprint(previousOutput, fp)
	}
	return fingerprints, nil
}
