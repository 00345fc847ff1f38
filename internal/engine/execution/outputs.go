package execution

import (
	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/avert/internal/engine/overlap"
	"go.trai.ch/zerr"
)

// outputRecorder fingerprints the outputs a unit owns around its execution.
type outputRecorder struct {
	fingerprinter ports.Fingerprinter
}

// before fingerprints the unfiltered outputs currently on disk. It returns nil
// for units without overlapping outputs, which need no baseline.
func (r outputRecorder) before(ec *Context) (map[string]*domain.FileCollectionFingerprint, error) {
	if !ec.Work.HasOverlappingOutputs() {
		return nil, nil
	}
	snapshots, err := ec.Work.OutputFileSnapshotsBeforeExecution()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "unit", ec.Work.Identity())
	}
	fingerprints := make(map[string]*domain.FileCollectionFingerprint, len(snapshots))
	for name, snapshot := range snapshots {
		fp, err := r.fingerprinter.Fingerprint(domain.OutputNormalization, snapshot)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "property", name)
		}
		fingerprints[name] = fp
	}
	return fingerprints, nil
}

// after snapshots the outputs once the unit ran and keeps the entries it owns.
func (r outputRecorder) after(
	ec *Context,
	before map[string]*domain.FileCollectionFingerprint,
) (domain.Properties[*domain.FileCollectionFingerprint], map[string]domain.FileSystemSnapshot, error) {
	var none domain.Properties[*domain.FileCollectionFingerprint]

	snapshots, err := ec.Work.OutputFileSnapshotsAfterExecution()
	if err != nil {
		return none, nil, zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "unit", ec.Work.Identity())
	}

	overlapping := ec.Work.HasOverlappingOutputs()
	owned := make(map[string]domain.FileSystemSnapshot, len(snapshots))
	fingerprints := make(map[string]*domain.FileCollectionFingerprint, len(snapshots))
	for name, snapshot := range snapshots {
		var previous *domain.FileCollectionFingerprint
		if ec.AfterPrevious != nil {
			previous, _ = ec.AfterPrevious.OutputFileProperties.Get(name)
		}

		kept := overlap.AfterExecution(snapshot, overlapping, before[name], previous)
		fp, err := r.fingerprinter.Fingerprint(domain.OutputNormalization, kept)
		if err != nil {
			return none, nil, zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "property", name)
		}
		owned[name] = kept
		fingerprints[name] = fp
	}
	return domain.NewProperties(fingerprints), owned, nil
}

// outputRoots returns the declared roots of each output property.
func outputRoots(work ports.UnitOfWork) map[string][]string {
	roots := make(map[string][]string)
	work.VisitOutputProperties(func(name string, paths []string) {
		roots[name] = paths
	})
	return roots
}
