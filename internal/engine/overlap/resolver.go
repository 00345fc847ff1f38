// Package overlap separates the outputs owned by a unit of work from files left
// in a shared output location by other units.
package overlap

import "go.trai.ch/avert/internal/core/domain"

// BeforeExecution returns the baseline used as a unit's "before execution"
// output state.
//
// Without overlapping outputs the current snapshot is returned unchanged. With
// overlapping outputs only entries recorded in the previous output fingerprint
// are kept, and a missing previous fingerprint yields an empty baseline.
func BeforeExecution(
	current domain.FileSystemSnapshot,
	overlapping bool,
	previous *domain.FileCollectionFingerprint,
) domain.FileSystemSnapshot {
	if !overlapping {
		return current
	}
	if previous.IsEmpty() {
		return domain.FileSystemSnapshot{}
	}
	return current.Filter(func(f domain.FileSnapshot) bool {
		return previous.Contains(f.AbsolutePath)
	})
}

// AfterExecution returns the part of an output location produced by the unit
// that just ran. An entry is kept when it did not exist before execution, when
// its content changed during execution, or when the previous execution already
// recorded it.
//
// before and previous are keyed by absolute path. Without overlapping outputs
// the snapshot is returned unchanged.
func AfterExecution(
	after domain.FileSystemSnapshot,
	overlapping bool,
	before *domain.FileCollectionFingerprint,
	previous *domain.FileCollectionFingerprint,
) domain.FileSystemSnapshot {
	if !overlapping {
		return after
	}
	return after.Filter(func(f domain.FileSnapshot) bool {
		entry, existed := before.Lookup(f.AbsolutePath)
		if !existed {
			return true
		}
		if entry.Type != f.Type || entry.Digest != f.ContentHash {
			return true
		}
		return previous.Contains(f.AbsolutePath)
	})
}
