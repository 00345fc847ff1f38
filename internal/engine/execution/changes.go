package execution

import (
	"fmt"

	"go.trai.ch/avert/internal/core/domain"
)

// Reasons returned by DetectChanges.
const (
	ReasonNoHistory                     = "no history is available"
	ReasonRerun                         = "rerun was requested"
	ReasonImplementationChanged         = "implementation has changed"
	ReasonAdditionalImplementationsDiff = "additional implementations have changed"
)

// DetectChanges lists why a unit whose state was captured as current is not up
// to date with previous. It returns no reasons when the unit can be skipped.
func DetectChanges(
	previous *domain.AfterPreviousExecutionState,
	current *domain.BeforeExecutionState,
	rerun bool,
) []string {
	if previous == nil {
		return []string{ReasonNoHistory}
	}

	var reasons []string
	if rerun {
		reasons = append(reasons, ReasonRerun)
	}
	if !previous.Implementation.Equal(current.Implementation) {
		reasons = append(reasons, ReasonImplementationChanged)
	}
	if !domain.EqualImplementations(previous.AdditionalImplementations, current.AdditionalImplementations) {
		reasons = append(reasons, ReasonAdditionalImplementationsDiff)
	}

	reasons = append(reasons, diffProperties(
		"input property", previous.InputProperties, current.InputProperties, domain.EqualValueSnapshots,
		"value of input property '%s' has changed",
	)...)
	reasons = append(reasons, diffProperties(
		"input file property", previous.InputFileProperties, current.InputFileProperties, equalFingerprints,
		"input file property '%s' has changed",
	)...)
	reasons = append(reasons, diffProperties(
		"output property", previous.OutputFileProperties, current.OutputFileProperties, equalFingerprints,
		"output property '%s' has changed since previous execution",
	)...)
	return reasons
}

func equalFingerprints(a, b *domain.FileCollectionFingerprint) bool {
	return a.Equal(b)
}

func diffProperties[V any](
	kind string,
	previous, current domain.Properties[V],
	equal func(a, b V) bool,
	changedFormat string,
) []string {
	var reasons []string
	for name, value := range current.All() {
		old, ok := previous.Get(name)
		switch {
		case !ok:
			reasons = append(reasons, fmt.Sprintf("%s '%s' has been added", kind, name))
		case !equal(old, value):
			reasons = append(reasons, fmt.Sprintf(changedFormat, name))
		}
	}
	for name := range previous.All() {
		if _, ok := current.Get(name); !ok {
			reasons = append(reasons, fmt.Sprintf("%s '%s' has been removed", kind, name))
		}
	}
	return reasons
}
