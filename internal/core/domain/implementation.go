package domain

import "slices"

// ImplementationDescriptor identifies the code that performs a unit of work.
// Identity names the implementation; Context lists the loading-context entries
// (tool versions, runtime ids) it depends on; Sources lists the files whose
// contents define its behavior.
type ImplementationDescriptor struct {
	Identity string
	Context  []string
	Sources  []string
}

// ImplementationSnapshot is the hashed form of an ImplementationDescriptor.
type ImplementationSnapshot struct {
	Identity    string `json:"identity"`
	ContentHash Hash   `json:"content_hash"`
}

// Equal reports whether both identity and content hash match.
func (s ImplementationSnapshot) Equal(other ImplementationSnapshot) bool {
	return s.Identity == other.Identity && s.ContentHash == other.ContentHash
}

// String renders the snapshot as identity@hash.
func (s ImplementationSnapshot) String() string {
	return s.Identity + "@" + s.ContentHash.String()
}

// EqualImplementations compares two ordered sequences of implementation snapshots.
func EqualImplementations(a, b []ImplementationSnapshot) bool {
	return slices.EqualFunc(a, b, ImplementationSnapshot.Equal)
}
