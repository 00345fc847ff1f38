package domain

import (
	"cmp"
	"slices"
	"strings"
)

// Normalization selects how file paths are keyed in a fingerprint.
type Normalization string

const (
	// NormalizeAbsolutePath keys entries by absolute path.
	NormalizeAbsolutePath Normalization = "absolute-path"
	// NormalizeRelativePath keys entries by path relative to their root.
	NormalizeRelativePath Normalization = "relative-path"
	// NormalizeNameOnly keys entries by file name.
	NormalizeNameOnly Normalization = "name-only"
	// NormalizeIgnoreMissing keys entries by absolute path and treats an absent root as empty.
	NormalizeIgnoreMissing Normalization = "ignore-missing"
)

// ParseNormalization maps a configuration string to a Normalization.
// The empty string selects absolute-path.
func ParseNormalization(s string) (Normalization, bool) {
	switch Normalization(strings.ToLower(strings.TrimSpace(s))) {
	case "", NormalizeAbsolutePath:
		return NormalizeAbsolutePath, true
	case NormalizeRelativePath:
		return NormalizeRelativePath, true
	case NormalizeNameOnly:
		return NormalizeNameOnly, true
	case NormalizeIgnoreMissing:
		return NormalizeIgnoreMissing, true
	default:
		return "", false
	}
}

// OutputNormalization is the normalization used for output properties.
const OutputNormalization = NormalizeIgnoreMissing

// FingerprintEntry is one normalized entry of a FileCollectionFingerprint.
type FingerprintEntry struct {
	Path   string   `json:"path"`
	Type   FileType `json:"type"`
	Digest Hash     `json:"digest"`
}

func compareEntries(a, b FingerprintEntry) int {
	return cmp.Or(strings.Compare(a.Path, b.Path), cmp.Compare(a.Type, b.Type), cmp.Compare(a.Digest, b.Digest))
}

// SortFingerprintEntries orders entries canonically.
func SortFingerprintEntries(entries []FingerprintEntry) {
	slices.SortFunc(entries, compareEntries)
}

// FileCollectionFingerprint is the normalized digest of a file collection.
// Entries are sorted by path; name-only fingerprints may repeat a path.
type FileCollectionFingerprint struct {
	Strategy Normalization      `json:"strategy"`
	Entries  []FingerprintEntry `json:"entries,omitempty"`
	RootHash Hash               `json:"root_hash"`
}

// IsEmpty reports whether the fingerprint has no entries.
func (f *FileCollectionFingerprint) IsEmpty() bool {
	return f == nil || len(f.Entries) == 0
}

// Equal compares entries structurally. A nil fingerprint equals an empty one.
func (f *FileCollectionFingerprint) Equal(other *FileCollectionFingerprint) bool {
	var a, b []FingerprintEntry
	if f != nil {
		a = f.Entries
	}
	if other != nil {
		b = other.Entries
	}
	return slices.Equal(a, b)
}

// Lookup returns the first entry recorded for path.
func (f *FileCollectionFingerprint) Lookup(path string) (FingerprintEntry, bool) {
	if f == nil {
		return FingerprintEntry{}, false
	}
	i, found := slices.BinarySearchFunc(f.Entries, path, func(e FingerprintEntry, p string) int {
		return strings.Compare(e.Path, p)
	})
	if !found {
		return FingerprintEntry{}, false
	}
	return f.Entries[i], true
}

// Contains reports whether path has an entry.
func (f *FileCollectionFingerprint) Contains(path string) bool {
	_, ok := f.Lookup(path)
	return ok
}
