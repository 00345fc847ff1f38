// Package fingerprint implements the file collection fingerprinting strategies.
package fingerprint

import (
	"encoding/binary"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Registry)(nil)

// Strategy converts a file system snapshot into a normalized fingerprint.
type Strategy struct {
	normalization domain.Normalization
	ignoreMissing bool
	// key returns the normalized path of f, or false to leave f out.
	key   func(f domain.FileSnapshot) (string, bool)
	empty *domain.FileCollectionFingerprint
}

func newStrategy(n domain.Normalization, ignoreMissing bool, key func(domain.FileSnapshot) (string, bool)) *Strategy {
	return &Strategy{
		normalization: n,
		ignoreMissing: ignoreMissing,
		key:           key,
		empty:         &domain.FileCollectionFingerprint{Strategy: n},
	}
}

var (
	// AbsolutePath keys entries by absolute path.
	AbsolutePath = newStrategy(domain.NormalizeAbsolutePath, false, func(f domain.FileSnapshot) (string, bool) {
		return f.AbsolutePath, true
	})

	// RelativePath keys entries by path relative to their root. Root directories
	// are left out so that relocating the root does not change the fingerprint.
	RelativePath = newStrategy(domain.NormalizeRelativePath, false, func(f domain.FileSnapshot) (string, bool) {
		if f.RelativePath == "" {
			return "", false
		}
		return filepath.ToSlash(f.RelativePath), true
	})

	// NameOnly keys entries by base name.
	NameOnly = newStrategy(domain.NormalizeNameOnly, false, func(f domain.FileSnapshot) (string, bool) {
		return filepath.Base(f.AbsolutePath), true
	})

	// IgnoreMissing keys entries by absolute path and treats absent roots as empty.
	IgnoreMissing = newStrategy(domain.NormalizeIgnoreMissing, true, func(f domain.FileSnapshot) (string, bool) {
		return f.AbsolutePath, true
	})
)

// Normalization returns the normalization implemented by s.
func (s *Strategy) Normalization() domain.Normalization {
	return s.normalization
}

// Empty returns the strategy's well-known empty fingerprint.
func (s *Strategy) Empty() *domain.FileCollectionFingerprint {
	return s.empty
}

// Fingerprint normalizes and digests snapshot. The result is independent of
// the order in which roots and files appear in the snapshot.
func (s *Strategy) Fingerprint(snapshot domain.FileSystemSnapshot) (*domain.FileCollectionFingerprint, error) {
	var entries []domain.FingerprintEntry
	for _, root := range snapshot.Roots {
		if root.Type == domain.FileTypeMissing {
			if s.ignoreMissing {
				continue
			}
			return nil, zerr.With(zerr.With(domain.ErrFingerprintFailed, "path", root.Root),
				"reason", domain.ErrInputNotFound.Error())
		}
		for _, f := range root.Files {
			if f.Type == domain.FileTypeMissing {
				continue
			}
			key, ok := s.key(f)
			if !ok {
				continue
			}
			entries = append(entries, domain.FingerprintEntry{Path: key, Type: f.Type, Digest: f.ContentHash})
		}
	}

	if len(entries) == 0 {
		return s.empty, nil
	}

	domain.SortFingerprintEntries(entries)
	return &domain.FileCollectionFingerprint{
		Strategy: s.normalization,
		Entries:  entries,
		RootHash: rootHash(entries),
	}, nil
}

func rootHash(entries []domain.FingerprintEntry) domain.Hash {
	hasher := xxhash.New()
	var buf [9]byte
	for _, e := range entries {
		_, _ = hasher.WriteString(e.Path)
		_, _ = hasher.Write([]byte{0})
		buf[0] = byte(e.Type)
		binary.LittleEndian.PutUint64(buf[1:], uint64(e.Digest))
		_, _ = hasher.Write(buf[:])
	}
	return domain.Hash(hasher.Sum64())
}

// Registry resolves normalizations to strategies.
type Registry struct {
	strategies map[domain.Normalization]*Strategy
}

// NewRegistry creates a Registry holding the built-in strategies.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[domain.Normalization]*Strategy)}
	for _, s := range []*Strategy{AbsolutePath, RelativePath, NameOnly, IgnoreMissing} {
		r.strategies[s.normalization] = s
	}
	return r
}

// For returns the strategy for n, falling back to absolute-path for unknown values.
func (r *Registry) For(n domain.Normalization) *Strategy {
	if s, ok := r.strategies[n]; ok {
		return s
	}
	return AbsolutePath
}

// Fingerprint implements ports.Fingerprinter.
func (r *Registry) Fingerprint(n domain.Normalization, snapshot domain.FileSystemSnapshot) (*domain.FileCollectionFingerprint, error) {
	return r.For(n).Fingerprint(snapshot)
}

// Empty implements ports.Fingerprinter.
func (r *Registry) Empty(n domain.Normalization) *domain.FileCollectionFingerprint {
	return r.For(n).Empty()
}
