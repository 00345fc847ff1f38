// Package codeid hashes the implementation of units of work.
package codeid

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ImplementationHasher = (*Hasher)(nil)

// sourceKey identifies a version of a source file. A file rewritten with the
// same size within the file system's timestamp resolution keeps its key.
type sourceKey struct {
	path    string
	size    int64
	modTime time.Time
}

// Hasher hashes implementation descriptors. Source digests are cached per
// file version, so repeated hashing of unchanged sources does not re-read them.
type Hasher struct {
	sources sync.Map // sourceKey -> uint64
}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash implements ports.ImplementationHasher. The hash covers the identity,
// every context entry in order and the path and content of every source.
func (h *Hasher) Hash(descriptor domain.ImplementationDescriptor) (domain.Hash, error) {
	digest := xxhash.New()
	writeField(digest, descriptor.Identity)

	_, _ = digest.Write([]byte{'c'})
	for _, entry := range descriptor.Context {
		writeField(digest, entry)
	}

	_, _ = digest.Write([]byte{'s'})
	var buf [8]byte
	for _, source := range descriptor.Sources {
		sum, err := h.hashSource(source)
		if err != nil {
			return 0, zerr.With(zerr.With(err, "identity", descriptor.Identity), "path", source)
		}
		writeField(digest, filepath.ToSlash(source))
		binary.LittleEndian.PutUint64(buf[:], sum)
		_, _ = digest.Write(buf[:])
	}

	return domain.Hash(digest.Sum64()), nil
}

func writeField(digest *xxhash.Digest, s string) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
	_, _ = digest.Write(buf[:])
	_, _ = digest.WriteString(s)
}

func (h *Hasher) hashSource(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrHashingFailed.Error())
	}
	if info.IsDir() {
		return 0, zerr.With(domain.ErrHashingFailed, "reason", "source is a directory")
	}

	key := sourceKey{path: path, size: info.Size(), modTime: info.ModTime()}
	if sum, ok := h.sources.Load(key); ok {
		return sum.(uint64), nil
	}

	f, err := os.Open(path) //nolint:gosec // Path is declared by the project configuration
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrHashingFailed.Error())
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return 0, zerr.Wrap(err, domain.ErrHashingFailed.Error())
	}

	sum := digest.Sum64()
	h.sources.Store(key, sum)
	return sum, nil
}
