package execution

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/avert/internal/core/domain"
)

// CacheKey derives the build cache key of a captured state from its
// implementations, input values, input file fingerprints and output property
// names. Output contents do not contribute.
func CacheKey(state *domain.BeforeExecutionState) domain.Hash {
	h := xxhash.New()
	var buf [8]byte

	writeString := func(s string) {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
		_, _ = h.Write(buf[:])
		_, _ = h.WriteString(s)
	}
	writeHash := func(v domain.Hash) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}

	writeString(state.Implementation.Identity)
	writeHash(state.Implementation.ContentHash)
	for _, impl := range state.AdditionalImplementations {
		writeString(impl.Identity)
		writeHash(impl.ContentHash)
	}

	_, _ = h.Write([]byte{'i'})
	for name, value := range state.InputProperties.All() {
		writeString(name)
		writeHash(domain.Hash(xxhash.Sum64(domain.EncodeValueSnapshot(value))))
	}
	_, _ = h.Write([]byte{'f'})
	for name, fp := range state.InputFileProperties.All() {
		writeString(name)
		if fp != nil {
			writeHash(fp.RootHash)
		}
	}
	_, _ = h.Write([]byte{'o'})
	for _, name := range state.OutputFileProperties.Names() {
		writeString(name)
	}

	return domain.Hash(h.Sum64())
}
