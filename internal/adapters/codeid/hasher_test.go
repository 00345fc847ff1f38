package codeid_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/avert/internal/adapters/codeid"
	"go.trai.ch/avert/internal/core/domain"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestHasher_Stable(t *testing.T) {
	h := codeid.NewHasher()
	d := domain.ImplementationDescriptor{Identity: "MyWorkClass", Context: []string{"go1.25"}}

	first, err := h.Hash(d)
	require.NoError(t, err)
	second, err := codeid.NewHasher().Hash(d)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.False(t, first.IsZero())
}

func TestHasher_DetectsChanges(t *testing.T) {
	dir := t.TempDir()
	script := writeSource(t, dir, "build.sh", "go build ./...")
	h := codeid.NewHasher()

	base := domain.ImplementationDescriptor{Identity: "compile", Context: []string{"a", "b"}, Sources: []string{script}}
	baseHash, err := h.Hash(base)
	require.NoError(t, err)

	variants := map[string]domain.ImplementationDescriptor{
		"identity":      {Identity: "link", Context: base.Context, Sources: base.Sources},
		"context":       {Identity: "compile", Context: []string{"a", "c"}, Sources: base.Sources},
		"context order": {Identity: "compile", Context: []string{"b", "a"}, Sources: base.Sources},
		"no sources":    {Identity: "compile", Context: base.Context},
	}
	for name, d := range variants {
		t.Run(name, func(t *testing.T) {
			got, err := h.Hash(d)
			require.NoError(t, err)
			assert.NotEqual(t, baseHash, got)
		})
	}

	t.Run("source content", func(t *testing.T) {
		writeSource(t, dir, "build.sh", "go build -trimpath ./...")
		got, err := h.Hash(base)
		require.NoError(t, err)
		assert.NotEqual(t, baseHash, got)
	})
}

func TestHasher_CachesSourceDigests(t *testing.T) {
	dir := t.TempDir()
	d := domain.ImplementationDescriptor{
		Identity: "compile",
		Sources:  []string{writeSource(t, dir, "a.sh", "a"), writeSource(t, dir, "b.sh", "b")},
	}
	h := codeid.NewHasher()

	first, err := h.Hash(d)
	require.NoError(t, err)
	second, err := h.Hash(d)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, h.CachedSources())
}

func TestHasher_MissingSource(t *testing.T) {
	h := codeid.NewHasher()
	_, err := h.Hash(domain.ImplementationDescriptor{
		Identity: "compile",
		Sources:  []string{filepath.Join(t.TempDir(), "missing.sh")},
	})

	require.ErrorContains(t, err, domain.ErrHashingFailed.Error())
}
