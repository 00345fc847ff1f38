package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/avert/internal/adapters/fs"
)

func TestVerifier_MissingOutputs(t *testing.T) {
	tmpDir := t.TempDir()
	verifier := fs.NewVerifier()

	writeFile(t, filepath.Join(tmpDir, "out1.txt"), "content")
	writeFile(t, filepath.Join(tmpDir, "out2.txt"), "content")

	missing, err := verifier.MissingOutputs(tmpDir, []string{"out1.txt", "out2.txt"})
	require.NoError(t, err)
	assert.Empty(t, missing)

	missing, err = verifier.MissingOutputs(tmpDir, []string{"out1.txt", "missing.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"missing.txt"}, missing)
}
