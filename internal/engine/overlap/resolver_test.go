package overlap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/engine/fingerprint"
	"go.trai.ch/avert/internal/engine/overlap"
)

func outputDir(files ...domain.FileSnapshot) domain.FileSystemSnapshot {
	all := append([]domain.FileSnapshot{{AbsolutePath: "/ws/out", Type: domain.FileTypeDirectory}}, files...)
	return domain.FileSystemSnapshot{Roots: []domain.LocationSnapshot{{
		Root:  "/ws/out",
		Type:  domain.FileTypeDirectory,
		Files: all,
	}}}
}

func file(name string, hash domain.Hash) domain.FileSnapshot {
	return domain.FileSnapshot{
		AbsolutePath: "/ws/out/" + name,
		RelativePath: name,
		Type:         domain.FileTypeRegular,
		ContentHash:  hash,
	}
}

func fp(t *testing.T, s domain.FileSystemSnapshot) *domain.FileCollectionFingerprint {
	t.Helper()
	f, err := fingerprint.IgnoreMissing.Fingerprint(s)
	require.NoError(t, err)
	return f
}

func TestBeforeExecution_NotOverlapping(t *testing.T) {
	current := outputDir(file("mine.txt", 1), file("theirs.txt", 2))

	got := overlap.BeforeExecution(current, false, nil)

	assert.Equal(t, current, got)
	assert.True(t, fp(t, got).Equal(fp(t, current)))
}

func TestBeforeExecution_OverlappingWithoutPrevious(t *testing.T) {
	current := outputDir(file("mine.txt", 1), file("theirs.txt", 2))

	got := overlap.BeforeExecution(current, true, nil)

	assert.Same(t, fingerprint.IgnoreMissing.Empty(), fp(t, got))
}

func TestBeforeExecution_OverlappingFiltersForeignEntries(t *testing.T) {
	previous := fp(t, outputDir(file("mine.txt", 1)))
	current := outputDir(file("mine.txt", 5), file("theirs.txt", 2))

	got := fp(t, overlap.BeforeExecution(current, true, previous))

	assert.True(t, got.Contains("/ws/out"))
	assert.True(t, got.Contains("/ws/out/mine.txt"))
	assert.False(t, got.Contains("/ws/out/theirs.txt"))

	entry, ok := got.Lookup("/ws/out/mine.txt")
	require.True(t, ok)
	assert.Equal(t, domain.Hash(5), entry.Digest, "kept entries carry their current content")
}

func TestAfterExecution_Overlapping(t *testing.T) {
	previous := fp(t, outputDir(file("stale.txt", 9)))
	before := fp(t, outputDir(file("theirs.txt", 2), file("changed.txt", 3), file("stale.txt", 9)))
	after := outputDir(
		file("theirs.txt", 2),
		file("changed.txt", 4),
		file("stale.txt", 9),
		file("new.txt", 5),
	)

	got := fp(t, overlap.AfterExecution(after, true, before, previous))

	assert.False(t, got.Contains("/ws/out/theirs.txt"), "untouched foreign file is not owned")
	assert.True(t, got.Contains("/ws/out/changed.txt"))
	assert.True(t, got.Contains("/ws/out/stale.txt"), "previously owned file stays owned")
	assert.True(t, got.Contains("/ws/out/new.txt"))
}

func TestAfterExecution_NotOverlapping(t *testing.T) {
	after := outputDir(file("a.txt", 1))
	assert.Equal(t, after, overlap.AfterExecution(after, false, nil, nil))
}
