package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/avert/internal/core/domain"
)

func TestAfterExecutionState_JSON(t *testing.T) {
	outputs := &domain.FileCollectionFingerprint{
		Strategy: domain.NormalizeIgnoreMissing,
		Entries:  []domain.FingerprintEntry{{Path: "/out/a.txt", Type: domain.FileTypeRegular, Digest: 42}},
		RootHash: 7,
	}
	before := &domain.BeforeExecutionState{
		Implementation: domain.ImplementationSnapshot{Identity: "MyWorkClass", ContentHash: 0xabc},
		AdditionalImplementations: []domain.ImplementationSnapshot{
			{Identity: "action:post.sh", ContentHash: 0xdef},
		},
		InputProperties: domain.NewProperties(map[string]domain.ValueSnapshot{
			"inputString": &domain.StringSnapshot{Value: "myValue"},
			"level":       &domain.IntSnapshot{Value: 3},
		}),
		InputFileProperties: domain.NewProperties(map[string]*domain.FileCollectionFingerprint{
			"sources": {Strategy: domain.NormalizeRelativePath},
		}),
	}
	state := domain.NewAfterExecutionState(
		"exec-1",
		domain.OutcomeExecuted,
		before,
		domain.NewProperties(map[string]*domain.FileCollectionFingerprint{"outputDir": outputs}),
		0x1234,
		time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	)

	data, err := json.Marshal(state)
	require.NoError(t, err)

	var decoded domain.AfterPreviousExecutionState
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "exec-1", decoded.ExecutionID)
	assert.Equal(t, domain.OutcomeExecuted, decoded.Outcome)
	assert.Equal(t, domain.Hash(0x1234), decoded.CacheKey)
	assert.True(t, decoded.Implementation.Equal(before.Implementation))
	assert.True(t, domain.EqualImplementations(before.AdditionalImplementations, decoded.AdditionalImplementations))
	assert.Equal(t, []string{"inputString", "level"}, decoded.InputProperties.Names())

	value, ok := decoded.InputProperties.Get("inputString")
	require.True(t, ok)
	assert.True(t, value.Equal(&domain.StringSnapshot{Value: "myValue"}))

	out, ok := decoded.OutputFileProperties.Get("outputDir")
	require.True(t, ok)
	assert.True(t, out.Equal(outputs))
	assert.Equal(t, domain.Hash(7), out.RootHash)
}

func TestFileCollectionFingerprint_Lookup(t *testing.T) {
	entries := []domain.FingerprintEntry{
		{Path: "b", Digest: 2},
		{Path: "a", Digest: 1},
		{Path: "c", Digest: 3},
	}
	domain.SortFingerprintEntries(entries)
	fp := &domain.FileCollectionFingerprint{Strategy: domain.NormalizeAbsolutePath, Entries: entries}

	entry, ok := fp.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, domain.Hash(2), entry.Digest)
	assert.False(t, fp.Contains("d"))

	var missing *domain.FileCollectionFingerprint
	assert.True(t, missing.IsEmpty())
	assert.True(t, missing.Equal(&domain.FileCollectionFingerprint{}))
	assert.False(t, missing.Contains("a"))
}

func TestHash_Text(t *testing.T) {
	h := domain.Hash(0xdeadbeef)
	assert.Equal(t, "00000000deadbeef", h.String())

	var parsed domain.Hash
	require.NoError(t, parsed.UnmarshalText([]byte(h.String())))
	assert.Equal(t, h, parsed)

	_, err := domain.ParseHash("not-hex")
	require.Error(t, err)
}

func TestParseNormalization(t *testing.T) {
	n, ok := domain.ParseNormalization("")
	require.True(t, ok)
	assert.Equal(t, domain.NormalizeAbsolutePath, n)

	n, ok = domain.ParseNormalization("Name-Only")
	require.True(t, ok)
	assert.Equal(t, domain.NormalizeNameOnly, n)

	_, ok = domain.ParseNormalization("sha1")
	assert.False(t, ok)
}
