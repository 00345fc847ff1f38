package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/avert/internal/core/domain"
)

func sampleSnapshot() domain.ValueSnapshot {
	return &domain.StructSnapshot{
		Type: "config.Options",
		Fields: []domain.FieldSnapshot{
			{Name: "Name", Value: &domain.StringSnapshot{Value: "release"}},
			{Name: "Level", Value: &domain.IntSnapshot{Value: -3}},
			{Name: "Jobs", Value: &domain.UintSnapshot{Value: 8}},
			{Name: "Ratio", Value: &domain.FloatSnapshot{Value: math.Pi}},
			{Name: "Debug", Value: &domain.BoolSnapshot{Value: true}},
			{Name: "Seed", Value: &domain.BytesSnapshot{Value: []byte{0, 1, 2}}},
			{Name: "Tags", Value: &domain.ListSnapshot{Elements: []domain.ValueSnapshot{
				&domain.StringSnapshot{Value: "a"}, domain.Null,
			}}},
			{Name: "Env", Value: domain.NewMapSnapshot([]domain.MapEntry{
				{Key: &domain.StringSnapshot{Value: "B"}, Value: &domain.StringSnapshot{Value: "2"}},
				{Key: &domain.StringSnapshot{Value: "A"}, Value: &domain.StringSnapshot{Value: "1"}},
			})},
			{Name: "When", Value: &domain.CustomSnapshot{Type: "time.Time", Value: &domain.StringSnapshot{Value: "2024-01-01T00:00:00Z"}}},
		},
	}
}

func TestDecodeValueSnapshot_RoundTrip(t *testing.T) {
	original := sampleSnapshot()

	decoded, err := domain.DecodeValueSnapshot(domain.EncodeValueSnapshot(original))
	require.NoError(t, err)

	assert.True(t, original.Equal(decoded))
	assert.True(t, decoded.Equal(original))
	assert.Equal(t, domain.EncodeValueSnapshot(original), domain.EncodeValueSnapshot(decoded))
}

func TestDecodeValueSnapshot_Malformed(t *testing.T) {
	encoded := domain.EncodeValueSnapshot(sampleSnapshot())

	_, err := domain.DecodeValueSnapshot(encoded[:len(encoded)-3])
	require.Error(t, err)

	_, err = domain.DecodeValueSnapshot(append(encoded, 0))
	require.Error(t, err)

	_, err = domain.DecodeValueSnapshot([]byte{0xff})
	require.Error(t, err)
}

func TestMapSnapshot_SortsKeys(t *testing.T) {
	a := domain.NewMapSnapshot([]domain.MapEntry{
		{Key: &domain.StringSnapshot{Value: "x"}, Value: &domain.IntSnapshot{Value: 1}},
		{Key: &domain.StringSnapshot{Value: "y"}, Value: &domain.IntSnapshot{Value: 2}},
	})
	b := domain.NewMapSnapshot([]domain.MapEntry{
		{Key: &domain.StringSnapshot{Value: "y"}, Value: &domain.IntSnapshot{Value: 2}},
		{Key: &domain.StringSnapshot{Value: "x"}, Value: &domain.IntSnapshot{Value: 1}},
	})

	assert.True(t, a.Equal(b))
}

func TestMapSnapshot_BreaksKeyTiesByValue(t *testing.T) {
	a := domain.NewMapSnapshot([]domain.MapEntry{
		{Key: &domain.IntSnapshot{Value: 1}, Value: &domain.StringSnapshot{Value: "b"}},
		{Key: &domain.IntSnapshot{Value: 1}, Value: &domain.StringSnapshot{Value: "a"}},
	})
	b := domain.NewMapSnapshot([]domain.MapEntry{
		{Key: &domain.IntSnapshot{Value: 1}, Value: &domain.StringSnapshot{Value: "a"}},
		{Key: &domain.IntSnapshot{Value: 1}, Value: &domain.StringSnapshot{Value: "b"}},
	})

	assert.True(t, a.Equal(b))
	assert.Equal(t, domain.EncodeValueSnapshot(a), domain.EncodeValueSnapshot(b))
}

func TestValueSnapshot_KindMismatch(t *testing.T) {
	assert.False(t, (&domain.IntSnapshot{Value: 1}).Equal(&domain.UintSnapshot{Value: 1}))
	assert.False(t, domain.Null.Equal(&domain.StringSnapshot{}))
	assert.False(t, domain.EqualValueSnapshots(nil, domain.Null))
	assert.True(t, domain.EqualValueSnapshots(nil, nil))
}

func TestPersistedValue_JSON(t *testing.T) {
	data, err := json.Marshal(domain.PersistedValue{ValueSnapshot: sampleSnapshot()})
	require.NoError(t, err)

	var decoded domain.PersistedValue
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, sampleSnapshot().Equal(decoded.ValueSnapshot))
}
