package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/avert/internal/adapters/sqlite"
	"go.trai.ch/avert/internal/core/domain"
)

func state(id string) *domain.AfterExecutionState {
	return &domain.AfterExecutionState{
		ExecutionID:    id,
		Outcome:        domain.OutcomeExecuted,
		Timestamp:      time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC),
		Implementation: domain.ImplementationSnapshot{Identity: "link", ContentHash: 11},
		InputProperties: domain.NewProperties(map[string]domain.ValueSnapshot{
			"flags": &domain.ListSnapshot{Elements: []domain.ValueSnapshot{&domain.StringSnapshot{Value: "-s"}}},
		}),
	}
}

func TestHistoryStore_SaveLoadReplace(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.NewHistoryStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	got, err := store.Load(ctx, "link")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Save(ctx, "link", state("exec-1")))
	require.NoError(t, store.Save(ctx, "link", state("exec-2")))

	got, err = store.Load(ctx, "link")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "exec-2", got.ExecutionID)
	assert.Equal(t, domain.ImplementationSnapshot{Identity: "link", ContentHash: 11}, got.Implementation)

	flags, ok := got.InputProperties.Get("flags")
	require.True(t, ok)
	assert.True(t, flags.Equal(state("").InputProperties.Map()["flags"]))
}

func TestHistoryStore_Remove(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.NewHistoryStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Save(ctx, "link", state("exec-1")))
	require.NoError(t, store.Remove(ctx, "link"))
	require.NoError(t, store.Remove(ctx, "link"))

	got, err := store.Load(ctx, "link")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHistoryStore_PersistsOnDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".avert", "history.db")

	store, err := sqlite.NewHistoryStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "link", state("exec-1")))
	require.NoError(t, store.Close())

	reopened, err := sqlite.NewHistoryStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Load(ctx, "link")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "exec-1", got.ExecutionID)
}
