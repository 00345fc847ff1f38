package ports

import (
	"context"

	"go.trai.ch/avert/internal/core/domain"
)

// HistoryStore persists the state of each unit's last successful execution.
//
//go:generate go run go.uber.org/mock/mockgen -source=history_store.go -destination=mocks/mock_history_store.go -package=mocks
type HistoryStore interface {
	// Load retrieves the previous state of a unit.
	// Returns nil, nil if no history is recorded.
	Load(ctx context.Context, identity string) (*domain.AfterPreviousExecutionState, error)

	// Save records state as the unit's latest execution.
	Save(ctx context.Context, identity string, state *domain.AfterExecutionState) error

	// Remove deletes the history of a unit. Removing unknown history is not an error.
	Remove(ctx context.Context, identity string) error

	// Close releases the store's resources.
	Close() error
}
