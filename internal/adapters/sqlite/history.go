// Package sqlite implements the execution history on a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/zerr"
	_ "modernc.org/sqlite" // Registers the "sqlite" database/sql driver.
)

var _ ports.HistoryStore = (*HistoryStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS executions (
	identity TEXT PRIMARY KEY,
	execution_id TEXT NOT NULL,
	outcome TEXT NOT NULL,
	recorded_at INTEGER NOT NULL,
	state BLOB NOT NULL
);
`

// HistoryStore implements ports.HistoryStore with one row per unit.
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore opens the database at path, creating it and its schema when needed.
// Use ":memory:" for an in-memory database.
func NewHistoryStore(path string) (*HistoryStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
			return nil, zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", path)
	}
	// A single connection serializes writers and keeps an in-memory database alive.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", path)
	}

	return &HistoryStore{db: db}, nil
}

// Load retrieves the state recorded for identity.
func (s *HistoryStore) Load(ctx context.Context, identity string) (*domain.AfterPreviousExecutionState, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT state FROM executions WHERE identity = ?", identity).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "identity", identity)
	}

	var state domain.AfterExecutionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "identity", identity)
	}
	return &state, nil
}

// Save records state as the latest execution of identity.
func (s *HistoryStore) Save(ctx context.Context, identity string, state *domain.AfterExecutionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error()), "identity", identity)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO executions (identity, execution_id, outcome, recorded_at, state)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET
			execution_id = excluded.execution_id,
			outcome = excluded.outcome,
			recorded_at = excluded.recorded_at,
			state = excluded.state`,
		identity, state.ExecutionID, string(state.Outcome), state.Timestamp.UnixNano(), data,
	)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "identity", identity)
	}
	return nil
}

// Remove deletes the state recorded for identity.
func (s *HistoryStore) Remove(ctx context.Context, identity string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM executions WHERE identity = ?", identity); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreRemoveFailed.Error()), "identity", identity)
	}
	return nil
}

// Close closes the database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
