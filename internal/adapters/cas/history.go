// Package cas implements the file-backed execution history and build cache.
package cas

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.HistoryStore = (*HistoryStore)(nil)

// HistoryStore implements ports.HistoryStore using a file-per-unit strategy.
type HistoryStore struct {
	dir string
}

// NewHistoryStore creates a HistoryStore keeping its files in dir.
func NewHistoryStore(dir string) *HistoryStore {
	return &HistoryStore{dir: filepath.Clean(dir)}
}

// Load retrieves the state recorded for identity.
func (s *HistoryStore) Load(_ context.Context, identity string) (*domain.AfterPreviousExecutionState, error) {
	filename := s.filename(identity)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "identity", identity)
	}

	var state domain.AfterExecutionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "identity", identity)
	}

	return &state, nil
}

// Save records state as the latest execution of identity. The file is
// replaced atomically, so a concurrent Load sees either version.
func (s *HistoryStore) Save(_ context.Context, identity string, state *domain.AfterExecutionState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error()), "identity", identity)
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	tmp, err := os.CreateTemp(s.dir, ".history-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Already renamed on success

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Rename(tmp.Name(), s.filename(identity)); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

// Remove deletes the state recorded for identity.
func (s *HistoryStore) Remove(_ context.Context, identity string) error {
	if err := os.Remove(s.filename(identity)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreRemoveFailed.Error()), "identity", identity)
	}
	return nil
}

// Close implements ports.HistoryStore. The store holds no open resources.
func (s *HistoryStore) Close() error {
	return nil
}

func (s *HistoryStore) filename(identity string) string {
	hash := sha256.Sum256([]byte(identity))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])+".json")
}
