// Package storage opens the configured history store and the build cache of a project.
package storage

import (
	"path/filepath"

	"go.trai.ch/avert/internal/adapters/cas"
	"go.trai.ch/avert/internal/adapters/sqlite"
	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StorageProvider = (*Provider)(nil)

// Provider implements ports.StorageProvider over the .avert directory of a project root.
type Provider struct{}

// NewProvider creates a new Provider.
func NewProvider() *Provider {
	return &Provider{}
}

// OpenHistory opens the history store selected by backend. An empty backend
// selects the JSON store.
func (p *Provider) OpenHistory(root string, backend domain.HistoryBackend) (ports.HistoryStore, error) {
	switch backend {
	case domain.HistoryJSON, "":
		return cas.NewHistoryStore(filepath.Join(root, domain.DefaultHistoryPath())), nil
	case domain.HistorySQLite:
		return sqlite.NewHistoryStore(filepath.Join(root, domain.DefaultHistoryDBPath()))
	default:
		return nil, zerr.With(domain.ErrInvalidHistoryBackend, "backend", string(backend))
	}
}

// OpenCache opens the build cache of root.
func (p *Provider) OpenCache(root string) (ports.BuildCache, error) {
	return cas.NewBuildCache(filepath.Join(root, domain.DefaultCachePath())), nil
}
