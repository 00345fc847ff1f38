package ports

import "go.trai.ch/avert/internal/core/domain"

// StorageProvider opens the per-project history store and build cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks
type StorageProvider interface {
	OpenHistory(root string, backend domain.HistoryBackend) (HistoryStore, error)
	OpenCache(root string) (BuildCache, error)
}
