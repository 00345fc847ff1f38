package ports

import (
	"context"

	"go.trai.ch/avert/internal/core/domain"
)

// BuildCache stores the outputs of cacheable units under their cache key.
//
//go:generate go run go.uber.org/mock/mockgen -source=build_cache.go -destination=mocks/mock_build_cache.go -package=mocks
type BuildCache interface {
	// Load restores the outputs recorded for key into the declared roots of each
	// output property, replacing whatever the roots held. It reports false on a
	// cache miss.
	Load(ctx context.Context, key domain.Hash, outputs map[string][]string) (bool, error)

	// Store records the files of each output snapshot under key.
	Store(ctx context.Context, key domain.Hash, outputs map[string]domain.FileSystemSnapshot) error
}
