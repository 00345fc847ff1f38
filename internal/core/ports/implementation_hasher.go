package ports

import "go.trai.ch/avert/internal/core/domain"

// ImplementationHasher maps an implementation descriptor to a stable content hash.
// Implementations must be safe for concurrent use.
//
//go:generate go run go.uber.org/mock/mockgen -source=implementation_hasher.go -destination=mocks/mock_implementation_hasher.go -package=mocks
type ImplementationHasher interface {
	Hash(descriptor domain.ImplementationDescriptor) (domain.Hash, error)
}
