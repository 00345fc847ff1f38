package ports

import "go.trai.ch/avert/internal/core/domain"

// Fingerprinter fingerprints file system snapshots under a normalization.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint normalizes snapshot and digests it. The result for a snapshot
	// without entries is the normalization's Empty fingerprint.
	Fingerprint(normalization domain.Normalization, snapshot domain.FileSystemSnapshot) (*domain.FileCollectionFingerprint, error)

	// Empty returns the well-known empty fingerprint of the normalization.
	Empty(normalization domain.Normalization) *domain.FileCollectionFingerprint
}
