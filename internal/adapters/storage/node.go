package storage

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/avert/internal/core/ports"
)

// NodeID is the unique identifier for the storage provider Graft node.
const NodeID graft.ID = "adapter.storage"

func init() {
	graft.Register(graft.Node[ports.StorageProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StorageProvider, error) {
			return NewProvider(), nil
		},
	})
}
