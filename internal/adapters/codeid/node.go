package codeid

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/avert/internal/core/ports"
)

// NodeID is the unique identifier for the implementation hasher Graft node.
const NodeID graft.ID = "adapter.codeid"

func init() {
	graft.Register(graft.Node[ports.ImplementationHasher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ImplementationHasher, error) {
			return NewHasher(), nil
		},
	})
}
