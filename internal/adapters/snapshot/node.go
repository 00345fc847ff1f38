package snapshot

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/avert/internal/core/ports"
)

// NodeID is the unique identifier for the value snapshotter Graft node.
const NodeID graft.ID = "adapter.snapshot"

func init() {
	graft.Register(graft.Node[ports.ValueSnapshotter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ValueSnapshotter, error) {
			return New(), nil
		},
	})
}
