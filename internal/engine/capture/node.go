package capture

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/avert/internal/adapters/codeid"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/avert/internal/adapters/snapshot" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/avert/internal/engine/fingerprint"
)

// NodeID is the unique identifier for the state builder Graft node.
const NodeID graft.ID = "engine.capture"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{snapshot.NodeID, codeid.NodeID, fingerprint.NodeID},
		Run: func(ctx context.Context) (*Builder, error) {
			snapshotter, err := graft.Dep[ports.ValueSnapshotter](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.ImplementationHasher](ctx)
			if err != nil {
				return nil, err
			}

			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(snapshotter, hasher, fingerprinter), nil
		},
	})
}
