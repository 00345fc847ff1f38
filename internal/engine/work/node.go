package work

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/avert/internal/adapters/fs"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/avert/internal/adapters/shell" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/avert/internal/core/ports"
)

// NodeID is the unique identifier for the unit of work factory Graft node.
const NodeID graft.ID = "engine.work"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.SnapshotterNodeID, fs.ResolverNodeID, shell.NodeID},
		Run: func(ctx context.Context) (*Factory, error) {
			snapshotter, err := graft.Dep[ports.FileSystemSnapshotter](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.PathResolver](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			return NewFactory(snapshotter, resolver, executor), nil
		},
	})
}
