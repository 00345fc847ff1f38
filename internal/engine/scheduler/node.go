package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/avert/internal/engine/work"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{work.NodeID},
		Run: func(ctx context.Context) (*Scheduler, error) {
			factory, err := graft.Dep[*work.Factory](ctx)
			if err != nil {
				return nil, err
			}
			return NewScheduler(factory), nil
		},
	})
}
