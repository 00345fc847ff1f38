package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/avert/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/avert/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/avert/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/avert/internal/adapters/metrics"            //nolint:depguard // Wired in app layer
	"go.trai.ch/avert/internal/adapters/storage"            //nolint:depguard // Wired in app layer
	"go.trai.ch/avert/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/avert/internal/engine/capture"
	"go.trai.ch/avert/internal/engine/fingerprint"
	"go.trai.ch/avert/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			storage.NodeID,
			capture.NodeID,
			fingerprint.NodeID,
			progrock.NodeID,
			metrics.NodeID,
			logger.NodeID,
			scheduler.NodeID,
			fs.ResolverNodeID,
			fs.VerifierNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

//nolint:cyclop // dependency resolution only
func runAppNode(ctx context.Context) (*App, error) {
	var deps Dependencies
	var err error

	if deps.ConfigLoader, err = graft.Dep[ports.ConfigLoader](ctx); err != nil {
		return nil, err
	}
	if deps.Storage, err = graft.Dep[ports.StorageProvider](ctx); err != nil {
		return nil, err
	}
	if deps.Capturer, err = graft.Dep[*capture.Builder](ctx); err != nil {
		return nil, err
	}
	if deps.Fingerprinter, err = graft.Dep[ports.Fingerprinter](ctx); err != nil {
		return nil, err
	}
	if deps.Telemetry, err = graft.Dep[ports.Telemetry](ctx); err != nil {
		return nil, err
	}
	if deps.Metrics, err = graft.Dep[ports.Metrics](ctx); err != nil {
		return nil, err
	}
	if deps.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	if deps.Scheduler, err = graft.Dep[*scheduler.Scheduler](ctx); err != nil {
		return nil, err
	}
	if deps.Resolver, err = graft.Dep[ports.PathResolver](ctx); err != nil {
		return nil, err
	}
	if deps.Verifier, err = graft.Dep[*fs.Verifier](ctx); err != nil {
		return nil, err
	}

	return New(deps), nil
}
