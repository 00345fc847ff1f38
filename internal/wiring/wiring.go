// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/avert/internal/adapters/codeid"
	_ "go.trai.ch/avert/internal/adapters/config"
	_ "go.trai.ch/avert/internal/adapters/fs"
	_ "go.trai.ch/avert/internal/adapters/logger"
	_ "go.trai.ch/avert/internal/adapters/metrics"
	_ "go.trai.ch/avert/internal/adapters/shell"
	_ "go.trai.ch/avert/internal/adapters/snapshot"
	_ "go.trai.ch/avert/internal/adapters/storage"
	_ "go.trai.ch/avert/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/avert/internal/app"
	_ "go.trai.ch/avert/internal/engine/capture"
	_ "go.trai.ch/avert/internal/engine/fingerprint"
	_ "go.trai.ch/avert/internal/engine/scheduler"
	_ "go.trai.ch/avert/internal/engine/work"
)
