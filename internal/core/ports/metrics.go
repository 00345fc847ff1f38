package ports

import (
	"time"

	"go.trai.ch/avert/internal/core/domain"
)

// Metrics records pipeline measurements.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveStage records the duration of a pipeline stage.
	ObserveStage(stage string, d time.Duration)
	// RecordOutcome counts a unit's terminal outcome.
	RecordOutcome(outcome domain.Outcome)
	// WriteTextfile writes the current metrics in the Prometheus text format.
	WriteTextfile(path string) error
}
