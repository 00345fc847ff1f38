package execution

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/avert/internal/core/ports"
)

// Dependencies are the collaborators of a Pipeline.
type Dependencies struct {
	Capturer      StateCapturer
	Fingerprinter ports.Fingerprinter
	History       ports.HistoryStore
	// Cache is optional; without it no unit is restored from or stored in the build cache.
	Cache     ports.BuildCache
	Telemetry ports.Telemetry
	Metrics   ports.Metrics
	Logger    ports.Logger

	// Clock defaults to time.Now.
	Clock Clock
	// NewExecutionID defaults to random UUIDs.
	NewExecutionID func() string
}

// Pipeline runs units of work through the chain of steps
//
//	Report -> StoreState -> LoadState -> CaptureState -> CacheKey -> SkipUpToDate -> BuildCache -> Execute
//
// A Pipeline is safe for concurrent use; every invocation owns its Context.
type Pipeline struct {
	root  Step
	newID func() string
}

// NewPipeline assembles the default chain of steps.
func NewPipeline(deps Dependencies) *Pipeline {
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	var step Step = NewTimingStep(NewExecuteStep(deps.Fingerprinter, now), "execute", deps.Metrics, now)
	step = NewBuildCacheStep(step, deps.Cache, deps.Fingerprinter, deps.Logger, now)
	step = NewSkipUpToDateStep(step, now)
	step = NewCacheKeyStep(step)
	step = NewCaptureStateStep(step, deps.Capturer, deps.Metrics, now)
	step = NewLoadStateStep(step, deps.History, deps.Logger)
	step = NewStoreStateStep(step, deps.History)
	step = NewReportStep(step, deps.Telemetry, deps.Metrics, deps.Logger, now)

	return NewPipelineWithRoot(step, deps.NewExecutionID)
}

// NewPipelineWithRoot creates a Pipeline around a custom chain of steps.
func NewPipelineWithRoot(root Step, newID func() string) *Pipeline {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Pipeline{root: root, newID: newID}
}

// Execute runs work through the pipeline. The returned Result is terminal.
func (p *Pipeline) Execute(ctx context.Context, work ports.UnitOfWork, opts Options) *Result {
	ec := &Context{
		Work:        work,
		ExecutionID: p.newID(),
		Options:     opts,
	}

	lifecycle, err := NewLifecycle()
	if err != nil {
		res := failed(ec, err)
		res.Phase = PhaseFailed
		return res
	}
	ec.lifecycle = lifecycle

	res := p.root.Execute(ctx, ec)
	lifecycle.Finish(res.Outcome)
	res.Phase = lifecycle.Phase()
	return res
}
