package execution

import (
	"context"
	"errors"
	"time"

	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
)

// StateCapturer builds the before-execution state of a unit of work.
type StateCapturer interface {
	Build(work ports.UnitOfWork, previous *domain.AfterPreviousExecutionState) (*domain.BeforeExecutionState, error)
}

// CaptureStateStep captures the before-execution state and hands it to the
// wrapped step. A capture failure terminates the unit as failed.
type CaptureStateStep struct {
	next     Step
	capturer StateCapturer
	metrics  ports.Metrics
	now      Clock
}

// NewCaptureStateStep creates a CaptureStateStep.
func NewCaptureStateStep(next Step, capturer StateCapturer, metrics ports.Metrics, now Clock) *CaptureStateStep {
	return &CaptureStateStep{next: next, capturer: capturer, metrics: metrics, now: now}
}

// Execute implements Step.
func (s *CaptureStateStep) Execute(ctx context.Context, ec *Context) *Result {
	ec.lifecycle.Capture()

	start := s.now()
	state, err := s.capturer.Build(ec.Work, ec.AfterPrevious)
	s.metrics.ObserveStage("capture", elapsed(start, s.now()))
	if err != nil {
		ec.lifecycle.Fail()
		return failed(ec, errors.Join(domain.ErrCaptureFailed, err))
	}

	ec.lifecycle.Delegate()
	return s.next.Execute(ctx, ec.withBeforeExecution(state))
}

// CacheKeyStep derives the build cache key of cacheable units.
type CacheKeyStep struct {
	next Step
}

// NewCacheKeyStep creates a CacheKeyStep.
func NewCacheKeyStep(next Step) *CacheKeyStep {
	return &CacheKeyStep{next: next}
}

// Execute implements Step.
func (s *CacheKeyStep) Execute(ctx context.Context, ec *Context) *Result {
	if ec.BeforeExecution == nil || !ec.Work.IsCacheable() {
		return s.next.Execute(ctx, ec)
	}
	return s.next.Execute(ctx, ec.withCacheKey(CacheKey(ec.BeforeExecution)))
}

// SkipUpToDateStep skips units whose captured state matches their previous
// execution. Units without history always run.
type SkipUpToDateStep struct {
	next Step
	now  Clock
}

// NewSkipUpToDateStep creates a SkipUpToDateStep.
func NewSkipUpToDateStep(next Step, now Clock) *SkipUpToDateStep {
	return &SkipUpToDateStep{next: next, now: now}
}

// Execute implements Step.
func (s *SkipUpToDateStep) Execute(ctx context.Context, ec *Context) *Result {
	if ec.BeforeExecution == nil {
		return s.next.Execute(ctx, ec)
	}

	reasons := DetectChanges(ec.AfterPrevious, ec.BeforeExecution, ec.Options.Rerun)
	if len(reasons) == 0 {
		return &Result{
			ExecutionID: ec.ExecutionID,
			Outcome:     domain.OutcomeUpToDate,
			State: domain.NewAfterExecutionState(
				ec.ExecutionID,
				domain.OutcomeUpToDate,
				ec.BeforeExecution,
				ec.AfterPrevious.OutputFileProperties,
				ec.CacheKey,
				s.now(),
			),
		}
	}

	res := s.next.Execute(ctx, ec)
	res.Reasons = reasons
	return res
}

// TimingStep reports the duration of the wrapped steps as a stage.
type TimingStep struct {
	next    Step
	stage   string
	metrics ports.Metrics
	now     Clock
}

// NewTimingStep creates a TimingStep.
func NewTimingStep(next Step, stage string, metrics ports.Metrics, now Clock) *TimingStep {
	return &TimingStep{next: next, stage: stage, metrics: metrics, now: now}
}

// Execute implements Step.
func (s *TimingStep) Execute(ctx context.Context, ec *Context) *Result {
	start := s.now()
	res := s.next.Execute(ctx, ec)
	s.metrics.ObserveStage(s.stage, elapsed(start, s.now()))
	return res
}

func elapsed(start, end time.Time) time.Duration {
	if d := end.Sub(start); d > 0 {
		return d
	}
	return 0
}
