package execution

import (
	"context"
	"fmt"

	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/zerr"
)

// BuildCacheStep restores the outputs of cacheable units from the build cache
// and stores the outputs of executed ones. Cache errors are logged and treated
// as misses. Units with overlapping outputs bypass the cache: restoring a shared
// location would replace files written there by other units.
type BuildCacheStep struct {
	next    Step
	cache   ports.BuildCache
	outputs outputRecorder
	logger  ports.Logger
	now     Clock
}

// NewBuildCacheStep creates a BuildCacheStep.
func NewBuildCacheStep(
	next Step,
	cache ports.BuildCache,
	fingerprinter ports.Fingerprinter,
	logger ports.Logger,
	now Clock,
) *BuildCacheStep {
	return &BuildCacheStep{
		next:    next,
		cache:   cache,
		outputs: outputRecorder{fingerprinter: fingerprinter},
		logger:  logger,
		now:     now,
	}
}

// Execute implements Step.
func (s *BuildCacheStep) Execute(ctx context.Context, ec *Context) *Result {
	if s.cache == nil || ec.Options.NoCache || ec.BeforeExecution == nil {
		return s.next.Execute(ctx, ec)
	}
	if !ec.Work.IsCacheable() || ec.Work.HasOverlappingOutputs() {
		return s.next.Execute(ctx, ec)
	}

	if res, ok := s.load(ctx, ec); ok {
		return res
	}

	res := s.next.Execute(ctx, ec)
	if res.Outcome == domain.OutcomeExecuted && res.OutputSnapshots != nil {
		if err := s.cache.Store(ctx, ec.CacheKey, res.OutputSnapshots); err != nil {
			s.logger.Warn(fmt.Sprintf("failed to cache outputs of %s: %v", ec.Work.DisplayName(), err))
		}
	}
	return res
}

func (s *BuildCacheStep) load(ctx context.Context, ec *Context) (*Result, bool) {
	before, err := s.outputs.before(ec)
	if err != nil {
		return failed(ec, err), true
	}

	hit, err := s.cache.Load(ctx, ec.CacheKey, outputRoots(ec.Work))
	if err != nil {
		s.logger.Warn(fmt.Sprintf("ignoring build cache entry of %s: %v", ec.Work.DisplayName(), err))
		return nil, false
	}
	if !hit {
		return nil, false
	}

	outputs, _, err := s.outputs.after(ec, before)
	if err != nil {
		return failed(ec, err), true
	}
	return &Result{
		ExecutionID: ec.ExecutionID,
		Outcome:     domain.OutcomeCacheHit,
		State: domain.NewAfterExecutionState(
			ec.ExecutionID, domain.OutcomeCacheHit, ec.BeforeExecution, outputs, ec.CacheKey, s.now(),
		),
	}, true
}

// ExecuteStep runs the unit of work and records the outputs it produced.
type ExecuteStep struct {
	outputs outputRecorder
	now     Clock
}

// NewExecuteStep creates an ExecuteStep.
func NewExecuteStep(fingerprinter ports.Fingerprinter, now Clock) *ExecuteStep {
	return &ExecuteStep{outputs: outputRecorder{fingerprinter: fingerprinter}, now: now}
}

// Execute implements Step.
func (s *ExecuteStep) Execute(ctx context.Context, ec *Context) *Result {
	var before map[string]*domain.FileCollectionFingerprint
	if ec.BeforeExecution != nil {
		var err error
		if before, err = s.outputs.before(ec); err != nil {
			return failed(ec, err)
		}
	}

	if err := ec.Work.Execute(ctx); err != nil {
		return failed(ec, zerr.With(zerr.Wrap(err, domain.ErrTaskExecutionFailed.Error()), "unit", ec.Work.DisplayName()))
	}

	res := &Result{ExecutionID: ec.ExecutionID, Outcome: domain.OutcomeExecuted}
	if ec.BeforeExecution == nil {
		return res
	}

	outputs, snapshots, err := s.outputs.after(ec, before)
	if err != nil {
		return failed(ec, err)
	}
	res.OutputSnapshots = snapshots
	res.State = domain.NewAfterExecutionState(
		ec.ExecutionID, domain.OutcomeExecuted, ec.BeforeExecution, outputs, ec.CacheKey, s.now(),
	)
	return res
}
