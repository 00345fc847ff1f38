package execution

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
)

// ReportStep records a progress vertex per unit, counts its outcome and logs
// the decision taken for it.
type ReportStep struct {
	next      Step
	telemetry ports.Telemetry
	metrics   ports.Metrics
	logger    ports.Logger
	now       Clock
}

// NewReportStep creates a ReportStep.
func NewReportStep(
	next Step,
	telemetry ports.Telemetry,
	metrics ports.Metrics,
	logger ports.Logger,
	now Clock,
) *ReportStep {
	return &ReportStep{next: next, telemetry: telemetry, metrics: metrics, logger: logger, now: now}
}

// Execute implements Step.
func (s *ReportStep) Execute(ctx context.Context, ec *Context) *Result {
	name := ec.Work.DisplayName()
	vctx, vertex := s.telemetry.Record(ctx, name, ports.WithExecutionID(ec.ExecutionID))
	vctx = ports.ContextWithVertex(vctx, vertex)

	start := s.now()
	res := s.next.Execute(vctx, ec)
	res.Duration = elapsed(start, s.now())

	if res.Outcome.IsAvoided() {
		vertex.Cached()
	}
	vertex.Complete(res.Err)

	s.metrics.RecordOutcome(res.Outcome)
	s.metrics.ObserveStage("pipeline", res.Duration)

	if res.Outcome == domain.OutcomeFailed {
		s.logger.Error(res.Err)
		return res
	}
	msg := fmt.Sprintf("%s: %s", name, res.Outcome)
	if len(res.Reasons) > 0 {
		msg += " (" + strings.Join(res.Reasons, "; ") + ")"
	}
	s.logger.Info(msg)
	return res
}
