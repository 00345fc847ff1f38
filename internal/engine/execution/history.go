package execution

import (
	"context"
	"fmt"

	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
)

// LoadStateStep loads the unit's previous state from the history store.
// An unreadable history is treated as absent so that the unit re-executes.
type LoadStateStep struct {
	next   Step
	store  ports.HistoryStore
	logger ports.Logger
}

// NewLoadStateStep creates a LoadStateStep.
func NewLoadStateStep(next Step, store ports.HistoryStore, logger ports.Logger) *LoadStateStep {
	return &LoadStateStep{next: next, store: store, logger: logger}
}

// Execute implements Step.
func (s *LoadStateStep) Execute(ctx context.Context, ec *Context) *Result {
	if !ec.Work.IsHistoryMaintained() {
		return s.next.Execute(ctx, ec)
	}

	previous, err := s.store.Load(ctx, ec.Work.Identity())
	if err != nil {
		s.logger.Warn(fmt.Sprintf("ignoring history of %s: %v", ec.Work.DisplayName(), err))
		previous = nil
	}
	return s.next.Execute(ctx, ec.withPrevious(previous))
}

// StoreStateStep persists the state produced by the wrapped steps once they
// reached a terminal result. Only successful outcomes are persisted; a failed
// unit keeps the history of its last successful run.
type StoreStateStep struct {
	next  Step
	store ports.HistoryStore
}

// NewStoreStateStep creates a StoreStateStep.
func NewStoreStateStep(next Step, store ports.HistoryStore) *StoreStateStep {
	return &StoreStateStep{next: next, store: store}
}

// Execute implements Step.
func (s *StoreStateStep) Execute(ctx context.Context, ec *Context) *Result {
	res := s.next.Execute(ctx, ec)
	if res.State == nil || !res.Outcome.IsSuccessful() {
		return res
	}

	// The unit finished, so its state is saved even if the build was cancelled meanwhile.
	if err := s.store.Save(context.WithoutCancel(ctx), ec.Work.Identity(), res.State); err != nil {
		res.Outcome = domain.OutcomeFailed
		res.Err = err
		res.State = nil
	}
	return res
}
