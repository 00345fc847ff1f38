// Package execution implements the pipeline of steps every unit of work passes
// through: history loading, state capture, up-to-date checking, build caching,
// execution and persistence of the resulting state.
package execution

import (
	"time"

	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
)

// Options control a single pipeline invocation.
type Options struct {
	// Rerun forces execution even when the unit is up to date.
	Rerun bool
	// NoCache disables build cache lookups and stores.
	NoCache bool
}

// Context carries a unit of work across pipeline steps. Steps never modify a
// Context they received; they delegate an augmented copy instead.
type Context struct {
	Work        ports.UnitOfWork
	ExecutionID string
	Options     Options

	// AfterPrevious is the state persisted by the unit's last successful run.
	AfterPrevious *domain.AfterPreviousExecutionState
	// BeforeExecution is nil until captured, and stays nil for units that do
	// not maintain history.
	BeforeExecution *domain.BeforeExecutionState
	// CacheKey is zero unless the unit is cacheable.
	CacheKey domain.Hash

	lifecycle *Lifecycle
}

// Lifecycle returns the state machine tracking the invocation.
func (c *Context) Lifecycle() *Lifecycle {
	return c.lifecycle
}

func (c *Context) withPrevious(previous *domain.AfterPreviousExecutionState) *Context {
	next := *c
	next.AfterPrevious = previous
	return &next
}

func (c *Context) withBeforeExecution(state *domain.BeforeExecutionState) *Context {
	next := *c
	next.BeforeExecution = state
	return &next
}

func (c *Context) withCacheKey(key domain.Hash) *Context {
	next := *c
	next.CacheKey = key
	return &next
}

// Result is the terminal result of a pipeline invocation.
type Result struct {
	ExecutionID string
	Outcome     domain.Outcome
	// Reasons explains why the unit was not up to date.
	Reasons []string
	// State is persisted as the unit's next previous state. It is nil for
	// failed units and for units that do not maintain history.
	State *domain.AfterExecutionState
	// OutputSnapshots holds the owned outputs observed after execution.
	OutputSnapshots map[string]domain.FileSystemSnapshot
	Err             error
	Duration        time.Duration
	Phase           Phase
}

func failed(ec *Context, err error) *Result {
	return &Result{
		ExecutionID: ec.ExecutionID,
		Outcome:     domain.OutcomeFailed,
		Err:         err,
	}
}
