package execution

import (
	"context"
	"time"
)

// Step is a stage of the pipeline. A step either produces a terminal Result
// itself or delegates to the step it wraps with an augmented Context.
type Step interface {
	Execute(ctx context.Context, ec *Context) *Result
}

// StepFunc adapts a function to the Step interface.
type StepFunc func(ctx context.Context, ec *Context) *Result

// Execute implements Step.
func (f StepFunc) Execute(ctx context.Context, ec *Context) *Result {
	return f(ctx, ec)
}

// Clock returns the current time.
type Clock func() time.Time
