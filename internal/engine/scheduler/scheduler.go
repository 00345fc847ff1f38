// Package scheduler runs the units of a task graph through the execution
// pipeline in dependency order.
package scheduler

import (
	"context"
	"errors"
	"maps"
	"sync"

	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/avert/internal/engine/execution"
	"go.trai.ch/avert/internal/engine/work"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is in the pipeline.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task executed successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusCached indicates the task was up to date or restored from the build cache.
	StatusCached TaskStatus = "Cached"
	// StatusFailed indicates the task failed.
	StatusFailed TaskStatus = "Failed"
	// StatusSkipped indicates the task was not started because a dependency failed.
	StatusSkipped TaskStatus = "Skipped"
)

// Pipeline runs a single unit of work to a terminal result.
type Pipeline interface {
	Execute(ctx context.Context, work ports.UnitOfWork, opts execution.Options) *execution.Result
}

// Options control a scheduler run.
type Options struct {
	Parallelism int
	Execution   execution.Options
}

// Report collects the terminal result of every task that entered the pipeline.
type Report struct {
	Results map[string]*execution.Result
	// Skipped lists tasks that were never started, in no particular order.
	Skipped []string
}

// Scheduler manages the execution of tasks in the dependency graph.
type Scheduler struct {
	factory *work.Factory

	mu         sync.RWMutex
	taskStatus map[domain.InternedString]TaskStatus
}

// NewScheduler creates a new Scheduler building units with factory.
func NewScheduler(factory *work.Factory) *Scheduler {
	return &Scheduler{
		factory:    factory,
		taskStatus: make(map[domain.InternedString]TaskStatus),
	}
}

// Statuses returns a copy of the task statuses of the latest run.
func (s *Scheduler) Statuses() map[domain.InternedString]TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.taskStatus)
}

func (s *Scheduler) updateStatus(name domain.InternedString, status TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[name] = status
}

func (s *Scheduler) initTaskStatuses(graph *domain.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.taskStatus)
	for task := range graph.Walk() {
		s.taskStatus[task.Name] = StatusPending
	}
}

// Run executes every task of graph through pipeline. A task starts once all of
// its dependencies succeeded; dependents of a failed task are skipped while
// independent tasks keep running. The returned error joins every task failure.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, pipeline Pipeline, opts Options) (*Report, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	s.initTaskStatuses(graph)

	state := s.newRunState(ctx, graph, pipeline, opts)

	// Once ctx is cancelled nothing new is scheduled; running units are
	// drained before returning.
	for {
		state.schedule()
		if state.active == 0 {
			break
		}
		state.handleResult(<-state.resultsCh)
	}

	_ = state.group.Wait()
	state.skipPending()

	if ctx.Err() != nil {
		state.errs = errors.Join(state.errs, ctx.Err())
	}

	return state.report, state.errs
}

type result struct {
	task domain.InternedString
	res  *execution.Result
}

type runState struct {
	s           *Scheduler
	ctx         context.Context
	graph       *domain.Graph
	pipeline    Pipeline
	opts        Options
	parallelism int

	inDegree  map[domain.InternedString]int
	tasks     map[domain.InternedString]domain.Task
	ready     []domain.InternedString
	active    int
	resultsCh chan result
	group     *errgroup.Group
	report    *Report
	errs      error
}

func (s *Scheduler) newRunState(ctx context.Context, graph *domain.Graph, pipeline Pipeline, opts Options) *runState {
	parallelism := max(opts.Parallelism, 1)

	taskCount := graph.TaskCount()
	inDegree := make(map[domain.InternedString]int, taskCount)
	tasks := make(map[domain.InternedString]domain.Task, taskCount)

	var ready []domain.InternedString
	for task := range graph.Walk() {
		tasks[task.Name] = task
		inDegree[task.Name] = len(task.Dependencies)
		if len(task.Dependencies) == 0 {
			ready = append(ready, task.Name)
		}
	}

	group := &errgroup.Group{}
	group.SetLimit(parallelism)

	return &runState{
		s:           s,
		ctx:         ctx,
		graph:       graph,
		pipeline:    pipeline,
		opts:        opts,
		parallelism: parallelism,
		inDegree:    inDegree,
		tasks:       tasks,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		group:       group,
		report:      &Report{Results: make(map[string]*execution.Result, taskCount)},
	}
}

func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		name := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(name, StatusRunning)

		task := state.tasks[name]
		state.group.Go(func() error {
			state.resultsCh <- result{task: name, res: state.run(&task)}
			return nil
		})
	}
}

func (state *runState) run(task *domain.Task) *execution.Result {
	unit, err := state.s.factory.New(task)
	if err != nil {
		return &execution.Result{Outcome: domain.OutcomeFailed, Err: err}
	}
	return state.pipeline.Execute(state.ctx, unit, state.opts.Execution)
}

func (state *runState) handleResult(r result) {
	state.active--
	state.report.Results[r.task.String()] = r.res

	if r.res.Outcome == domain.OutcomeFailed {
		wrapped := zerr.With(zerr.Wrap(r.res.Err, domain.ErrTaskExecutionFailed.Error()), "task", r.task.String())
		state.errs = errors.Join(state.errs, wrapped)
		state.s.updateStatus(r.task, StatusFailed)
		state.skipDependents(r.task)
		return
	}

	if r.res.Outcome.IsAvoided() {
		state.s.updateStatus(r.task, StatusCached)
	} else {
		state.s.updateStatus(r.task, StatusCompleted)
	}

	for _, dep := range state.graph.Dependents(r.task) {
		if _, ok := state.inDegree[dep]; !ok {
			continue
		}
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}

// skipDependents marks every transitive dependent of name as skipped.
func (state *runState) skipDependents(name domain.InternedString) {
	for _, dep := range state.graph.Dependents(name) {
		if _, ok := state.inDegree[dep]; !ok {
			continue
		}
		delete(state.inDegree, dep)
		state.s.updateStatus(dep, StatusSkipped)
		state.report.Skipped = append(state.report.Skipped, dep.String())
		state.skipDependents(dep)
	}
}

// skipPending marks tasks that never started, after cancellation, as skipped.
func (state *runState) skipPending() {
	for name, status := range state.s.Statuses() {
		if status == StatusPending {
			state.s.updateStatus(name, StatusSkipped)
			state.report.Skipped = append(state.report.Skipped, name.String())
		}
	}
}
